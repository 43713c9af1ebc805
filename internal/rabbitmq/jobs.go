package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

// JobPublisher публикует задания помощника в заранее объявленный exchange.
type JobPublisher struct {
	ch         *amqp.Channel
	exchange   string
	routingKey string
}

// NewJobPublisher создает издателя заданий помощника.
func NewJobPublisher(ch *amqp.Channel, exchange, routingKey string) *JobPublisher {
	return &JobPublisher{
		ch:         ch,
		exchange:   exchange,
		routingKey: routingKey,
	}
}

// PublishAssistantJob отправляет задание на генерацию ответа помощника.
func (p *JobPublisher) PublishAssistantJob(job models.AssistantJob) error {
	return PublishMessage(p.ch, p.exchange, p.routingKey, job)
}

package models

import "time"

// Отправители сообщений в чате.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Conversation представляет диалог пользователя с помощником.
type Conversation struct {
	ID        int       // Идентификатор диалога
	UserUID   string    // Владелец диалога
	Title     string    // Название диалога
	CreatedAt time.Time // Дата создания
}

// Message представляет одно сообщение в диалоге.
type Message struct {
	ID             int       // Идентификатор сообщения
	ConversationID int       // Диалог, к которому относится сообщение
	Sender         string    // user или assistant
	Content        string    // Текст сообщения
	CreatedAt      time.Time // Время отправки
}

// AssistantJob — задание на генерацию ответа помощника. Публикуется
// в очередь после того, как сообщение пользователя уже сохранено,
// поэтому потеря задания не откатывает сообщение.
type AssistantJob struct {
	ConversationID int    `json:"conversation_id"`
	MessageID      int    `json:"message_id"`
	UserUID        string `json:"user_uid"`
}

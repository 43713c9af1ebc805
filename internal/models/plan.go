package models

// Plan — тарифный план подписки пользователя. Закрытое перечисление
// с явным порядком: free < premium < enterprise.
type Plan string

// Известные тарифные планы.
const (
	PlanFree       Plan = "free"
	PlanPremium    Plan = "premium"
	PlanEnterprise Plan = "enterprise"
)

// Ordinal возвращает ранг плана для сравнений "не ниже".
// Неизвестный план получает минимальный ранг, то есть трактуется
// как free — наименьший уровень доверия.
func (p Plan) Ordinal() int {
	switch p {
	case PlanPremium:
		return 2
	case PlanEnterprise:
		return 3
	default:
		return 1
	}
}

// AtLeast сообщает, достаточен ли план p для требования required.
func (p Plan) AtLeast(required Plan) bool {
	return p.Ordinal() >= required.Ordinal()
}

// ParsePlan приводит строку к Plan. Неизвестные значения приводятся
// к PlanFree, чтобы никогда не повышать уровень привилегий.
func ParsePlan(s string) Plan {
	switch Plan(s) {
	case PlanPremium:
		return PlanPremium
	case PlanEnterprise:
		return PlanEnterprise
	default:
		return PlanFree
	}
}

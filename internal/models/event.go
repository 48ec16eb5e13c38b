package models

// EventMap отображает email участника в упорядоченный список месячных
// ключей "YYYY-MM". Используется как снимок таблиц оплат и приостановок:
// проверка оплаты и активности сводится к принадлежности ключа списку.
type EventMap map[string][]string

// Contains сообщает, есть ли у участника событие за указанный месяц.
func (m EventMap) Contains(email, monthKey string) bool {
	for _, k := range m[email] {
		if k == monthKey {
			return true
		}
	}
	return false
}

// PaymentEvent представляет один факт оплаты: участник и месяц.
type PaymentEvent struct {
	Email string `json:"email"` // Email участника
	Month string `json:"month"` // Месячный ключ "YYYY-MM"
}

// DeactivationEvent помечает участника неактивным на указанный месяц.
type DeactivationEvent struct {
	Email string `json:"email"`
	Month string `json:"month"`
}

// DummyPayment используется для приёма запроса на фиксацию оплаты.
// Month опционален: при отсутствии берётся текущий месяц.
type DummyPayment struct {
	Email string `json:"email" validate:"required,email"` // Email участника
	Month string `json:"month,omitempty"`                 // "YYYY-MM", опционально
}

// DummyDeactivation используется для приёма запроса на приостановку.
type DummyDeactivation struct {
	Email string `json:"email" validate:"required,email"`
}

// ReminderMessage — сообщение очереди напоминаний: планировщик публикует
// по одному на участника, отправитель превращает его в письмо.
type ReminderMessage struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	ReminderDay int    `json:"reminder_day"`
}

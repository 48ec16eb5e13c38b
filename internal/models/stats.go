package models

// MemberStatus — производное состояние участника на текущий месяц.
type MemberStatus struct {
	Member
	Active        bool `json:"active"`          // Нет приостановки на текущий месяц
	PaidThisMonth bool `json:"paid_this_month"` // Есть оплата за текущий месяц
	DebtDays      int  `json:"debt_days"`       // Целых дней просрочки после дня напоминания
}

// Summary — агрегаты текущего месяца, опционально по одному филиалу.
type Summary struct {
	Total            int `json:"total"`             // Всего участников
	Paid             int `json:"paid"`              // Оплатили текущий месяц
	InDebt           int `json:"in_debt"`           // Активны и не оплатили
	DeactivatedMonth int `json:"deactivated_month"` // Приостановлены на текущий месяц
}

// Метрики годовой статистики.
const (
	MetricRegistrations = "registrations"
	MetricDeactivations = "deactivations"
	MetricPayments      = "payments"
)

// Series — годовой ряд: 12 корзин по месяцам календарного года.
type Series struct {
	Metric string  `json:"metric"`
	Year   int     `json:"year"`
	Counts [12]int `json:"counts"`
}

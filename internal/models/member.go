// Package models содержит доменные структуры приложения: участника зала,
// события оплат и приостановок, а также вспомогательные типы для приёма
// данных из JSON-запросов.
package models

import "time"

// Сайты (филиалы) зала. Список фиксированный, используется при валидации
// регистрации и как измерение фильтра в статистике.
const (
	SiteTemperley = "Temperley"
	SiteCalzada   = "Calzada"
)

// Sites возвращает список допустимых филиалов.
func Sites() []string {
	return []string{SiteTemperley, SiteCalzada}
}

// ValidSite сообщает, входит ли site в фиксированный список филиалов.
func ValidSite(site string) bool {
	for _, s := range Sites() {
		if s == site {
			return true
		}
	}
	return false
}

// Member представляет зарегистрированного участника зала.
// Email уникален и служит первичным ключом, Name уникально как бизнес-правило.
type Member struct {
	Email       string    `json:"email"`        // Электронная почта, первичный ключ
	Name        string    `json:"name"`         // Имя и фамилия (уникальны)
	CreatedAt   time.Time `json:"created_at"`   // Дата регистрации
	ReminderDay int       `json:"reminder_day"` // День месяца для напоминания об оплате, 1..31
	Site        string    `json:"site"`         // Филиал зала
}

// DummyMember используется для приёма данных регистрации из JSON-запроса
// до их валидации и преобразования в Member.
type DummyMember struct {
	Email       string `json:"email" validate:"required,email"`        // Электронная почта
	Name        string `json:"name" validate:"required"`               // Имя и фамилия
	ReminderDay int    `json:"reminder_day" validate:"min=1,max=31"`   // День напоминания
	Site        string `json:"site" validate:"required"`               // Филиал
}

// DummyMemberUpdate используется для приёма данных редактирования.
// Участник идентифицируется исходным email из URL, поле Email содержит
// новое значение (может совпадать с исходным).
type DummyMemberUpdate struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name" validate:"required"`
	ReminderDay int    `json:"reminder_day" validate:"min=1,max=31"`
	Site        string `json:"site" validate:"required"`
}

// Package monthkey работает с месячными ключами вида "YYYY-MM" —
// единицей учёта оплат и приостановок.
package monthkey

import (
	"fmt"
	"time"
)

// Layout формат месячного ключа.
const Layout = "2006-01"

// maxReminderDay — верхняя граница дня напоминания при расчётах дат.
// Дни 29..31 прижимаются к 28, чтобы дата существовала в любом месяце.
const maxReminderDay = 28

// Current возвращает месячный ключ для момента t.
func Current(t time.Time) string {
	return t.Format(Layout)
}

// Parse разбирает ключ "YYYY-MM" и возвращает первое число месяца.
func Parse(key string) (time.Time, error) {
	t, err := time.Parse(Layout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return t, nil
}

// Valid сообщает, соответствует ли key формату "YYYY-MM" с корректным месяцем.
func Valid(key string) bool {
	_, err := Parse(key)
	return err == nil
}

// ClampDay нормализует день напоминания: нулевое или отрицательное
// значение трактуется как 1, значения больше 28 прижимаются к 28.
func ClampDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > maxReminderDay {
		return maxReminderDay
	}
	return day
}

// ReminderDate возвращает дату напоминания внутри месяца key в зоне loc.
func ReminderDate(key string, day int, loc *time.Location) (time.Time, error) {
	first, err := Parse(key)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(first.Year(), first.Month(), ClampDay(day), 0, 0, 0, 0, loc), nil
}

// DebtDays считает целые дни просрочки на момент now: ноль, если месяц
// оплачен или день напоминания ещё не наступил, иначе количество полных
// дней с даты напоминания текущего месяца.
func DebtDays(now time.Time, reminderDay int, paid bool) int {
	if paid {
		return 0
	}
	reminder, err := ReminderDate(Current(now), reminderDay, now.Location())
	if err != nil {
		return 0
	}
	if !now.After(reminder) {
		return 0
	}
	return int(now.Sub(reminder).Hours() / 24)
}

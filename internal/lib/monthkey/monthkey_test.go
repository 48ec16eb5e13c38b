package monthkey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	loc := time.UTC
	assert.Equal(t, "2026-09", Current(time.Date(2026, time.September, 15, 12, 0, 0, 0, loc)))
	assert.Equal(t, "2026-01", Current(time.Date(2026, time.January, 1, 0, 0, 0, 0, loc)))
	assert.Equal(t, "2026-12", Current(time.Date(2026, time.December, 31, 23, 59, 59, 0, loc)))
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"корректный ключ", "2026-09", true},
		{"декабрь", "2025-12", true},
		{"месяц ноль", "2026-00", false},
		{"месяц тринадцать", "2026-13", false},
		{"без ведущего нуля", "2026-9", false},
		{"лишний день", "2026-09-01", false},
		{"пустая строка", "", false},
		{"произвольный текст", "marzo", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.key))
		})
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("2026-03")
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 1, got.Day())

	_, err = Parse("2026-3")
	assert.Error(t, err)
}

func TestClampDay(t *testing.T) {
	assert.Equal(t, 1, ClampDay(0))
	assert.Equal(t, 1, ClampDay(-5))
	assert.Equal(t, 1, ClampDay(1))
	assert.Equal(t, 15, ClampDay(15))
	assert.Equal(t, 28, ClampDay(28))
	assert.Equal(t, 28, ClampDay(29))
	assert.Equal(t, 28, ClampDay(31))
}

func TestReminderDate(t *testing.T) {
	loc := time.UTC

	got, err := ReminderDate("2026-02", 31, loc)
	require.NoError(t, err)
	// День 31 прижимается к 28 и дата остаётся в феврале
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, loc), got)

	got, err = ReminderDate("2026-09", 10, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.September, 10, 0, 0, 0, 0, loc), got)

	_, err = ReminderDate("bad-key", 10, loc)
	assert.Error(t, err)
}

func TestDebtDays(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name        string
		now         time.Time
		reminderDay int
		paid        bool
		want        int
	}{
		{
			name:        "оплачен — долга нет",
			now:         time.Date(2026, time.September, 15, 12, 0, 0, 0, loc),
			reminderDay: 10,
			paid:        true,
			want:        0,
		},
		{
			name:        "не оплачен, пять дней после дня напоминания",
			now:         time.Date(2026, time.September, 15, 0, 0, 0, 0, loc),
			reminderDay: 10,
			paid:        false,
			want:        5,
		},
		{
			name:        "день напоминания ещё не наступил",
			now:         time.Date(2026, time.September, 5, 12, 0, 0, 0, loc),
			reminderDay: 10,
			paid:        false,
			want:        0,
		},
		{
			name:        "ровно день напоминания",
			now:         time.Date(2026, time.September, 10, 0, 0, 0, 0, loc),
			reminderDay: 10,
			paid:        false,
			want:        0,
		},
		{
			name:        "день 31 прижат к 28",
			now:         time.Date(2026, time.February, 28, 12, 0, 0, 0, loc),
			reminderDay: 31,
			paid:        false,
			want:        0,
		},
		{
			name:        "неполные сутки не считаются",
			now:         time.Date(2026, time.September, 10, 18, 0, 0, 0, loc),
			reminderDay: 10,
			paid:        false,
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DebtDays(tt.now, tt.reminderDay, tt.paid))
		})
	}
}

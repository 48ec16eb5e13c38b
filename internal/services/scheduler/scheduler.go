// Package scheduler реализует ежедневный отбор участников, у которых день
// напоминания совпадает с сегодняшним, и публикацию сообщений рассылки.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/franchu01/soma/internal/lib/sl"
	"github.com/franchu01/soma/internal/models"
)

// Repository определяет выборку участников по дню напоминания.
type Repository interface {
	ListMembersByReminderDay(ctx context.Context, day int) ([]*models.Member, error)
}

// Publisher публикует одно сообщение напоминания.
type Publisher interface {
	PublishReminder(message models.ReminderMessage) error
}

// Service запускает рассылку раз в сутки в настроенный час.
type Service struct {
	repo     Repository
	pub      Publisher
	log      *slog.Logger
	loc      *time.Location
	sendHour int
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, pub Publisher, log *slog.Logger, loc *time.Location, sendHour int) *Service {
	return &Service{
		repo:     repo,
		pub:      pub,
		log:      log,
		loc:      loc,
		sendHour: sendHour,
	}
}

// Run ждёт очередного часа рассылки и запускает один проход. Проход либо
// завершает полный обход участников, либо падает целиком; продолжения
// прерванного прохода нет.
func (s *Service) Run(ctx context.Context) {
	for {
		next := s.nextRun(time.Now().In(s.loc))
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.PublishDueReminders(ctx)
		}
	}
}

// nextRun возвращает ближайший момент рассылки: сегодня в sendHour,
// либо завтра, если час уже прошёл.
func (s *Service) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.sendHour, 0, 0, 0, s.loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// PublishDueReminders выполняет один проход: отбирает участников с днём
// напоминания, равным сегодняшнему, и публикует по сообщению на каждого.
// Ошибка публикации одного участника не прерывает остальных; успехи и
// неудачи считаются раздельно.
func (s *Service) PublishDueReminders(ctx context.Context) (published, failed int) {
	today := time.Now().In(s.loc).Day()
	log := s.log.With(slog.Int("day", today))

	log.Info("starting daily reminder scan")
	members, err := s.repo.ListMembersByReminderDay(ctx, today)
	if err != nil {
		log.Error("failed to list members due today", sl.Err(err))
		return 0, 0
	}
	if len(members) == 0 {
		log.Info("no members due today")
		return 0, 0
	}

	for _, m := range members {
		msg := models.ReminderMessage{
			Email:       m.Email,
			Name:        m.Name,
			ReminderDay: m.ReminderDay,
		}
		if err := s.pub.PublishReminder(msg); err != nil {
			failed++
			log.Error("failed to publish reminder", slog.String("email", m.Email), sl.Err(err))
			continue
		}
		published++
	}

	log.Info("daily reminder scan finished",
		slog.Int("published", published), slog.Int("failed", failed))
	return published, failed
}

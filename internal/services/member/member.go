// Package member содержит бизнес-логику учёта участников: регистрацию,
// редактирование с каскадной сменой email, удаление и чтение снимка.
package member

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/franchu01/soma/internal/models"
)

// ErrUnknownSite — филиал не входит в фиксированный список.
var ErrUnknownSite = errors.New("unknown site")

// listCacheKey — ключ кеша снимка списка участников.
const listCacheKey = "members:list"

// Repository определяет методы хранилища участников.
type Repository interface {
	// CreateMember добавляет участника; вставка атомарна.
	CreateMember(ctx context.Context, member models.Member) error
	// UpdateMember обновляет участника по исходному email, каскадируя смену email.
	UpdateMember(ctx context.Context, originalEmail string, member models.Member) error
	// RemoveMember удаляет участника и возвращает количество удалённых строк.
	RemoveMember(ctx context.Context, email string) (int, error)
	// ListMembers возвращает снимок таблицы участников.
	ListMembers(ctx context.Context) ([]*models.Member, error)
}

// Cache описывает методы кеширования снимков.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с участниками.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	loc   *time.Location
}

// NewService создает новый экземпляр Service. Дата регистрации и прочие
// расчёты "сегодня" идут в зоне loc.
func NewService(repo Repository, cache Cache, log *slog.Logger, loc *time.Location) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		loc:   loc,
	}
}

// Register регистрирует нового участника. Дата регистрации — текущая дата.
// Дубликат email или имени возвращается ошибкой хранилища без частичной вставки.
func (s *Service) Register(ctx context.Context, req models.DummyMember) error {
	if !models.ValidSite(req.Site) {
		return fmt.Errorf("site %q: %w", req.Site, ErrUnknownSite)
	}

	now := time.Now().In(s.loc)
	entry := models.Member{
		Email:       req.Email,
		Name:        req.Name,
		CreatedAt:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc),
		ReminderDay: req.ReminderDay,
		Site:        req.Site,
	}

	if err := s.repo.CreateMember(ctx, entry); err != nil {
		return err
	}
	s.invalidateList()

	s.log.Info("registered new member", slog.String("email", entry.Email), slog.String("site", entry.Site))
	return nil
}

// Update редактирует участника, найденного по исходному email. Смена email
// каскадируется в события оплат и приостановок одной транзакцией.
func (s *Service) Update(ctx context.Context, originalEmail string, req models.DummyMemberUpdate) error {
	if !models.ValidSite(req.Site) {
		return fmt.Errorf("site %q: %w", req.Site, ErrUnknownSite)
	}

	entry := models.Member{
		Email:       req.Email,
		Name:        req.Name,
		ReminderDay: req.ReminderDay,
		Site:        req.Site,
	}
	if err := s.repo.UpdateMember(ctx, originalEmail, entry); err != nil {
		return err
	}
	s.invalidateList()

	s.log.Info("updated member", slog.String("email", originalEmail), slog.String("new_email", req.Email))
	return nil
}

// Remove удаляет участника и возвращает количество удалённых строк.
func (s *Service) Remove(ctx context.Context, email string) (int, error) {
	count, err := s.repo.RemoveMember(ctx, email)
	if err != nil {
		return 0, err
	}
	s.invalidateList()
	return count, nil
}

// List возвращает снимок списка участников, используя кеш или хранилище.
// Каждая мутация инвалидирует кеш, поэтому снимок всегда свежий.
func (s *Service) List(ctx context.Context) ([]*models.Member, error) {
	var result []*models.Member
	found, err := s.cache.Get(listCacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read members list from cache", slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(listCacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache members list", slog.Any("err", err))
	}
	return result, nil
}

func (s *Service) invalidateList() {
	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate members list cache", slog.Any("err", err))
	}
}

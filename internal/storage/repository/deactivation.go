package repository

import (
	"context"
	"fmt"

	"github.com/franchu01/soma/internal/models"
)

// CreateDeactivation помечает участника неактивным на месяц. Повторная
// приостановка того же месяца не создаёт дубликата.
func (s *Storage) CreateDeactivation(ctx context.Context, event models.DeactivationEvent) error {
	const op = "storage.CreateDeactivation"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO deactivations (email, month)
			  VALUES ($1, $2)
			  ON CONFLICT (email, month) DO NOTHING`
	_, err := s.DB.ExecContext(ctx, query, event.Email, event.Month)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveDeactivation удаляет приостановку участника за месяц и возвращает
// количество удалённых строк. Отсутствие строки — не ошибка.
func (s *Storage) RemoveDeactivation(ctx context.Context, event models.DeactivationEvent) (int, error) {
	const op = "storage.RemoveDeactivation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM deactivations WHERE email = $1 AND month = $2`
	result, err := s.DB.ExecContext(ctx, query, event.Email, event.Month)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListDeactivations возвращает снимок всех приостановок:
// email -> месячные ключи в порядке возрастания.
func (s *Storage) ListDeactivations(ctx context.Context) (models.EventMap, error) {
	const op = "storage.ListDeactivations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email, month FROM deactivations ORDER BY email, month`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(models.EventMap)
	for rows.Next() {
		var email, month string
		if err := rows.Scan(&email, &month); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[email] = append(result[email], month)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountDeactivations возвращает общее число событий приостановок.
func (s *Storage) CountDeactivations(ctx context.Context) (int, error) {
	const op = "storage.CountDeactivations"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM deactivations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/franchu01/soma/internal/models"
)

// CreatePayment фиксирует оплату участника за месяц. Повторная фиксация
// того же месяца не создаёт дубликата: уникальность (email, month)
// обеспечивается на записи. Возвращает ErrMemberMissing, если участника нет.
func (s *Storage) CreatePayment(ctx context.Context, event models.PaymentEvent) error {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (email, month)
			  VALUES ($1, $2)
			  ON CONFLICT (email, month) DO NOTHING`
	_, err := s.DB.ExecContext(ctx, query, event.Email, event.Month)
	if err != nil {
		if tErr := translateConstraint(err); tErr != err {
			return fmt.Errorf("%s: %w", op, tErr)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListPayments возвращает снимок всех оплат: email -> месячные ключи
// в порядке возрастания.
func (s *Storage) ListPayments(ctx context.Context) (models.EventMap, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email, month FROM payments ORDER BY email, month`
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

// CountPayments возвращает общее число событий оплат.
func (s *Storage) CountPayments(ctx context.Context) (int, error) {
	const op = "storage.CountPayments"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

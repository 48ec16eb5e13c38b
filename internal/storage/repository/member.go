package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/franchu01/soma/internal/models"
)

// CreateMember вставляет нового участника. Возвращает ErrEmailTaken или
// ErrNameTaken при нарушении уникальности; вставка атомарна.
func (s *Storage) CreateMember(ctx context.Context, member models.Member) error {
	const op = "storage.CreateMember"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO members (email, name, created_at, reminder_day, site)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query,
		member.Email, member.Name, member.CreatedAt, member.ReminderDay, member.Site)
	if err != nil {
		if tErr := translateConstraint(err); tErr != err {
			return fmt.Errorf("%s: %w", op, tErr)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateMember обновляет участника, найденного по исходному email.
// Смена email каскадируется в таблицы оплат и приостановок одной
// транзакцией: частичное переименование невозможно.
func (s *Storage) UpdateMember(ctx context.Context, originalEmail string, member models.Member) error {
	const op = "storage.UpdateMember"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx,
		`UPDATE members SET email = $1, name = $2, reminder_day = $3, site = $4
		 WHERE email = $5`,
		member.Email, member.Name, member.ReminderDay, member.Site, originalEmail)
	if err != nil {
		if tErr := translateConstraint(err); tErr != err {
			return fmt.Errorf("%s: %w", op, tErr)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrMemberNotFound)
	}

	if member.Email != originalEmail {
		if _, err := tx.ExecContext(ctx,
			`UPDATE payments SET email = $1 WHERE email = $2`,
			member.Email, originalEmail); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE deactivations SET email = $1 WHERE email = $2`,
			member.Email, originalEmail); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		if tErr := translateConstraint(err); tErr != err {
			return fmt.Errorf("%s: %w", op, tErr)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveMember удаляет участника по email вместе с его историей оплат
// и приостановок одной транзакцией. Возвращает количество удалённых
// строк из таблицы участников.
func (s *Storage) RemoveMember(ctx context.Context, email string) (int, error) {
	const op = "storage.RemoveMember"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM payments WHERE email = $1`, email); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM deactivations WHERE email = $1`, email); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM members WHERE email = $1`, email)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ReadMember возвращает участника по email.
func (s *Storage) ReadMember(ctx context.Context, email string) (*models.Member, error) {
	const op = "storage.ReadMember"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email, name, created_at, reminder_day, site
			  FROM members WHERE email = $1`
	row := s.DB.QueryRowContext(ctx, query, email)

	var result models.Member
	if err := row.Scan(&result.Email, &result.Name, &result.CreatedAt,
		&result.ReminderDay, &result.Site); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListMembers возвращает полный снимок таблицы участников.
func (s *Storage) ListMembers(ctx context.Context) ([]*models.Member, error) {
	const op = "storage.ListMembers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email, name, created_at, reminder_day, site
			  FROM members
			  ORDER BY email`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Member
	for rows.Next() {
		var item models.Member
		if err := rows.Scan(&item.Email, &item.Name, &item.CreatedAt,
			&item.ReminderDay, &item.Site); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListMembersByReminderDay возвращает участников с указанным днём
// напоминания. Дни 29..31 прижимаются к 28 при расчётах дат, но здесь
// сравнение идёт по сохранённому значению — как в расписании рассылки.
func (s *Storage) ListMembersByReminderDay(ctx context.Context, day int) ([]*models.Member, error) {
	const op = "storage.ListMembersByReminderDay"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email, name, created_at, reminder_day, site
			  FROM members
			  WHERE reminder_day = $1
			  ORDER BY email`
	rows, err := s.DB.QueryContext(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Member
	for rows.Next() {
		var item models.Member
		if err := rows.Scan(&item.Email, &item.Name, &item.CreatedAt,
			&item.ReminderDay, &item.Site); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

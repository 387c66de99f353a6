package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/refund-service/internal/domain"
)

// RefundRepository persists refund requests.
type RefundRepository interface {
	Create(ctx context.Context, refund *domain.Refund) error
	GetByID(ctx context.Context, id string) (*domain.Refund, error)
	List(ctx context.Context, filter domain.RefundFilter) ([]domain.Refund, int, error)
}

type refundRepository struct {
	pool *pgxpool.Pool
}

// NewRefundRepository returns a Postgres-backed implementation.
func NewRefundRepository(pool *pgxpool.Pool) RefundRepository {
	return &refundRepository{pool: pool}
}

func (r *refundRepository) Create(ctx context.Context, refund *domain.Refund) error {
	const query = `
        INSERT INTO refunds (name, category, amount, filename, user_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		refund.Name,
		refund.Category,
		refund.Amount,
		refund.Filename,
		refund.UserID,
	).Scan(&refund.ID, &refund.CreatedAt, &refund.UpdatedAt)
}

// GetByID returns ErrNotFound for ids that are not UUIDs without querying.
func (r *refundRepository) GetByID(ctx context.Context, id string) (*domain.Refund, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	const query = `
        SELECT id, name, category, amount, filename, user_id, created_at, updated_at
        FROM refunds WHERE id=$1`

	var refund domain.Refund
	if err := scanRefund(r.pool.QueryRow(ctx, query, id), &refund); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &refund, nil
}

// List returns one page of refunds, newest first, plus the total match count.
func (r *refundRepository) List(ctx context.Context, filter domain.RefundFilter) ([]domain.Refund, int, error) {
	const countQuery = `
        SELECT COUNT(*) FROM refunds r
        JOIN users u ON u.id = r.user_id
        WHERE u.name ILIKE '%' || $1::text || '%'`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, filter.Name).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
        SELECT r.id, r.name, r.category, r.amount, r.filename, r.user_id, r.created_at, r.updated_at
        FROM refunds r
        JOIN users u ON u.id = r.user_id
        WHERE u.name ILIKE '%' || $1::text || '%'
        ORDER BY r.created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, filter.Name, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := make([]domain.Refund, 0)
	for rows.Next() {
		var refund domain.Refund
		if err := scanRefund(rows, &refund); err != nil {
			return nil, 0, err
		}
		result = append(result, refund)
	}
	return result, total, rows.Err()
}

func scanRefund(row pgx.Row, refund *domain.Refund) error {
	return row.Scan(
		&refund.ID,
		&refund.Name,
		&refund.Category,
		&refund.Amount,
		&refund.Filename,
		&refund.UserID,
		&refund.CreatedAt,
		&refund.UpdatedAt,
	)
}

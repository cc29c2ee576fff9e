package postgres

import (
	"context"
	"errors"
	"math/big"

	"github.com/jackc/pgx/v5"

	"github.com/unicitylabs/aggregator-proxy/internal/core/domain"
	"github.com/unicitylabs/aggregator-proxy/pkg/apperror"
)

// PlanStoreRepo implements ports.PlanStore over PostgreSQL.
type PlanStoreRepo struct {
	pool Pool
}

// NewPlanStoreRepo creates a new PlanStoreRepo.
func NewPlanStoreRepo(pool Pool) *PlanStoreRepo {
	return &PlanStoreRepo{pool: pool}
}

func (r *PlanStoreRepo) q(tx pgx.Tx) rowQuerier {
	if tx != nil {
		return tx
	}
	return r.pool
}

func scanPlan(row pgx.Row) (*domain.PricingPlan, error) {
	var p domain.PricingPlan
	var priceStr string
	if err := row.Scan(&p.ID, &p.Name, &p.RequestsPerSecond, &p.RequestsPerDay, &priceStr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.ErrDatabase(err)
	}
	price, ok := new(big.Int).SetString(priceStr, 10)
	if !ok {
		return nil, apperror.ErrDatabase(errors.New("corrupt price column: " + priceStr))
	}
	p.Price = price
	return &p, nil
}

// FindByID returns the plan with the given id, or nil if absent.
func (r *PlanStoreRepo) FindByID(ctx context.Context, tx pgx.Tx, id int64) (*domain.PricingPlan, error) {
	row := r.q(tx).QueryRow(ctx,
		`SELECT id, name, requests_per_second, requests_per_day, price FROM pricing_plans WHERE id = $1`, id)
	return scanPlan(row)
}

// List returns every pricing plan, ordered by id.
func (r *PlanStoreRepo) List(ctx context.Context, tx pgx.Tx) ([]domain.PricingPlan, error) {
	var q interface {
		Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	}
	if tx != nil {
		q = tx
	} else {
		q = r.pool
	}

	rows, err := q.Query(ctx, `SELECT id, name, requests_per_second, requests_per_day, price FROM pricing_plans ORDER BY id`)
	if err != nil {
		return nil, apperror.ErrDatabase(err)
	}
	defer rows.Close()

	var plans []domain.PricingPlan
	for rows.Next() {
		var p domain.PricingPlan
		var priceStr string
		if err := rows.Scan(&p.ID, &p.Name, &p.RequestsPerSecond, &p.RequestsPerDay, &priceStr); err != nil {
			return nil, apperror.ErrDatabase(err)
		}
		price, ok := new(big.Int).SetString(priceStr, 10)
		if !ok {
			return nil, apperror.ErrDatabase(errors.New("corrupt price column: " + priceStr))
		}
		p.Price = price
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.ErrDatabase(err)
	}
	return plans, nil
}

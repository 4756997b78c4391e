package conversion

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const convCols = `id, kind, direction, input, output, warnings, created_at`

func (r *repoPG) scanRow(row pgx.Row) (*Conversion, error) {
	var c Conversion
	err := row.Scan(&c.ID, &c.Kind, &c.Direction, &c.Input, &c.Output,
		&c.Warnings, &c.CreatedAt)
	return &c, err
}

func (r *repoPG) Create(ctx context.Context, c *Conversion) error {
	c.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO conversions (id, kind, direction, input, output, warnings)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		c.ID, c.Kind, c.Direction, c.Input, c.Output, c.Warnings)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Conversion, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+convCols+` FROM conversions WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Conversion, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM conversions`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+convCols+` FROM conversions ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Conversion
	for rows.Next() {
		c, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, nil
}

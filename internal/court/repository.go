package court

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Court) (*Court, error) {
	query := `
		INSERT INTO courts (name, discipline_id, price_cents, status, opens_at, closes_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, discipline_id, price_cents, status, opens_at::text AS opens_at, closes_at::text AS closes_at, created_at
	`

	var created Court
	err := r.db.GetContext(ctx, &created, query,
		c.Name, c.DisciplineID, c.PriceCents, c.Status, c.OpensAt, c.ClosesAt)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateCourtRequest) (*Court, error) {
	query := `
		UPDATE courts
		SET name          = COALESCE($1, name),
		    discipline_id = COALESCE($2, discipline_id),
		    price_cents   = COALESCE($3, price_cents),
		    status        = COALESCE($4, status),
		    opens_at      = COALESCE($5::time, opens_at),
		    closes_at     = COALESCE($6::time, closes_at)
		WHERE id = $7
		RETURNING id, name, discipline_id, price_cents, status, opens_at::text AS opens_at, closes_at::text AS closes_at, created_at
	`

	var updated Court
	err := r.db.GetContext(ctx, &updated, query,
		req.Name, req.DisciplineID, req.PriceCents, req.Status, req.OpensAt, req.ClosesAt, id)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*CourtWithDiscipline, error) {
	query := `
		SELECT
			c.id,
			c.name,
			c.discipline_id,
			c.price_cents,
			c.status,
			c.opens_at::text AS opens_at,
			c.closes_at::text AS closes_at,
			c.created_at,
			d.name AS discipline_name
		FROM courts c
		JOIN disciplines d ON d.id = c.discipline_id
		WHERE c.id = $1
	`

	var court CourtWithDiscipline
	err := r.db.GetContext(ctx, &court, query, id)
	if err != nil {
		return nil, err
	}

	return &court, nil
}

func (r *repository) GetAll(ctx context.Context) ([]CourtWithDiscipline, error) {
	query := `
		SELECT
			c.id,
			c.name,
			c.discipline_id,
			c.price_cents,
			c.status,
			c.opens_at::text AS opens_at,
			c.closes_at::text AS closes_at,
			c.created_at,
			d.name AS discipline_name
		FROM courts c
		JOIN disciplines d ON d.id = c.discipline_id
		ORDER BY c.name ASC
	`

	var courts []CourtWithDiscipline
	err := r.db.SelectContext(ctx, &courts, query)
	if err != nil {
		return nil, err
	}

	return courts, nil
}

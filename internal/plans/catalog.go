// Package plans holds the subscription plan catalog and the entitlement
// checker that gates feature access by plan.
package plans

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/db"
	"matchday-backend/internal/models"
)

// Catalog is the immutable plan lookup table, loaded once at startup.
// The seeded plan rows only change at deployment time.
type Catalog struct {
	ordered []models.Plan
	byID    map[models.PlanID]models.Plan
}

// NewCatalog builds a catalog from active plans, cheapest first.
func NewCatalog(plans []models.Plan) *Catalog {
	c := &Catalog{byID: make(map[models.PlanID]models.Plan, len(plans))}
	for _, p := range plans {
		if !p.IsActive {
			continue
		}
		c.ordered = append(c.ordered, p)
		c.byID[p.ID] = p
	}
	return c
}

// Load reads the active plans from Postgres.
func Load(ctx context.Context, pool *pgxpool.Pool) (*Catalog, error) {
	q := db.Builder.
		Select("id", "name", "price", "currency", "features",
			"is_enterprise", "is_active", "created_at", "updated_at").
		From("plans").
		Where(sq.Eq{"is_active": true}).
		OrderBy("price ASC")

	rows, err := db.Query(ctx, pool, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Plan
	for rows.Next() {
		var p models.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Currency, &p.Features,
			&p.IsEnterprise, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewCatalog(out), nil
}

// MustLoad is the startup variant; the service cannot run without a
// seeded plan catalog.
func MustLoad(ctx context.Context, pool *pgxpool.Pool) *Catalog {
	c, err := Load(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load plan catalog")
	}
	if len(c.ordered) == 0 {
		log.Fatal().Msg("plan catalog is empty; migrations not applied?")
	}
	return c
}

// All returns the plans cheapest first. Callers get a copy.
func (c *Catalog) All() []models.Plan {
	out := make([]models.Plan, len(c.ordered))
	copy(out, c.ordered)
	return out
}

func (c *Catalog) Get(id models.PlanID) (models.Plan, error) {
	p, ok := c.byID[id]
	if !ok {
		return models.Plan{}, apperr.WithArgs(apperr.KindNotFound, apperr.CodePlanNotFound,
			map[string]string{"id": string(id)})
	}
	return p, nil
}

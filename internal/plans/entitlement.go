package plans

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/cache"
	"matchday-backend/internal/models"
)

// UserPlans resolves a user's current plan identifier.
type UserPlans interface {
	PlanID(ctx context.Context, id uuid.UUID) (models.PlanID, error)
}

// Entitlements decides whether a user's plan permits an action. Usage
// counting is the caller's job; this type only compares against limits.
type Entitlements struct {
	catalog *Catalog
	users   UserPlans
	cache   cache.Cache // nil degrades to always-miss
	ttl     time.Duration
}

func NewEntitlements(catalog *Catalog, users UserPlans, c cache.Cache, ttl time.Duration) *Entitlements {
	return &Entitlements{catalog: catalog, users: users, cache: c, ttl: ttl}
}

func cacheKey(userID uuid.UUID) string {
	return "userplan:" + userID.String()
}

// PlanFor resolves the user's full plan record, through the cache when
// one is configured.
func (e *Entitlements) PlanFor(ctx context.Context, userID uuid.UUID) (models.Plan, error) {
	if e.cache != nil {
		if v, ok, err := e.cache.Get(ctx, cacheKey(userID)); err == nil && ok {
			if p, err := e.catalog.Get(models.PlanID(v)); err == nil {
				return p, nil
			}
		}
	}

	planID, err := e.users.PlanID(ctx, userID)
	if err != nil {
		return models.Plan{}, err
	}
	p, err := e.catalog.Get(planID)
	if err != nil {
		return models.Plan{}, err
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, cacheKey(userID), string(p.ID), e.ttl); err != nil {
			log.Warn().Err(err).Msg("entitlement cache set failed")
		}
	}
	return p, nil
}

// Invalidate drops the cached plan for a user. Called on plan changes.
func (e *Entitlements) Invalidate(ctx context.Context, userID uuid.UUID) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Delete(ctx, cacheKey(userID)); err != nil {
		log.Warn().Err(err).Msg("entitlement cache invalidation failed")
	}
}

// CanCreateMatch reports whether the plan allows one more match this
// month. A nil limit means unlimited.
func (e *Entitlements) CanCreateMatch(ctx context.Context, userID uuid.UUID, matchesThisMonth int) (bool, error) {
	p, err := e.PlanFor(ctx, userID)
	if err != nil {
		return false, err
	}
	limit := p.Features.MaxMatchesPerMonth
	return limit == nil || matchesThisMonth < *limit, nil
}

func (e *Entitlements) CanCreateTournament(ctx context.Context, userID uuid.UUID, tournamentsThisMonth int) (bool, error) {
	p, err := e.PlanFor(ctx, userID)
	if err != nil {
		return false, err
	}
	limit := p.Features.MaxTournamentsPerMonth
	return limit == nil || tournamentsThisMonth < *limit, nil
}

func (e *Entitlements) HasFeature(ctx context.Context, userID uuid.UUID, feature Feature) (bool, error) {
	p, err := e.PlanFor(ctx, userID)
	if err != nil {
		return false, err
	}
	return hasFeature(p.Features, feature), nil
}

// ValidateMatchCreation is the enforcement-point variant of
// CanCreateMatch: it fails with a forbidden error carrying the limit
// and plan name.
func (e *Entitlements) ValidateMatchCreation(ctx context.Context, userID uuid.UUID, matchesThisMonth int) error {
	p, err := e.PlanFor(ctx, userID)
	if err != nil {
		return err
	}
	limit := p.Features.MaxMatchesPerMonth
	if limit == nil || matchesThisMonth < *limit {
		return nil
	}
	return apperr.WithArgs(apperr.KindForbidden, apperr.CodeMatchLimitReached,
		map[string]string{"limit": strconv.Itoa(*limit), "plan": p.Name})
}

func (e *Entitlements) ValidateTournamentCreation(ctx context.Context, userID uuid.UUID, tournamentsThisMonth int) error {
	p, err := e.PlanFor(ctx, userID)
	if err != nil {
		return err
	}
	limit := p.Features.MaxTournamentsPerMonth
	if limit == nil || tournamentsThisMonth < *limit {
		return nil
	}
	return apperr.WithArgs(apperr.KindForbidden, apperr.CodeTournamentLimitReached,
		map[string]string{"limit": strconv.Itoa(*limit), "plan": p.Name})
}

func (e *Entitlements) ValidateFeatureAccess(ctx context.Context, userID uuid.UUID, feature Feature) error {
	p, err := e.PlanFor(ctx, userID)
	if err != nil {
		return err
	}
	if hasFeature(p.Features, feature) {
		return nil
	}
	return apperr.WithArgs(apperr.KindForbidden, apperr.CodeFeatureNotAvailable,
		map[string]string{"feature": string(feature), "plan": p.Name})
}

// UpgradeOptions returns the plans strictly above the user's current
// plan in the free < basic < pro < enterprise order.
func (e *Entitlements) UpgradeOptions(ctx context.Context, userID uuid.UUID) ([]models.Plan, error) {
	current, err := e.PlanFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []models.Plan{}
	for _, p := range e.catalog.All() {
		if p.ID.Rank() > current.ID.Rank() {
			out = append(out, p)
		}
	}
	return out, nil
}

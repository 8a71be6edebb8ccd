package plans

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/cache"
	"matchday-backend/internal/models"
)

func intp(n int) *int { return &n }

func fixtureCatalog() *Catalog {
	return NewCatalog([]models.Plan{
		{
			ID: models.PlanFree, Name: "Free", IsActive: true,
			Features: models.PlanFeatures{
				MaxMatchesPerMonth:     intp(10),
				MaxTournamentsPerMonth: intp(1),
			},
		},
		{
			ID: models.PlanBasic, Name: "Basic", Price: 1990, IsActive: true,
			Features: models.PlanFeatures{
				MaxMatchesPerMonth:     intp(50),
				MaxTournamentsPerMonth: intp(5),
				KnockoutMode:           true,
			},
		},
		{
			ID: models.PlanPro, Name: "Pro", Price: 3990, IsActive: true,
			Features: models.PlanFeatures{
				AdvancedStats:  true,
				KnockoutMode:   true,
				TeamManagement: true,
			},
		},
		{
			ID: models.PlanEnterprise, Name: "Enterprise", Price: 9990,
			IsEnterprise: true, IsActive: true,
			Features: models.PlanFeatures{
				AdvancedStats:   true,
				KnockoutMode:    true,
				TeamManagement:  true,
				PrioritySupport: true,
			},
		},
	})
}

type stubUserPlans map[uuid.UUID]models.PlanID

func (s stubUserPlans) PlanID(_ context.Context, id uuid.UUID) (models.PlanID, error) {
	p, ok := s[id]
	if !ok {
		return "", apperr.New(apperr.KindNotFound, apperr.CodeUserNotFound)
	}
	return p, nil
}

func TestCanCreateMatch(t *testing.T) {
	ctx := context.Background()
	freeUser := uuid.New()
	proUser := uuid.New()
	ent := NewEntitlements(fixtureCatalog(), stubUserPlans{
		freeUser: models.PlanFree,
		proUser:  models.PlanPro,
	}, nil, 0)

	t.Run("below the limit", func(t *testing.T) {
		ok, err := ent.CanCreateMatch(ctx, freeUser, 9)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("at the limit", func(t *testing.T) {
		ok, err := ent.CanCreateMatch(ctx, freeUser, 10)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("nil limit is unlimited", func(t *testing.T) {
		ok, err := ent.CanCreateMatch(ctx, proUser, 100000)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestValidateMatchCreation(t *testing.T) {
	ctx := context.Background()
	freeUser := uuid.New()
	ent := NewEntitlements(fixtureCatalog(), stubUserPlans{freeUser: models.PlanFree}, nil, 0)

	require.NoError(t, ent.ValidateMatchCreation(ctx, freeUser, 0))

	err := ent.ValidateMatchCreation(ctx, freeUser, 10)
	require.Error(t, err)
	e := apperr.From(err)
	assert.Equal(t, apperr.KindForbidden, e.Kind)
	assert.Equal(t, apperr.CodeMatchLimitReached, e.Code)
	assert.Equal(t, "10", e.Args["limit"])
	assert.Equal(t, "Free", e.Args["plan"])
}

func TestValidateTournamentCreation(t *testing.T) {
	ctx := context.Background()
	basicUser := uuid.New()
	ent := NewEntitlements(fixtureCatalog(), stubUserPlans{basicUser: models.PlanBasic}, nil, 0)

	require.NoError(t, ent.ValidateTournamentCreation(ctx, basicUser, 4))

	err := ent.ValidateTournamentCreation(ctx, basicUser, 5)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeTournamentLimitReached, apperr.From(err).Code)
}

func TestHasFeature(t *testing.T) {
	ctx := context.Background()
	freeUser := uuid.New()
	basicUser := uuid.New()
	ent := NewEntitlements(fixtureCatalog(), stubUserPlans{
		freeUser:  models.PlanFree,
		basicUser: models.PlanBasic,
	}, nil, 0)

	ok, err := ent.HasFeature(ctx, basicUser, FeatureKnockoutMode)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ent.HasFeature(ctx, freeUser, FeatureKnockoutMode)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ent.HasFeature(ctx, basicUser, Feature("timeTravel"))
	require.NoError(t, err)
	assert.False(t, ok, "unknown features resolve to false")
}

func TestValidateFeatureAccess(t *testing.T) {
	ctx := context.Background()
	freeUser := uuid.New()
	ent := NewEntitlements(fixtureCatalog(), stubUserPlans{freeUser: models.PlanFree}, nil, 0)

	err := ent.ValidateFeatureAccess(ctx, freeUser, FeatureAdvancedStats)
	require.Error(t, err)
	e := apperr.From(err)
	assert.Equal(t, apperr.KindForbidden, e.Kind)
	assert.Equal(t, apperr.CodeFeatureNotAvailable, e.Code)
	assert.Equal(t, "advancedStats", e.Args["feature"])
	assert.Equal(t, "Free", e.Args["plan"])
}

func TestUpgradeOptions(t *testing.T) {
	ctx := context.Background()
	basicUser := uuid.New()
	enterpriseUser := uuid.New()
	ent := NewEntitlements(fixtureCatalog(), stubUserPlans{
		basicUser:      models.PlanBasic,
		enterpriseUser: models.PlanEnterprise,
	}, nil, 0)

	out, err := ent.UpgradeOptions(ctx, basicUser)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, models.PlanPro, out[0].ID)
	assert.Equal(t, models.PlanEnterprise, out[1].ID)

	out, err = ent.UpgradeOptions(ctx, enterpriseUser)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPlanForUsesCache(t *testing.T) {
	ctx := context.Background()
	user := uuid.New()
	source := stubUserPlans{user: models.PlanFree}
	c := cache.NewMemory()
	ent := NewEntitlements(fixtureCatalog(), source, c, time.Minute)

	p, err := ent.PlanFor(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, p.ID)

	// The plan changed in the database but the cache still answers.
	source[user] = models.PlanPro
	p, err = ent.PlanFor(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, p.ID)

	ent.Invalidate(ctx, user)
	p, err = ent.PlanFor(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, models.PlanPro, p.ID)
}

func TestCatalogGet(t *testing.T) {
	c := fixtureCatalog()

	p, err := c.Get(models.PlanBasic)
	require.NoError(t, err)
	assert.Equal(t, "Basic", p.Name)

	_, err = c.Get(models.PlanID("platinum"))
	require.Error(t, err)
	e := apperr.From(err)
	assert.Equal(t, apperr.CodePlanNotFound, e.Code)
	assert.Equal(t, apperr.KindNotFound, e.Kind)
}

func TestCatalogSkipsInactivePlans(t *testing.T) {
	c := NewCatalog([]models.Plan{
		{ID: models.PlanFree, Name: "Free", IsActive: true},
		{ID: models.PlanBasic, Name: "Legacy", IsActive: false},
	})
	assert.Len(t, c.All(), 1)
	_, err := c.Get(models.PlanBasic)
	assert.Error(t, err)
}

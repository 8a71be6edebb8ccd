package plans

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"matchday-backend/internal/httpapi"
	"matchday-backend/internal/models"
)

// UsageSource counts a user's resource usage in the current month.
type UsageSource interface {
	MatchesThisMonth(ctx context.Context, userID uuid.UUID) (int, error)
}

// GET /api/plans
func List(catalog *Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, catalog.All())
	}
}

// GET /api/plans/compare
func Compare(catalog *Catalog) gin.HandlerFunc {
	type comparedPlan struct {
		ID          models.PlanID       `json:"id"`
		Name        string              `json:"name"`
		Price       int                 `json:"price"`
		Features    models.PlanFeatures `json:"features"`
		Recommended bool                `json:"recommended"`
	}
	return func(c *gin.Context) {
		var out []comparedPlan
		for _, p := range catalog.All() {
			out = append(out, comparedPlan{
				ID:          p.ID,
				Name:        p.Name,
				Price:       p.Price,
				Features:    p.Features,
				Recommended: p.ID == models.PlanPro,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /api/plans/my-plan
func MyPlan(ent *Entitlements, usage UsageSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := httpapi.UserID(c)
		p, err := ent.PlanFor(c.Request.Context(), userID)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		matches, err := usage.MatchesThisMonth(c.Request.Context(), userID)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"plan":     p.Name,
			"price":    p.Price,
			"features": p.Features,
			"usage": gin.H{
				"matchesThisMonth": matches,
				// Tournaments are not persisted yet; reported as zero.
				"tournamentsThisMonth": 0,
			},
		})
	}
}

// GET /api/plans/upgrade-options
func UpgradeOptions(ent *Entitlements) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := ent.UpgradeOptions(c.Request.Context(), httpapi.UserID(c))
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /api/plans/:id
func Get(catalog *Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := catalog.Get(models.PlanID(c.Param("id")))
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

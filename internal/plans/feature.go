package plans

import "matchday-backend/internal/models"

// Feature names a gated capability on a plan.
type Feature string

const (
	FeatureAdvancedStats   Feature = "advancedStats"
	FeatureKnockoutMode    Feature = "knockoutMode"
	FeatureTeamManagement  Feature = "teamManagement"
	FeaturePrioritySupport Feature = "prioritySupport"
)

// hasFeature resolves a feature flag on a plan's entitlement record.
// Unknown feature names resolve to false: fail closed.
func hasFeature(f models.PlanFeatures, feature Feature) bool {
	switch feature {
	case FeatureAdvancedStats:
		return f.AdvancedStats
	case FeatureKnockoutMode:
		return f.KnockoutMode
	case FeatureTeamManagement:
		return f.TeamManagement
	case FeaturePrioritySupport:
		return f.PrioritySupport
	default:
		return false
	}
}

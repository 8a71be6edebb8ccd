package i18n

// Base catalog. Every code must have an entry here; other locales fall
// back to these templates for codes they do not translate.
var en = map[string]string{
	"INTERNAL":        "internal error",
	"INVALID_REQUEST": "invalid request body",

	"INVALID_CREDENTIALS": "invalid credentials",
	"INVALID_TOKEN":       "invalid or expired token",
	"NOT_AUTHENTICATED":   "not authenticated",
	"ADMIN_ONLY":          "admin only",
	"OAUTH_EMAIL_MISSING": "the provider did not supply an email address",

	"USER_NOT_FOUND":               "user {{.id}} not found",
	"EMAIL_IN_USE":                 "email is already in use",
	"CANNOT_CHANGE_OAUTH_EMAIL":    "the email of an oauth account cannot be changed",
	"OAUTH_CANNOT_CHANGE_PASSWORD": "oauth accounts have no password to change",
	"WRONG_CURRENT_PASSWORD":       "current password is incorrect",
	"ALREADY_ON_PLAN":              "user is already on the {{.plan}} plan",
	"ENTERPRISE_REQUIRES_ADMIN":    "only administrators can assign the enterprise plan",
	"UNKNOWN_PLAN":                 "unknown plan {{.plan}}",
	"PASSWORD_CHANGED":             "password changed",

	"PLAN_NOT_FOUND":           "plan {{.id}} not found",
	"MATCH_LIMIT_REACHED":      "monthly match limit of {{.limit}} reached on the {{.plan}} plan",
	"TOURNAMENT_LIMIT_REACHED": "monthly tournament limit of {{.limit}} reached on the {{.plan}} plan",
	"FEATURE_NOT_AVAILABLE":    "feature {{.feature}} is not available on the {{.plan}} plan",

	"MATCH_NOT_FOUND":       "match {{.id}} not found",
	"INVALID_PLAYERS":       "one or more players do not exist",
	"INVALID_STATUS":        "invalid match status {{.status}}",
	"TEAMS_ALREADY_CREATED": "teams already created for this match",
	"MATCH_ALREADY_STARTED": "match already started",
	"INVALID_TEAM_COUNT":    "expected {{.expected}} teams, received {{.received}}",
	"PLAYERS_NOT_IN_MATCH":  "players not in this match: {{.players}}",
	"DUPLICATE_PLAYERS":     "a player cannot belong to more than one team",
	"MISSING_PLAYERS":       "every match player must be assigned to a team",
}

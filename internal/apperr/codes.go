package apperr

// Error codes. The i18n catalogs key their message templates on these.
const (
	CodeInternal       = "INTERNAL"
	CodeInvalidRequest = "INVALID_REQUEST"

	// Auth
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeNotAuthenticated   = "NOT_AUTHENTICATED"
	CodeAdminOnly          = "ADMIN_ONLY"
	CodeOAuthEmailMissing  = "OAUTH_EMAIL_MISSING"

	// Users
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeEmailInUse          = "EMAIL_IN_USE"
	CodeCannotChangeEmail   = "CANNOT_CHANGE_OAUTH_EMAIL"
	CodeNoPassword          = "OAUTH_CANNOT_CHANGE_PASSWORD"
	CodeWrongPassword       = "WRONG_CURRENT_PASSWORD"
	CodeAlreadyOnPlan       = "ALREADY_ON_PLAN"
	CodeEnterpriseAdminOnly = "ENTERPRISE_REQUIRES_ADMIN"
	CodeUnknownPlan         = "UNKNOWN_PLAN"

	// Plans / entitlements
	CodePlanNotFound           = "PLAN_NOT_FOUND"
	CodeMatchLimitReached      = "MATCH_LIMIT_REACHED"
	CodeTournamentLimitReached = "TOURNAMENT_LIMIT_REACHED"
	CodeFeatureNotAvailable    = "FEATURE_NOT_AVAILABLE"

	// Matches / team formation
	CodeMatchNotFound       = "MATCH_NOT_FOUND"
	CodeInvalidPlayers      = "INVALID_PLAYERS"
	CodeInvalidStatus       = "INVALID_STATUS"
	CodeTeamsAlreadyCreated = "TEAMS_ALREADY_CREATED"
	CodeMatchAlreadyStarted = "MATCH_ALREADY_STARTED"
	CodeInvalidTeamCount    = "INVALID_TEAM_COUNT"
	CodePlayersNotInMatch   = "PLAYERS_NOT_IN_MATCH"
	CodeDuplicatePlayers    = "DUPLICATE_PLAYERS"
	CodeMissingPlayers      = "MISSING_PLAYERS"
)

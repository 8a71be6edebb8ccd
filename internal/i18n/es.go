package i18n

var es = map[string]string{
	"INTERNAL":        "error interno",
	"INVALID_REQUEST": "cuerpo de la solicitud inválido",

	"INVALID_CREDENTIALS": "credenciales inválidas",
	"INVALID_TOKEN":       "token inválido o expirado",
	"NOT_AUTHENTICATED":   "no autenticado",
	"ADMIN_ONLY":          "solo administradores",
	"OAUTH_EMAIL_MISSING": "el proveedor no proporcionó una dirección de correo",

	"USER_NOT_FOUND":               "usuario {{.id}} no encontrado",
	"EMAIL_IN_USE":                 "el correo ya está en uso",
	"CANNOT_CHANGE_OAUTH_EMAIL":    "el correo de una cuenta oauth no puede cambiarse",
	"OAUTH_CANNOT_CHANGE_PASSWORD": "las cuentas oauth no tienen contraseña",
	"WRONG_CURRENT_PASSWORD":       "la contraseña actual es incorrecta",
	"ALREADY_ON_PLAN":              "el usuario ya tiene el plan {{.plan}}",
	"ENTERPRISE_REQUIRES_ADMIN":    "solo los administradores pueden asignar el plan enterprise",
	"UNKNOWN_PLAN":                 "plan desconocido {{.plan}}",
	"PASSWORD_CHANGED":             "contraseña cambiada",

	"PLAN_NOT_FOUND":           "plan {{.id}} no encontrado",
	"MATCH_LIMIT_REACHED":      "límite mensual de {{.limit}} partidas alcanzado en el plan {{.plan}}",
	"TOURNAMENT_LIMIT_REACHED": "límite mensual de {{.limit}} torneos alcanzado en el plan {{.plan}}",
	"FEATURE_NOT_AVAILABLE":    "la función {{.feature}} no está disponible en el plan {{.plan}}",

	"MATCH_NOT_FOUND":       "partida {{.id}} no encontrada",
	"INVALID_PLAYERS":       "uno o más jugadores no existen",
	"INVALID_STATUS":        "estado de partida inválido {{.status}}",
	"TEAMS_ALREADY_CREATED": "los equipos de esta partida ya fueron creados",
	"MATCH_ALREADY_STARTED": "la partida ya comenzó",
	"INVALID_TEAM_COUNT":    "se esperaban {{.expected}} equipos, se recibieron {{.received}}",
	"PLAYERS_NOT_IN_MATCH":  "jugadores fuera de esta partida: {{.players}}",
	"DUPLICATE_PLAYERS":     "un jugador no puede pertenecer a más de un equipo",
	"MISSING_PLAYERS":       "todos los jugadores de la partida deben asignarse a un equipo",
}

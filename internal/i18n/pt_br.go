package i18n

var ptBR = map[string]string{
	"INTERNAL":        "erro interno",
	"INVALID_REQUEST": "corpo da requisição inválido",

	"INVALID_CREDENTIALS": "credenciais inválidas",
	"INVALID_TOKEN":       "token inválido ou expirado",
	"NOT_AUTHENTICATED":   "não autenticado",
	"ADMIN_ONLY":          "somente administradores",
	"OAUTH_EMAIL_MISSING": "o provedor não forneceu um endereço de email",

	"USER_NOT_FOUND":               "usuário {{.id}} não encontrado",
	"EMAIL_IN_USE":                 "email já está em uso",
	"CANNOT_CHANGE_OAUTH_EMAIL":    "o email de uma conta oauth não pode ser alterado",
	"OAUTH_CANNOT_CHANGE_PASSWORD": "contas oauth não possuem senha",
	"WRONG_CURRENT_PASSWORD":       "senha atual incorreta",
	"ALREADY_ON_PLAN":              "usuário já está no plano {{.plan}}",
	"ENTERPRISE_REQUIRES_ADMIN":    "apenas administradores podem atribuir o plano enterprise",
	"UNKNOWN_PLAN":                 "plano desconhecido {{.plan}}",
	"PASSWORD_CHANGED":             "senha alterada com sucesso",

	"PLAN_NOT_FOUND":           "plano {{.id}} não encontrado",
	"MATCH_LIMIT_REACHED":      "limite mensal de {{.limit}} partidas atingido no plano {{.plan}}",
	"TOURNAMENT_LIMIT_REACHED": "limite mensal de {{.limit}} torneios atingido no plano {{.plan}}",
	"FEATURE_NOT_AVAILABLE":    "o recurso {{.feature}} não está disponível no plano {{.plan}}",

	"MATCH_NOT_FOUND":       "partida {{.id}} não encontrada",
	"INVALID_PLAYERS":       "um ou mais jogadores não existem",
	"INVALID_STATUS":        "status de partida inválido {{.status}}",
	"TEAMS_ALREADY_CREATED": "as equipes desta partida já foram criadas",
	"MATCH_ALREADY_STARTED": "a partida já começou",
	"INVALID_TEAM_COUNT":    "esperadas {{.expected}} equipes, recebidas {{.received}}",
	"PLAYERS_NOT_IN_MATCH":  "jogadores fora desta partida: {{.players}}",
	"DUPLICATE_PLAYERS":     "um jogador não pode pertencer a mais de uma equipe",
	"MISSING_PLAYERS":       "todos os jogadores da partida devem ser atribuídos a uma equipe",
}

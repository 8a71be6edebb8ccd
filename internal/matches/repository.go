package matches

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/db"
	"matchday-backend/internal/models"
)

var matchColumns = []string{
	"id", "game_id", "status", "team_formation_mode", "team_count",
	"created_by", "created_at", "updated_at",
}

var playerColumns = []string{
	"u.id", "u.name", "u.email", "u.provider", "u.avatar_url",
	"u.email_verified", "u.is_active", "u.role", "u.plan",
	"u.created_at", "u.updated_at",
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type CreateParams struct {
	GameID    string
	Mode      models.FormationMode
	TeamCount int
	CreatedBy uuid.UUID
	Players   []uuid.UUID
}

// Create inserts the match and its player set in one transaction,
// verifying every referenced player exists.
func (r *Repository) Create(ctx context.Context, p CreateParams) (*models.Match, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var known int
	err = tx.QueryRow(ctx,
		"SELECT count(*) FROM users WHERE id = ANY($1) AND deleted_at IS NULL",
		p.Players,
	).Scan(&known)
	if err != nil {
		return nil, err
	}
	if known != len(p.Players) {
		return nil, apperr.New(apperr.KindValidation, apperr.CodeInvalidPlayers)
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO matches (game_id, status, team_formation_mode, team_count, created_by)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		p.GameID, models.MatchWaitingTeams, p.Mode, p.TeamCount, p.CreatedBy,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	for _, playerID := range p.Players {
		if _, err := tx.Exec(ctx,
			"INSERT INTO match_players (match_id, user_id) VALUES ($1, $2)",
			id, playerID,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// FindByID loads a match with its creator, players and teams resolved.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	q := db.Builder.Select(matchColumns...).From("matches").Where(sq.Eq{"id": id})
	m, err := scanMatch(db.Row(ctx, r.pool, q))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.WithArgs(apperr.KindNotFound, apperr.CodeMatchNotFound,
			map[string]string{"id": id.String()})
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, r.pool, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Match, error) {
	q := db.Builder.Select(matchColumns...).From("matches").OrderBy("created_at DESC")
	rows, err := db.Query(ctx, r.pool, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadRelations(ctx, r.pool, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) (*models.Match, error) {
	q := db.Builder.Update("matches").
		Set("status", status).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})
	tag, err := db.Exec(ctx, r.pool, q)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.WithArgs(apperr.KindNotFound, apperr.CodeMatchNotFound,
			map[string]string{"id": id.String()})
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Exec(ctx, r.pool, db.Builder.Delete("matches").Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.WithArgs(apperr.KindNotFound, apperr.CodeMatchNotFound,
			map[string]string{"id": id.String()})
	}
	return nil
}

// MatchesThisMonth counts matches the user created since the start of
// the current month. Satisfies plans.UsageSource.
func (r *Repository) MatchesThisMonth(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM matches
		 WHERE created_by = $1 AND created_at >= date_trunc('month', now())`,
		userID,
	).Scan(&n)
	return n, err
}

// beginFormation opens the transaction a team-formation attempt runs in.
func (r *Repository) beginFormation(ctx context.Context) (formation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &txFormation{repo: r, tx: tx}, nil
}

// txFormation is the Postgres-backed formation attempt.
type txFormation struct {
	repo *Repository
	tx   pgx.Tx
}

func (f *txFormation) Commit(ctx context.Context) error   { return f.tx.Commit(ctx) }
func (f *txFormation) Rollback(ctx context.Context) error { return f.tx.Rollback(ctx) }

// lockMatch loads the match row FOR UPDATE, serializing concurrent
// team-formation attempts, and resolves its players.
func (f *txFormation) lockMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	q := db.Builder.Select(matchColumns...).From("matches").
		Where(sq.Eq{"id": id}).Suffix("FOR UPDATE")
	m, err := scanMatch(db.Row(ctx, f.tx, q))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.WithArgs(apperr.KindNotFound, apperr.CodeMatchNotFound,
			map[string]string{"id": id.String()})
	}
	if err != nil {
		return nil, err
	}
	m.Players, err = f.repo.loadPlayers(ctx, f.tx, id)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (f *txFormation) countTeams(ctx context.Context, matchID uuid.UUID) (int, error) {
	var n int
	err := f.tx.QueryRow(ctx, "SELECT count(*) FROM teams WHERE match_id = $1", matchID).Scan(&n)
	return n, err
}

type assignment struct {
	name    string
	players []models.User
}

func (f *txFormation) insertTeams(ctx context.Context, matchID uuid.UUID, assignments []assignment) ([]models.Team, error) {
	teams := make([]models.Team, 0, len(assignments))
	for _, a := range assignments {
		t := models.Team{Name: a.name, MatchID: matchID, Players: a.players}
		err := f.tx.QueryRow(ctx,
			"INSERT INTO teams (name, match_id) VALUES ($1, $2) RETURNING id, created_at",
			a.name, matchID,
		).Scan(&t.ID, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		for _, p := range a.players {
			if _, err := f.tx.Exec(ctx,
				"INSERT INTO team_players (team_id, user_id) VALUES ($1, $2)",
				t.ID, p.ID,
			); err != nil {
				return nil, err
			}
		}
		teams = append(teams, t)
	}
	return teams, nil
}

func (f *txFormation) setStatus(ctx context.Context, matchID uuid.UUID, status models.MatchStatus) error {
	_, err := f.tx.Exec(ctx,
		"UPDATE matches SET status = $1, updated_at = now() WHERE id = $2",
		status, matchID,
	)
	return err
}

func (r *Repository) loadRelations(ctx context.Context, q db.Querier, m *models.Match) error {
	creator, err := r.loadUser(ctx, q, m.CreatedByID)
	if err != nil {
		return err
	}
	m.CreatedBy = creator

	m.Players, err = r.loadPlayers(ctx, q, m.ID)
	if err != nil {
		return err
	}

	m.Teams, err = r.loadTeams(ctx, q, m.ID)
	return err
}

func (r *Repository) loadUser(ctx context.Context, q db.Querier, id uuid.UUID) (*models.User, error) {
	b := db.Builder.Select(playerColumns...).From("users u").Where(sq.Eq{"u.id": id})
	u, err := scanPlayer(db.Row(ctx, q, b))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *Repository) loadPlayers(ctx context.Context, q db.Querier, matchID uuid.UUID) ([]models.User, error) {
	b := db.Builder.Select(playerColumns...).
		From("match_players mp").
		Join("users u ON u.id = mp.user_id").
		Where(sq.Eq{"mp.match_id": matchID}).
		OrderBy("u.name ASC", "u.id ASC")
	return queryPlayers(ctx, q, b)
}

func (r *Repository) loadTeams(ctx context.Context, q db.Querier, matchID uuid.UUID) ([]models.Team, error) {
	b := db.Builder.Select("id", "name", "match_id", "created_at").
		From("teams").
		Where(sq.Eq{"match_id": matchID}).
		OrderBy("created_at ASC", "id ASC")
	rows, err := db.Query(ctx, q, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.MatchID, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range teams {
		b := db.Builder.Select(playerColumns...).
			From("team_players tp").
			Join("users u ON u.id = tp.user_id").
			Where(sq.Eq{"tp.team_id": teams[i].ID}).
			OrderBy("u.name ASC", "u.id ASC")
		teams[i].Players, err = queryPlayers(ctx, q, b)
		if err != nil {
			return nil, err
		}
	}
	return teams, nil
}

func queryPlayers(ctx context.Context, q db.Querier, b sq.SelectBuilder) ([]models.User, error) {
	rows, err := db.Query(ctx, q, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func scanMatch(row pgx.Row) (*models.Match, error) {
	var m models.Match
	err := row.Scan(&m.ID, &m.GameID, &m.Status, &m.TeamFormationMode,
		&m.TeamCount, &m.CreatedByID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanPlayer(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Provider, &u.AvatarURL,
		&u.EmailVerified, &u.IsActive, &u.Role, &u.Plan, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

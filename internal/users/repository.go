package users

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/db"
	"matchday-backend/internal/models"
)

var userColumns = []string{
	"id", "name", "email", "password_hash", "provider", "provider_id",
	"avatar_url", "email_verified", "is_active", "role", "plan",
	"created_at", "updated_at",
}

// Repository implements user persistence over Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateParams carries the insertable user fields.
type CreateParams struct {
	Name          string
	Email         string
	PasswordHash  *string
	Provider      models.Provider
	ProviderID    *string
	AvatarURL     *string
	EmailVerified bool
	Role          models.Role
	Plan          models.PlanID
}

func (r *Repository) Create(ctx context.Context, p CreateParams) (*models.User, error) {
	q := db.Builder.Insert("users").
		Columns("name", "email", "password_hash", "provider", "provider_id",
			"avatar_url", "email_verified", "role", "plan").
		Values(p.Name, p.Email, p.PasswordHash, p.Provider, p.ProviderID,
			p.AvatarURL, p.EmailVerified, p.Role, p.Plan).
		Suffix("RETURNING " + columnList())

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	u, err := scanUser(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.New(apperr.KindConflict, apperr.CodeEmailInUse)
		}
		return nil, err
	}
	return u, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	q := selectUsers().Where(sq.Eq{"id": id, "deleted_at": nil})
	u, err := scanUser(db.Row(ctx, r.pool, q))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.WithArgs(apperr.KindNotFound, apperr.CodeUserNotFound,
			map[string]string{"id": id.String()})
	}
	return u, err
}

// FindByEmail returns (nil, nil) when no user matches.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	q := selectUsers().Where(sq.Eq{"email": email, "deleted_at": nil})
	u, err := scanUser(db.Row(ctx, r.pool, q))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	q := selectUsers().
		Where(sq.Eq{"is_active": true, "deleted_at": nil}).
		OrderBy("created_at DESC")

	rows, err := db.Query(ctx, r.pool, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// UpdateParams: nil fields are left untouched.
type UpdateParams struct {
	Name      *string
	Email     *string
	AvatarURL *string
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.User, error) {
	q := db.Builder.Update("users").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "deleted_at": nil})
	if p.Name != nil {
		q = q.Set("name", *p.Name)
	}
	if p.Email != nil {
		q = q.Set("email", *p.Email)
	}
	if p.AvatarURL != nil {
		q = q.Set("avatar_url", *p.AvatarURL)
	}
	q = q.Suffix("RETURNING " + columnList())

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	u, err := scanUser(r.pool.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.WithArgs(apperr.KindNotFound, apperr.CodeUserNotFound,
			map[string]string{"id": id.String()})
	}
	if err != nil && isUniqueViolation(err) {
		return nil, apperr.New(apperr.KindConflict, apperr.CodeEmailInUse)
	}
	return u, err
}

// SetProvider records the OAuth identity on an existing account.
func (r *Repository) SetProvider(ctx context.Context, id uuid.UUID, provider models.Provider, providerID string, avatarURL *string) error {
	q := db.Builder.Update("users").
		Set("provider", provider).
		Set("provider_id", providerID).
		Set("email_verified", true).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})
	if avatarURL != nil {
		q = q.Set("avatar_url", *avatarURL)
	}
	_, err := db.Exec(ctx, r.pool, q)
	return err
}

func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	q := db.Builder.Update("users").
		Set("password_hash", hash).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "deleted_at": nil})
	_, err := db.Exec(ctx, r.pool, q)
	return err
}

func (r *Repository) UpdatePlan(ctx context.Context, id uuid.UUID, plan models.PlanID) (*models.User, error) {
	q := db.Builder.Update("users").
		Set("plan", plan).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + columnList())

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	u, err := scanUser(r.pool.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.WithArgs(apperr.KindNotFound, apperr.CodeUserNotFound,
			map[string]string{"id": id.String()})
	}
	return u, err
}

// SoftDelete hides the user from all finders without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	q := db.Builder.Update("users").
		Set("deleted_at", sq.Expr("now()")).
		Set("is_active", false).
		Where(sq.Eq{"id": id, "deleted_at": nil})
	tag, err := db.Exec(ctx, r.pool, q)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.WithArgs(apperr.KindNotFound, apperr.CodeUserNotFound,
			map[string]string{"id": id.String()})
	}
	return nil
}

// PlanID resolves just the user's current plan identifier. Satisfies
// plans.UserPlans.
func (r *Repository) PlanID(ctx context.Context, id uuid.UUID) (models.PlanID, error) {
	q := db.Builder.Select("plan").From("users").
		Where(sq.Eq{"id": id, "deleted_at": nil})

	var plan models.PlanID
	err := db.Row(ctx, r.pool, q).Scan(&plan)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.WithArgs(apperr.KindNotFound, apperr.CodeUserNotFound,
			map[string]string{"id": id.String()})
	}
	return plan, err
}

func selectUsers() sq.SelectBuilder {
	return db.Builder.Select(userColumns...).From("users")
}

func columnList() string {
	s := userColumns[0]
	for _, c := range userColumns[1:] {
		s += ", " + c
	}
	return s
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Provider,
		&u.ProviderID, &u.AvatarURL, &u.EmailVerified, &u.IsActive, &u.Role,
		&u.Plan, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

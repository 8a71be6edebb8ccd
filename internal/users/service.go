package users

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/models"
)

const bcryptCost = 10

// PlanInvalidator drops a user's cached entitlement data after a plan
// change. Stale entitlements are a correctness risk, not a perf one.
type PlanInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// Service holds user business rules on top of the repository.
type Service struct {
	repo  *Repository
	plans PlanInvalidator
}

func NewService(repo *Repository, plans PlanInvalidator) *Service {
	return &Service{repo: repo, plans: plans}
}

type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindConflict, apperr.CodeEmailInUse)
	}

	var hash *string
	if req.Password != "" {
		b, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		h := string(b)
		hash = &h
	}

	u, err := s.repo.Create(ctx, CreateParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Provider:     models.ProviderLocal,
		Role:         models.RoleUser,
		Plan:         models.PlanFree,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", u.ID.String()).Str("email", u.Email).Msg("user created")
	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Provider != models.ProviderLocal && p.Email != nil {
		return nil, apperr.New(apperr.KindValidation, apperr.CodeCannotChangeEmail)
	}
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("user_id", id.String()).Msg("user soft-deleted")
	return nil
}

func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u.PasswordHash == nil {
		return apperr.New(apperr.KindValidation, apperr.CodeNoPassword)
	}
	if bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(oldPassword)) != nil {
		return apperr.New(apperr.KindValidation, apperr.CodeWrongPassword)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, string(b))
}

// ChangePlan moves a user to another plan. The enterprise plan is
// reserved to administrative callers; everything else is open.
func (s *Service) ChangePlan(ctx context.Context, callerRole models.Role, id uuid.UUID, newPlan models.PlanID) (*models.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validatePlanChange(u.Plan, newPlan, callerRole); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdatePlan(ctx, id, newPlan)
	if err != nil {
		return nil, err
	}
	if s.plans != nil {
		s.plans.Invalidate(ctx, id)
	}
	log.Info().
		Str("user_id", id.String()).
		Str("from", string(u.Plan)).
		Str("to", string(newPlan)).
		Msg("plan changed")
	return updated, nil
}

func validatePlanChange(current, next models.PlanID, callerRole models.Role) error {
	if !next.Valid() {
		return apperr.WithArgs(apperr.KindValidation, apperr.CodeUnknownPlan,
			map[string]string{"plan": string(next)})
	}
	if current == next {
		return apperr.WithArgs(apperr.KindValidation, apperr.CodeAlreadyOnPlan,
			map[string]string{"plan": string(next)})
	}
	if next == models.PlanEnterprise && callerRole != models.RoleAdmin {
		return apperr.New(apperr.KindForbidden, apperr.CodeEnterpriseAdminOnly)
	}
	return nil
}

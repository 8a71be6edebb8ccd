package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/models"
	"matchday-backend/internal/users"
)

type Service struct {
	users  *users.Service
	repo   *users.Repository
	issuer *TokenIssuer
}

func NewService(usersSvc *users.Service, repo *users.Repository, issuer *TokenIssuer) *Service {
	return &Service{users: usersSvc, repo: repo, issuer: issuer}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, TokenPair, error) {
	u, err := s.users.Create(ctx, users.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.issuer.Issue(u)
	return u, pair, err
}

// Login verifies the password and issues tokens. Every failure mode
// reports the same invalid-credentials error, including missing users.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, TokenPair, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if u == nil || u.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)) != nil {
		return nil, TokenPair{}, apperr.New(apperr.KindUnauthorized, apperr.CodeInvalidCredentials)
	}

	pair, err := s.issuer.Issue(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	log.Info().Str("user_id", u.ID.String()).Msg("user logged in")
	return u, pair, nil
}

// Refresh trades a valid refresh token for a fresh pair. Claims are
// re-read from the database so role and plan changes take effect.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindUnauthorized, apperr.CodeInvalidToken, err)
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TokenPair{}, err
	}
	return s.issuer.Issue(u)
}

func (s *Service) Me(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Profile is the normalized identity an OAuth provider reports.
type Profile struct {
	Provider   models.Provider
	ProviderID string
	Email      string
	Name       string
	AvatarURL  *string
}

// OAuthLogin upserts the account keyed by email. An existing account is
// relinked to the reporting provider; a new one is created verified on
// the free plan.
func (s *Service) OAuthLogin(ctx context.Context, p Profile) (*models.User, TokenPair, error) {
	if p.Email == "" {
		return nil, TokenPair{}, apperr.WithArgs(apperr.KindValidation, apperr.CodeOAuthEmailMissing,
			map[string]string{"provider": string(p.Provider)})
	}

	u, err := s.repo.FindByEmail(ctx, p.Email)
	if err != nil {
		return nil, TokenPair{}, err
	}

	switch {
	case u == nil:
		u, err = s.repo.Create(ctx, users.CreateParams{
			Name:          p.Name,
			Email:         p.Email,
			Provider:      p.Provider,
			ProviderID:    &p.ProviderID,
			AvatarURL:     p.AvatarURL,
			EmailVerified: true,
			Role:          models.RoleUser,
			Plan:          models.PlanFree,
		})
		if err != nil {
			return nil, TokenPair{}, err
		}
		log.Info().
			Str("user_id", u.ID.String()).
			Str("provider", string(p.Provider)).
			Msg("oauth user created")
	case u.Provider != p.Provider || u.ProviderID == nil || *u.ProviderID != p.ProviderID:
		if err := s.repo.SetProvider(ctx, u.ID, p.Provider, p.ProviderID, p.AvatarURL); err != nil {
			return nil, TokenPair{}, err
		}
		if u, err = s.repo.FindByID(ctx, u.ID); err != nil {
			return nil, TokenPair{}, err
		}
	}

	pair, err := s.issuer.Issue(u)
	return u, pair, err
}

package matches

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/models"
	"matchday-backend/internal/plans"
)

// store is the persistence surface the service depends on. Satisfied
// by *Repository.
type store interface {
	Create(ctx context.Context, p CreateParams) (*models.Match, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	List(ctx context.Context) ([]models.Match, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) (*models.Match, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MatchesThisMonth(ctx context.Context, userID uuid.UUID) (int, error)
	beginFormation(ctx context.Context) (formation, error)
}

// formation is one team-formation attempt: a transaction that holds the
// match row lock from lockMatch until Commit or Rollback.
type formation interface {
	lockMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	countTeams(ctx context.Context, matchID uuid.UUID) (int, error)
	insertTeams(ctx context.Context, matchID uuid.UUID, assignments []assignment) ([]models.Team, error)
	setStatus(ctx context.Context, matchID uuid.UUID, status models.MatchStatus) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Service struct {
	repo store
	ent  *plans.Entitlements
}

func NewService(repo *Repository, ent *plans.Entitlements) *Service {
	return &Service{repo: repo, ent: ent}
}

type CreateInput struct {
	GameID    string
	Mode      models.FormationMode
	TeamCount int
	CreatedBy uuid.UUID
	Players   []uuid.UUID
}

// Create registers a new match after checking the creator's monthly
// allowance. Duplicate player ids in the request are collapsed.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Match, error) {
	used, err := s.repo.MatchesThisMonth(ctx, in.CreatedBy)
	if err != nil {
		return nil, err
	}
	if err := s.ent.ValidateMatchCreation(ctx, in.CreatedBy, used); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(in.Players))
	players := make([]uuid.UUID, 0, len(in.Players))
	for _, id := range in.Players {
		if !seen[id] {
			seen[id] = true
			players = append(players, id)
		}
	}

	m, err := s.repo.Create(ctx, CreateParams{
		GameID:    in.GameID,
		Mode:      in.Mode,
		TeamCount: in.TeamCount,
		CreatedBy: in.CreatedBy,
		Players:   players,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("match_id", m.ID.String()).
		Str("game_id", m.GameID).
		Str("created_by", in.CreatedBy.String()).
		Int("players", len(players)).
		Msg("match created")
	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Match, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) (*models.Match, error) {
	if !status.Valid() {
		return nil, apperr.WithArgs(apperr.KindValidation, apperr.CodeInvalidStatus,
			map[string]string{"status": string(status)})
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// CreateTeamsManual splits the match players into the caller-provided
// teams and moves the match to in_progress.
func (s *Service) CreateTeamsManual(ctx context.Context, matchID uuid.UUID, specs []TeamSpec) (*models.Match, error) {
	return s.formTeams(ctx, matchID, func(m *models.Match) ([]assignment, error) {
		if err := validateManualAssignment(m, specs); err != nil {
			return nil, err
		}
		byID := make(map[uuid.UUID]models.User, len(m.Players))
		for _, p := range m.Players {
			byID[p.ID] = p
		}
		assignments := make([]assignment, 0, len(specs))
		for _, spec := range specs {
			members := make([]models.User, 0, len(spec.Players))
			for _, id := range spec.Players {
				members = append(members, byID[id])
			}
			assignments = append(assignments, assignment{name: spec.Name, players: members})
		}
		return assignments, nil
	})
}

// CreateTeamsRandom shuffles the match players into evenly sized teams
// named "Team 1" through "Team N". A non-empty seed makes the draw
// reproducible.
func (s *Service) CreateTeamsRandom(ctx context.Context, matchID uuid.UUID, seed string) (*models.Match, error) {
	return s.formTeams(ctx, matchID, func(m *models.Match) ([]assignment, error) {
		groups := randomPartition(m.Players, m.TeamCount, newRand(seed))
		assignments := make([]assignment, 0, len(groups))
		for i, g := range groups {
			assignments = append(assignments, assignment{
				name:    "Team " + strconv.Itoa(i+1),
				players: g,
			})
		}
		return assignments, nil
	})
}

// formTeams runs a formation attempt inside a transaction. The match
// row is locked for the duration, so of two concurrent attempts only
// one passes the "no teams yet" check.
func (s *Service) formTeams(ctx context.Context, matchID uuid.UUID, build func(*models.Match) ([]assignment, error)) (*models.Match, error) {
	f, err := s.repo.beginFormation(ctx)
	if err != nil {
		return nil, err
	}
	defer f.Rollback(ctx)

	m, err := f.lockMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	existing, err := f.countTeams(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperr.New(apperr.KindInvalidState, apperr.CodeTeamsAlreadyCreated)
	}
	if m.Status != models.MatchWaitingTeams {
		return nil, apperr.New(apperr.KindInvalidState, apperr.CodeMatchAlreadyStarted)
	}

	assignments, err := build(m)
	if err != nil {
		return nil, err
	}

	if _, err := f.insertTeams(ctx, matchID, assignments); err != nil {
		return nil, err
	}
	if err := f.setStatus(ctx, matchID, models.MatchInProgress); err != nil {
		return nil, err
	}
	if err := f.Commit(ctx); err != nil {
		return nil, err
	}

	log.Info().
		Str("match_id", matchID.String()).
		Int("teams", len(assignments)).
		Msg("teams formed")
	return s.repo.FindByID(ctx, matchID)
}

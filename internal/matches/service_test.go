package matches

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/models"
)

type fakeFormation struct {
	match   *models.Match
	lockErr error
	teams   int

	inserted   []assignment
	setTo      models.MatchStatus
	committed  bool
	rolledBack bool
}

func (f *fakeFormation) lockMatch(_ context.Context, _ uuid.UUID) (*models.Match, error) {
	if f.lockErr != nil {
		return nil, f.lockErr
	}
	return f.match, nil
}

func (f *fakeFormation) countTeams(_ context.Context, _ uuid.UUID) (int, error) {
	return f.teams, nil
}

func (f *fakeFormation) insertTeams(_ context.Context, matchID uuid.UUID, assignments []assignment) ([]models.Team, error) {
	f.inserted = assignments
	out := make([]models.Team, len(assignments))
	for i, a := range assignments {
		out[i] = models.Team{ID: uuid.New(), Name: a.name, MatchID: matchID, Players: a.players}
	}
	return out, nil
}

func (f *fakeFormation) setStatus(_ context.Context, _ uuid.UUID, status models.MatchStatus) error {
	f.setTo = status
	return nil
}

func (f *fakeFormation) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeFormation) Rollback(context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeStore struct {
	formation *fakeFormation
	reloaded  *models.Match
}

func (s *fakeStore) beginFormation(context.Context) (formation, error) {
	return s.formation, nil
}

func (s *fakeStore) FindByID(context.Context, uuid.UUID) (*models.Match, error) {
	return s.reloaded, nil
}

func (s *fakeStore) Create(context.Context, CreateParams) (*models.Match, error) { return nil, nil }
func (s *fakeStore) List(context.Context) ([]models.Match, error)                { return nil, nil }
func (s *fakeStore) UpdateStatus(context.Context, uuid.UUID, models.MatchStatus) (*models.Match, error) {
	return nil, nil
}
func (s *fakeStore) Delete(context.Context, uuid.UUID) error { return nil }
func (s *fakeStore) MatchesThisMonth(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}

func formationService(f *fakeFormation) (*Service, *fakeStore) {
	st := &fakeStore{formation: f, reloaded: f.match}
	return &Service{repo: st}, st
}

func TestFormTeamsPreconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("match not found", func(t *testing.T) {
		f := &fakeFormation{lockErr: apperr.New(apperr.KindNotFound, apperr.CodeMatchNotFound)}
		svc, _ := formationService(f)

		_, err := svc.CreateTeamsRandom(ctx, uuid.New(), "")
		require.Error(t, err)
		assert.Equal(t, apperr.CodeMatchNotFound, apperr.From(err).Code)
		assert.True(t, f.rolledBack)
		assert.False(t, f.committed)
	})

	t.Run("teams already created", func(t *testing.T) {
		m := makeMatch(2, 4)
		m.Status = models.MatchWaitingTeams
		f := &fakeFormation{match: m, teams: 2}
		svc, _ := formationService(f)

		_, err := svc.CreateTeamsRandom(ctx, m.ID, "")
		require.Error(t, err)
		e := apperr.From(err)
		assert.Equal(t, apperr.KindInvalidState, e.Kind)
		assert.Equal(t, apperr.CodeTeamsAlreadyCreated, e.Code)
		assert.Nil(t, f.inserted)
		assert.False(t, f.committed)
		assert.True(t, f.rolledBack)
	})

	t.Run("repeat after a successful formation", func(t *testing.T) {
		// Post-success state: teams exist and the match is already
		// in_progress. The teams-exist check wins.
		m := makeMatch(2, 4)
		m.Status = models.MatchInProgress
		f := &fakeFormation{match: m, teams: 2}
		svc, _ := formationService(f)

		_, err := svc.CreateTeamsRandom(ctx, m.ID, "")
		require.Error(t, err)
		assert.Equal(t, apperr.CodeTeamsAlreadyCreated, apperr.From(err).Code)
	})

	t.Run("match already started", func(t *testing.T) {
		m := makeMatch(2, 4)
		m.Status = models.MatchFinished
		f := &fakeFormation{match: m}
		svc, _ := formationService(f)

		_, err := svc.CreateTeamsRandom(ctx, m.ID, "")
		require.Error(t, err)
		e := apperr.From(err)
		assert.Equal(t, apperr.KindInvalidState, e.Kind)
		assert.Equal(t, apperr.CodeMatchAlreadyStarted, e.Code)
		assert.False(t, f.committed)
	})

	t.Run("manual validation failure aborts before insert", func(t *testing.T) {
		m := makeMatch(2, 4)
		m.Status = models.MatchWaitingTeams
		f := &fakeFormation{match: m}
		svc, _ := formationService(f)

		_, err := svc.CreateTeamsManual(ctx, m.ID, []TeamSpec{
			{Name: "Only one", Players: ids(m.Players)},
		})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidTeamCount, apperr.From(err).Code)
		assert.Nil(t, f.inserted)
		assert.False(t, f.committed)
		assert.True(t, f.rolledBack)
	})
}

func TestCreateTeamsRandomSuccess(t *testing.T) {
	ctx := context.Background()
	m := makeMatch(2, 5)
	m.Status = models.MatchWaitingTeams
	f := &fakeFormation{match: m}
	svc, st := formationService(f)

	got, err := svc.CreateTeamsRandom(ctx, m.ID, "derby")
	require.NoError(t, err)
	assert.Same(t, st.reloaded, got)

	require.Len(t, f.inserted, 2)
	assert.Equal(t, "Team 1", f.inserted[0].name)
	assert.Equal(t, "Team 2", f.inserted[1].name)
	assert.Len(t, f.inserted[0].players, 2)
	assert.Len(t, f.inserted[1].players, 3)

	assert.Equal(t, models.MatchInProgress, f.setTo)
	assert.True(t, f.committed)
}

func TestCreateTeamsManualSuccess(t *testing.T) {
	ctx := context.Background()
	m := makeMatch(2, 4)
	m.Status = models.MatchWaitingTeams
	p := ids(m.Players)
	f := &fakeFormation{match: m}
	svc, _ := formationService(f)

	_, err := svc.CreateTeamsManual(ctx, m.ID, []TeamSpec{
		{Name: "Red", Players: p[:2]},
		{Name: "Blue", Players: p[2:]},
	})
	require.NoError(t, err)

	require.Len(t, f.inserted, 2)
	assert.Equal(t, "Red", f.inserted[0].name)
	assert.Equal(t, "Blue", f.inserted[1].name)
	assert.Equal(t, p[:2], ids(f.inserted[0].players))
	assert.Equal(t, p[2:], ids(f.inserted[1].players))
	assert.Equal(t, models.MatchInProgress, f.setTo)
	assert.True(t, f.committed)
}

package matches

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/models"
)

func makeMatch(teamCount, playerCount int) *models.Match {
	m := &models.Match{TeamCount: teamCount}
	for i := 0; i < playerCount; i++ {
		m.Players = append(m.Players, models.User{ID: uuid.New()})
	}
	return m
}

func ids(players []models.User) []uuid.UUID {
	out := make([]uuid.UUID, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

func TestValidateManualAssignment(t *testing.T) {
	m := makeMatch(2, 4)
	p := ids(m.Players)

	t.Run("valid split", func(t *testing.T) {
		err := validateManualAssignment(m, []TeamSpec{
			{Name: "Red", Players: p[:2]},
			{Name: "Blue", Players: p[2:]},
		})
		assert.NoError(t, err)
	})

	t.Run("wrong team count", func(t *testing.T) {
		err := validateManualAssignment(m, []TeamSpec{
			{Name: "Everyone", Players: p},
		})
		require.Error(t, err)
		e := apperr.From(err)
		assert.Equal(t, apperr.CodeInvalidTeamCount, e.Code)
		assert.Equal(t, "2", e.Args["expected"])
		assert.Equal(t, "1", e.Args["received"])
	})

	t.Run("player outside the match", func(t *testing.T) {
		stranger := uuid.New()
		err := validateManualAssignment(m, []TeamSpec{
			{Name: "Red", Players: []uuid.UUID{p[0], stranger}},
			{Name: "Blue", Players: p[2:]},
		})
		require.Error(t, err)
		e := apperr.From(err)
		assert.Equal(t, apperr.CodePlayersNotInMatch, e.Code)
		assert.Contains(t, e.Args["players"], stranger.String())
	})

	t.Run("player on two teams", func(t *testing.T) {
		err := validateManualAssignment(m, []TeamSpec{
			{Name: "Red", Players: []uuid.UUID{p[0], p[1]}},
			{Name: "Blue", Players: []uuid.UUID{p[1], p[2]}},
		})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeDuplicatePlayers, apperr.From(err).Code)
	})

	t.Run("player left out", func(t *testing.T) {
		err := validateManualAssignment(m, []TeamSpec{
			{Name: "Red", Players: []uuid.UUID{p[0]}},
			{Name: "Blue", Players: []uuid.UUID{p[1], p[2]}},
		})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeMissingPlayers, apperr.From(err).Code)
	})

	t.Run("team count checked before membership", func(t *testing.T) {
		err := validateManualAssignment(m, []TeamSpec{
			{Name: "Red", Players: []uuid.UUID{uuid.New()}},
		})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidTeamCount, apperr.From(err).Code)
	})
}

func TestRandomPartition(t *testing.T) {
	t.Run("even split", func(t *testing.T) {
		m := makeMatch(2, 4)
		groups := randomPartition(m.Players, 2, newRand("fixture"))
		require.Len(t, groups, 2)
		assert.Len(t, groups[0], 2)
		assert.Len(t, groups[1], 2)
	})

	t.Run("last team absorbs the remainder", func(t *testing.T) {
		m := makeMatch(3, 10)
		groups := randomPartition(m.Players, 3, newRand("fixture"))
		require.Len(t, groups, 3)
		assert.Len(t, groups[0], 3)
		assert.Len(t, groups[1], 3)
		assert.Len(t, groups[2], 4)
	})

	t.Run("covers every player exactly once", func(t *testing.T) {
		m := makeMatch(4, 11)
		groups := randomPartition(m.Players, 4, newRand(""))

		seen := map[uuid.UUID]int{}
		for _, g := range groups {
			for _, p := range g {
				seen[p.ID]++
			}
		}
		require.Len(t, seen, 11)
		for _, n := range seen {
			assert.Equal(t, 1, n)
		}
	})

	t.Run("same seed reproduces the draw", func(t *testing.T) {
		m := makeMatch(2, 8)
		a := randomPartition(m.Players, 2, newRand("derby"))
		b := randomPartition(m.Players, 2, newRand("derby"))
		assert.Equal(t, a, b)
	})

	t.Run("input order is untouched", func(t *testing.T) {
		m := makeMatch(2, 6)
		before := ids(m.Players)
		randomPartition(m.Players, 2, newRand("x"))
		assert.Equal(t, before, ids(m.Players))
	})
}

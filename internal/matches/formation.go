package matches

import (
	crand "crypto/rand"
	"encoding/binary"
	"hash/fnv"
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/models"
)

// TeamSpec is one requested team in a manual formation.
type TeamSpec struct {
	Name    string      `json:"name" binding:"required"`
	Players []uuid.UUID `json:"players" binding:"required,min=1"`
}

// validateManualAssignment checks a manual partition against the match
// invariants, first failure wins:
//  1. the number of teams equals the match's configured team count
//  2. every assigned player belongs to the match
//  3. no player appears in more than one team
//  4. every match player is assigned (no omissions)
func validateManualAssignment(m *models.Match, specs []TeamSpec) error {
	if len(specs) != m.TeamCount {
		return apperr.WithArgs(apperr.KindValidation, apperr.CodeInvalidTeamCount,
			map[string]string{
				"expected": strconv.Itoa(m.TeamCount),
				"received": strconv.Itoa(len(specs)),
			})
	}

	inMatch := make(map[uuid.UUID]bool, len(m.Players))
	for _, p := range m.Players {
		inMatch[p.ID] = true
	}

	var all []uuid.UUID
	for _, spec := range specs {
		all = append(all, spec.Players...)
	}

	var foreign []string
	for _, id := range all {
		if !inMatch[id] {
			foreign = append(foreign, id.String())
		}
	}
	if len(foreign) > 0 {
		return apperr.WithArgs(apperr.KindValidation, apperr.CodePlayersNotInMatch,
			map[string]string{"players": strings.Join(foreign, ", ")})
	}

	unique := make(map[uuid.UUID]bool, len(all))
	for _, id := range all {
		unique[id] = true
	}
	if len(unique) != len(all) {
		return apperr.New(apperr.KindValidation, apperr.CodeDuplicatePlayers)
	}
	if len(unique) != len(m.Players) {
		return apperr.New(apperr.KindValidation, apperr.CodeMissingPlayers)
	}
	return nil
}

// randomPartition shuffles the players with Fisher-Yates and slices them
// into teamCount contiguous groups of floor(n/teamCount) players. The
// last team absorbs the division remainder; this is deliberate, do not
// rebalance.
func randomPartition(players []models.User, teamCount int, rng *rand.Rand) [][]models.User {
	shuffled := make([]models.User, len(players))
	copy(shuffled, players)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	base := len(shuffled) / teamCount
	out := make([][]models.User, teamCount)
	for i := 0; i < teamCount; i++ {
		start := i * base
		end := start + base
		if i == teamCount-1 {
			end = len(shuffled)
		}
		out[i] = shuffled[start:end]
	}
	return out
}

// newRand returns a seeded source when seed is non-empty, so a caller
// can reproduce an assignment, and a crypto-seeded one otherwise.
func newRand(seed string) *rand.Rand {
	if seed != "" {
		h := fnv.New64a()
		_, _ = h.Write([]byte(seed))
		return rand.New(rand.NewSource(int64(h.Sum64())))
	}
	var b [8]byte
	if _, err := crand.Read(b[:]); err == nil {
		return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

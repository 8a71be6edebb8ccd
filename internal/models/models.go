// Package models holds the entities shared across features.
package models

import (
	"time"

	"github.com/google/uuid"
)

type Provider string

const (
	ProviderLocal    Provider = "local"
	ProviderGoogle   Provider = "google"
	ProviderFacebook Provider = "facebook"
	ProviderDiscord  Provider = "discord"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type PlanID string

const (
	PlanFree       PlanID = "free"
	PlanBasic      PlanID = "basic"
	PlanPro        PlanID = "pro"
	PlanEnterprise PlanID = "enterprise"
)

var planRank = map[PlanID]int{
	PlanFree:       0,
	PlanBasic:      1,
	PlanPro:        2,
	PlanEnterprise: 3,
}

// Rank returns the position of the plan in the upgrade order
// free < basic < pro < enterprise, or -1 for an unknown plan.
func (p PlanID) Rank() int {
	r, ok := planRank[p]
	if !ok {
		return -1
	}
	return r
}

func (p PlanID) Valid() bool {
	_, ok := planRank[p]
	return ok
}

type MatchStatus string

const (
	// MatchPending is reserved; nothing transitions into it yet.
	MatchPending      MatchStatus = "pending"
	MatchWaitingTeams MatchStatus = "waiting_teams"
	MatchInProgress   MatchStatus = "in_progress"
	MatchFinished     MatchStatus = "finished"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchPending, MatchWaitingTeams, MatchInProgress, MatchFinished:
		return true
	}
	return false
}

type FormationMode string

const (
	FormationManual FormationMode = "manual"
	FormationRandom FormationMode = "random"
)

func (m FormationMode) Valid() bool {
	return m == FormationManual || m == FormationRandom
}

type User struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  *string   `json:"-"`
	Provider      Provider  `json:"provider"`
	ProviderID    *string   `json:"providerId,omitempty"`
	AvatarURL     *string   `json:"avatarUrl,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	IsActive      bool      `json:"isActive"`
	Role          Role      `json:"role"`
	Plan          PlanID    `json:"plan"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PlanFeatures is the entitlement record attached to a plan.
// A nil limit means unlimited.
type PlanFeatures struct {
	MaxMatchesPerMonth     *int `json:"maxMatchesPerMonth"`
	MaxTournamentsPerMonth *int `json:"maxTournamentsPerMonth"`
	AdvancedStats          bool `json:"advancedStats"`
	KnockoutMode           bool `json:"knockoutMode"`
	TeamManagement         bool `json:"teamManagement"`
	PrioritySupport        bool `json:"prioritySupport"`
}

type Plan struct {
	ID           PlanID       `json:"id"`
	Name         string       `json:"name"`
	Price        int          `json:"price"` // minor currency units
	Currency     string       `json:"currency"`
	Features     PlanFeatures `json:"features"`
	IsEnterprise bool         `json:"isEnterprise"`
	IsActive     bool         `json:"isActive"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type Team struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	MatchID   uuid.UUID `json:"matchId"`
	Players   []User    `json:"players"`
	CreatedAt time.Time `json:"createdAt"`
}

type Match struct {
	ID                uuid.UUID     `json:"id"`
	GameID            string        `json:"gameId"`
	Status            MatchStatus   `json:"status"`
	TeamFormationMode FormationMode `json:"teamFormationMode"`
	TeamCount         int           `json:"teamCount"`
	CreatedBy         *User         `json:"createdBy,omitempty"`
	CreatedByID       uuid.UUID     `json:"createdById"`
	Players           []User        `json:"players"`
	Teams             []Team        `json:"teams"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

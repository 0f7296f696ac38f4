package models

import "time"

// Badge codes, in rule-evaluation order.
const (
	BadgeFirstStep     = "FIRST_STEP"
	BadgeStreak3       = "STREAK_3"
	BadgeStreak7       = "STREAK_7"
	BadgeStreak30      = "STREAK_30"
	BadgeEarlyBird     = "EARLY_BIRD"
	BadgeNightOwl      = "NIGHT_OWL"
	BadgeBalanceMaster = "BALANCE_MASTER"
	BadgeActiveSoul    = "ACTIVE_SOUL"
)

// Badge is a newly earned achievement returned to the caller.
type Badge struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BadgeRecord is the persisted form of an earned badge. Append-only; at most
// one record per (user, code) pair ever exists, enforced by a unique index.
type BadgeRecord struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"userId" json:"user_id"`
	BadgeCode string    `bson:"badgeCode" json:"badge_code"`
	EarnedAt  time.Time `bson:"earnedAt" json:"earned_at"`
}

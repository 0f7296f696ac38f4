package services

import (
	"context"
	"errors"
	"log"
	"time"

	"auramind/internal/database"
	"auramind/pkg/models"

	"github.com/google/uuid"
)

// AwardStore is the datastore capability the badge engine consumes.
type AwardStore interface {
	ListCodes(ctx context.Context, userID string) (map[string]struct{}, error)
	Insert(ctx context.Context, record models.BadgeRecord) error
}

// badgeNames maps codes to display names.
var badgeNames = map[string]string{
	models.BadgeFirstStep:     "First journal entry",
	models.BadgeStreak3:       "3-day streak",
	models.BadgeStreak7:       "7-day streak",
	models.BadgeStreak30:      "30-day streak",
	models.BadgeEarlyBird:     "Early riser (5:00-8:00)",
	models.BadgeNightOwl:      "Night owl (23:00-4:00)",
	models.BadgeBalanceMaster: "Perfect balance (good mood + enough sleep)",
	models.BadgeActiveSoul:    "Active soul (5000+ steps)",
}

const badgeEarnedDescription = "You unlocked a new achievement!"

// BadgeService evaluates the achievement rule set against a new log entry and
// the user's aggregate profile, persisting anything newly earned.
type BadgeService struct {
	awards AwardStore
}

// NewBadgeService creates a badge rule engine over the given award store.
func NewBadgeService(awards AwardStore) *BadgeService {
	return &BadgeService{awards: awards}
}

// CheckNewBadges runs the fixed rule set and returns the badges awarded by
// this evaluation, in rule order. Evaluation is idempotent: codes already
// recorded for the user are never re-awarded. A persistence failure for one
// candidate is logged and skipped without blocking the others.
func (s *BadgeService) CheckNewBadges(ctx context.Context, userID string, newLog models.MoodLog, profile models.UserProfile) []models.Badge {
	existing, err := s.awards.ListCodes(ctx, userID)
	if err != nil {
		// Fail open: the unique index still guards against double awards.
		log.Printf("⚠️ [BADGES] Failed to list existing badges for user %s, relying on store dedup: %v", userID, err)
		existing = make(map[string]struct{})
	}

	newlyEarned := make([]models.Badge, 0)
	for _, code := range candidateCodes(newLog, profile) {
		if _, earned := existing[code]; earned {
			continue
		}

		record := models.BadgeRecord{
			ID:        uuid.NewString(),
			UserID:    userID,
			BadgeCode: code,
			EarnedAt:  time.Now().UTC(),
		}
		if err := s.awards.Insert(ctx, record); err != nil {
			if errors.Is(err, database.ErrDuplicateBadge) {
				// Another evaluation won the race; the badge exists, move on.
				existing[code] = struct{}{}
				continue
			}
			log.Printf("⚠️ [BADGES] Failed to award %s to user %s: %v", code, userID, err)
			continue
		}

		existing[code] = struct{}{}
		newlyEarned = append(newlyEarned, models.Badge{
			Code:        code,
			Name:        badgeNames[code],
			Description: badgeEarnedDescription,
		})
	}

	return newlyEarned
}

// candidateCodes evaluates every rule and returns the candidates in rule
// order. FIRST_STEP is always a candidate; dedup against stored codes is what
// keeps it a one-time award.
func candidateCodes(newLog models.MoodLog, profile models.UserProfile) []string {
	candidates := []string{models.BadgeFirstStep}

	if profile.CurrentStreak >= 3 {
		candidates = append(candidates, models.BadgeStreak3)
	}
	if profile.CurrentStreak >= 7 {
		candidates = append(candidates, models.BadgeStreak7)
	}
	if profile.CurrentStreak >= 30 {
		candidates = append(candidates, models.BadgeStreak30)
	}

	createdAt := newLog.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	hour := createdAt.Hour()
	if hour >= 5 && hour < 8 {
		candidates = append(candidates, models.BadgeEarlyBird)
	} else if hour >= 23 || hour < 4 {
		candidates = append(candidates, models.BadgeNightOwl)
	}

	var sleep float64
	var steps int
	if newLog.HealthMetrics != nil {
		sleep = newLog.HealthMetrics.SleepHours
		steps = newLog.HealthMetrics.Steps
	}
	if newLog.MoodScore >= 7 && sleep >= 7 {
		candidates = append(candidates, models.BadgeBalanceMaster)
	}
	if steps >= 5000 {
		candidates = append(candidates, models.BadgeActiveSoul)
	}

	return candidates
}

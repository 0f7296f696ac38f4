package services

import (
	"context"
	"log"
	"time"

	"auramind/pkg/models"
)

// HistoryStore is the datastore capability the context provider consumes.
type HistoryStore interface {
	QueryRecent(ctx context.Context, userID string, since time.Time) ([]models.HistoryEntry, error)
}

// DefaultHistoryWindowDays is the trailing window the context is derived from.
const DefaultHistoryWindowDays = 7

// ContextService derives a user's recent journaling context (streak, rolling
// mood average) from the trailing history window. The result is recomputed on
// every request and never persisted.
type ContextService struct {
	history    HistoryStore
	windowDays int
}

// NewContextService creates a context provider over the given history store.
func NewContextService(history HistoryStore, windowDays int) *ContextService {
	if windowDays <= 0 {
		windowDays = DefaultHistoryWindowDays
	}
	return &ContextService{history: history, windowDays: windowDays}
}

// GetUserContext fetches the user's recent history and derives streak, total
// and average mood. Any store failure yields the zero-context default; a user
// with no history gets a neutral mood prior of 5, not an error.
func (s *ContextService) GetUserContext(ctx context.Context, userID string) models.UserContext {
	zero := models.UserContext{AvgMood: 5}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -s.windowDays)

	entries, err := s.history.QueryRecent(ctx, userID, since)
	if err != nil {
		log.Printf("⚠️ [CONTEXT] History fetch failed for user %s, using zero context: %v", userID, err)
		return zero
	}
	if len(entries) == 0 {
		return zero
	}

	var moodSum int
	days := make(map[string]bool, len(entries))
	for _, entry := range entries {
		moodSum += entry.MoodScore
		days[entry.CreatedAt.UTC().Format("2006-01-02")] = true
	}

	return models.UserContext{
		Streak:     streakFrom(days, now),
		TotalLogs:  len(entries),
		AvgMood:    float64(moodSum) / float64(len(entries)),
		HasContext: true,
	}
}

// streakFrom counts consecutive calendar days with at least one entry,
// walking backward from today and stopping at the first gap.
func streakFrom(days map[string]bool, now time.Time) int {
	streak := 0
	for day := now; days[day.Format("2006-01-02")]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

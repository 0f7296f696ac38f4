package models

import "time"

// Emotion is the primary emotional tone detected in a journal entry.
type Emotion string

const (
	EmotionJoy     Emotion = "joy"
	EmotionSadness Emotion = "sadness"
	EmotionAnger   Emotion = "anger"
	EmotionAnxiety Emotion = "anxiety"
	EmotionCalm    Emotion = "calm"
	EmotionFatigue Emotion = "fatigue"
	EmotionNeutral Emotion = "neutral"
)

// KnownEmotions is the closed set of emotions the analyzer may emit.
// Anything outside this set coming back from the model is normalized to neutral.
var KnownEmotions = map[Emotion]bool{
	EmotionJoy:     true,
	EmotionSadness: true,
	EmotionAnger:   true,
	EmotionAnxiety: true,
	EmotionCalm:    true,
	EmotionFatigue: true,
	EmotionNeutral: true,
}

// EmotionalMetrics is the structured analysis of a single journal entry.
// All three scores are always within [1,10]; Activities never contains
// empty or whitespace-only entries.
type EmotionalMetrics struct {
	MoodScore      int      `json:"mood_score"`
	StressLevel    int      `json:"stress_level"`
	EnergyLevel    int      `json:"energy_level"`
	PrimaryEmotion Emotion  `json:"primary_emotion"`
	Activities     []string `json:"activities"`
	Summary        string   `json:"summary"`
}

// PipelineResult is the complete output of one journal-entry pipeline run.
// Immutable once returned; the caller owns persistence.
type PipelineResult struct {
	EmotionalMetrics
	AIFeedback  string      `json:"ai_feedback"`
	AvatarState AvatarState `json:"avatar_state"`
}

// HealthMetrics carries device-reported health data attached to a log.
type HealthMetrics struct {
	SleepHours float64 `bson:"sleepHours" json:"sleep_hours"`
	Steps      int     `bson:"steps" json:"steps"`
}

// MoodLog represents a stored journal entry for a user.
type MoodLog struct {
	ID              string         `bson:"_id,omitempty" json:"id"`
	UserID          string         `bson:"userId" json:"user_id"`
	MoodScore       int            `bson:"moodScore" json:"mood_score"`
	StressLevel     int            `bson:"stressLevel" json:"stress_level"`
	EnergyLevel     int            `bson:"energyLevel" json:"energy_level"`
	Note            string         `bson:"note,omitempty" json:"note,omitempty"`
	VoiceTranscript string         `bson:"voiceTranscript,omitempty" json:"voice_transcript,omitempty"`
	Activities      []string       `bson:"activities,omitempty" json:"activities,omitempty"`
	AIFeedback      string         `bson:"aiFeedback,omitempty" json:"ai_feedback,omitempty"`
	HealthMetrics   *HealthMetrics `bson:"healthMetrics,omitempty" json:"health_metrics,omitempty"`
	CreatedAt       time.Time      `bson:"createdAt" json:"created_at"`
}

// HistoryEntry is the slim projection of a mood log used for context building.
type HistoryEntry struct {
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	MoodScore int       `bson:"moodScore" json:"mood_score"`
}

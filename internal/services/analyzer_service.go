package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"auramind/pkg/models"
)

// TextGenerator is the generative-text capability the pipeline stages consume.
// When structured is true the returned text is expected to parse as JSON.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, structured bool) (string, error)
}

// ValidationError marks a structured generation response whose shape could not
// be used. It is logged at the stage boundary, never propagated.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid analysis response: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Analyzer system prompt. The response contract lives entirely in this prompt;
// the model is additionally pinned to JSON output by the generation client.
const moodAnalysisPrompt = `You are the analysis engine of Auramind, a journaling companion.
Analyze the journal entry below and respond with a single JSON object with exactly these keys:
- "mood_score": integer 1-10 (1 = very low, 10 = excellent)
- "stress_level": integer 1-10 (1 = fully relaxed, 10 = extremely stressed)
- "energy_level": integer 1-10 (1 = drained, 10 = energized)
- "primary_emotion": one of "joy", "sadness", "anger", "anxiety", "calm", "fatigue", "neutral"
- "activities": array of short activity strings mentioned in the entry (empty array if none)
- "summary": one sentence summarizing the entry

JOURNAL ENTRY:
%s`

const analysisFallbackSummary = "Could not analyze this entry."

// MoodAnalysisSchema defines structured output for the analysis stage. Pass it
// to the generation client so providers with schema support enforce the same
// contract the prompt states. The sanitizer still re-checks everything.
var MoodAnalysisSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"mood_score": map[string]interface{}{
			"type":    "integer",
			"minimum": 1,
			"maximum": 10,
		},
		"stress_level": map[string]interface{}{
			"type":    "integer",
			"minimum": 1,
			"maximum": 10,
		},
		"energy_level": map[string]interface{}{
			"type":    "integer",
			"minimum": 1,
			"maximum": 10,
		},
		"primary_emotion": map[string]interface{}{
			"type": "string",
			"enum": []string{"joy", "sadness", "anger", "anxiety", "calm", "fatigue", "neutral"},
		},
		"activities": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "string",
			},
		},
		"summary": map[string]interface{}{
			"type": "string",
		},
	},
	"required":             []string{"mood_score", "stress_level", "energy_level", "primary_emotion", "activities", "summary"},
	"additionalProperties": false,
}

// AnalyzerService turns free-text journal input into structured emotional metrics.
type AnalyzerService struct {
	generator TextGenerator
}

// NewAnalyzerService creates a new analyzer stage.
func NewAnalyzerService(generator TextGenerator) *AnalyzerService {
	return &AnalyzerService{generator: generator}
}

// analysisResponse is the loosely-typed shape coming back from the model.
// Scores may arrive as floats and activities may contain nulls or junk; the
// sanitizer never trusts any of it.
type analysisResponse struct {
	MoodScore      *float64 `json:"mood_score"`
	StressLevel    *float64 `json:"stress_level"`
	EnergyLevel    *float64 `json:"energy_level"`
	PrimaryEmotion string   `json:"primary_emotion"`
	Activities     []any    `json:"activities"`
	Summary        string   `json:"summary"`
}

// Analyze runs the analysis stage over the combined (already trimmed,
// non-empty) journal text. It always returns usable metrics; the second
// return value reports whether the fixed fallback was substituted.
func (s *AnalyzerService) Analyze(ctx context.Context, text string) (models.EmotionalMetrics, bool) {
	raw, err := s.generator.Generate(ctx, fmt.Sprintf(moodAnalysisPrompt, text), true)
	if err != nil {
		log.Printf("⚠️ [ANALYZER] Generation failed, using fallback metrics: %v", err)
		return fallbackMetrics(), true
	}

	var parsed analysisResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		vErr := &ValidationError{Reason: "response is not a JSON object", Err: err}
		log.Printf("⚠️ [ANALYZER] %v (response length: %d bytes), using fallback metrics", vErr, len(raw))
		return fallbackMetrics(), true
	}

	return sanitizeMetrics(parsed), false
}

// fallbackMetrics is the fixed record substituted on any analysis failure.
func fallbackMetrics() models.EmotionalMetrics {
	return models.EmotionalMetrics{
		MoodScore:      5,
		StressLevel:    5,
		EnergyLevel:    5,
		PrimaryEmotion: models.EmotionNeutral,
		Activities:     []string{},
		Summary:        analysisFallbackSummary,
	}
}

// sanitizeMetrics clamps every score, normalizes the emotion, and filters the
// activity list, regardless of how well-behaved the upstream model was.
func sanitizeMetrics(parsed analysisResponse) models.EmotionalMetrics {
	return models.EmotionalMetrics{
		MoodScore:      clampScore(parsed.MoodScore),
		StressLevel:    clampScore(parsed.StressLevel),
		EnergyLevel:    clampScore(parsed.EnergyLevel),
		PrimaryEmotion: normalizeEmotion(parsed.PrimaryEmotion),
		Activities:     filterActivities(parsed.Activities),
		Summary:        strings.TrimSpace(parsed.Summary),
	}
}

// clampScore rounds to int and clamps to [1,10]. A score the model omitted
// falls back to the neutral 5; an explicit out-of-range value clamps instead.
func clampScore(v *float64) int {
	if v == nil {
		return 5
	}
	score := int(math.Round(*v))
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

func normalizeEmotion(raw string) models.Emotion {
	emotion := models.Emotion(strings.ToLower(strings.TrimSpace(raw)))
	if emotion == "" || !models.KnownEmotions[emotion] {
		return models.EmotionNeutral
	}
	return emotion
}

// filterActivities keeps trimmed, non-empty string entries in their original
// order. Nulls, non-strings, and whitespace-only entries are dropped.
func filterActivities(raw []any) []string {
	activities := make([]string, 0, len(raw))
	for _, entry := range raw {
		s, ok := entry.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		activities = append(activities, s)
	}
	return activities
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"auramind/pkg/models"
)

func newTestPipeline(gen TextGenerator, history HistoryStore) *PipelineService {
	var contextSvc *ContextService
	if history != nil {
		contextSvc = NewContextService(history, 7)
	}
	return NewPipelineService(NewAnalyzerService(gen), contextSvc, NewEmpathyService(gen))
}

func TestPipelineService_EmptyInputShortCircuits(t *testing.T) {
	tests := []struct {
		name       string
		note       string
		transcript string
	}{
		{"both empty", "", ""},
		{"whitespace only", "   ", "\n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{response: "should not be called"}
			pipeline := newTestPipeline(gen, nil)

			result := pipeline.Run(context.Background(), PipelineInput{Note: tt.note, Transcript: tt.transcript})

			if gen.calls != 0 {
				t.Errorf("Expected no generation calls for empty input, got %d", gen.calls)
			}
			if result.AIFeedback != emptyInputFeedback {
				t.Errorf("Expected welcome feedback, got %q", result.AIFeedback)
			}
			if result.PrimaryEmotion != models.EmotionNeutral {
				t.Errorf("Expected neutral emotion, got %s", result.PrimaryEmotion)
			}
			if result.AvatarState != models.AvatarNeutral {
				t.Errorf("Expected NEUTRAL avatar, got %s", result.AvatarState)
			}
			if result.MoodScore != 5 || result.StressLevel != 5 || result.EnergyLevel != 5 {
				t.Errorf("Expected neutral scores, got %+v", result.EmotionalMetrics)
			}
		})
	}
}

func TestPipelineService_HappyPath(t *testing.T) {
	gen := &fakeGenerator{response: `{
		"mood_score": 9,
		"stress_level": 2,
		"energy_level": 8,
		"primary_emotion": "joy",
		"activities": ["hiking"],
		"summary": "Great day outside."
	}`}
	pipeline := newTestPipeline(gen, &fakeHistoryStore{})

	result := pipeline.Run(context.Background(), PipelineInput{Note: "amazing hike today", UserID: "user-1"})

	if result.MoodScore != 9 || result.PrimaryEmotion != models.EmotionJoy {
		t.Errorf("Unexpected metrics: %+v", result.EmotionalMetrics)
	}
	if result.AvatarState != models.AvatarJoyful {
		t.Errorf("Expected JOYFUL avatar, got %s", result.AvatarState)
	}
	if result.AIFeedback == "" {
		t.Error("Expected non-empty feedback")
	}
	// Analyzer and empathy both went through the generator.
	if gen.calls != 2 {
		t.Errorf("Expected 2 generation calls, got %d", gen.calls)
	}
}

func TestPipelineService_TotalAvailability(t *testing.T) {
	genDown := &fakeGenerator{err: errors.New("generation service down")}
	storeDown := &fakeHistoryStore{err: errors.New("datastore down")}

	tests := []struct {
		name    string
		gen     TextGenerator
		history HistoryStore
	}{
		{"generation down", genDown, &fakeHistoryStore{}},
		{"datastore down", &fakeGenerator{response: `{"mood_score": 6}`}, storeDown},
		{"both down", genDown, storeDown},
		{"no datastore wired", genDown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := newTestPipeline(tt.gen, tt.history)

			result := pipeline.Run(context.Background(), PipelineInput{Note: "rough day", UserID: "user-1"})

			if result == nil {
				t.Fatal("Pipeline must always return a result")
			}
			if result.MoodScore < 1 || result.MoodScore > 10 {
				t.Errorf("Mood score out of range: %d", result.MoodScore)
			}
			if result.AIFeedback == "" {
				t.Error("Expected non-empty feedback under failure")
			}
			if result.AvatarState == "" {
				t.Error("Expected a classified avatar state")
			}
		})
	}
}

func TestPipelineService_GenerationFailureUsesEmotionFallback(t *testing.T) {
	pipeline := newTestPipeline(&fakeGenerator{err: errors.New("down")}, nil)

	result := pipeline.Run(context.Background(), PipelineInput{Note: "some entry"})

	// Analyzer fell back to neutral metrics, so empathy uses the neutral template.
	if result.PrimaryEmotion != models.EmotionNeutral {
		t.Errorf("Expected neutral emotion, got %s", result.PrimaryEmotion)
	}
	if result.AIFeedback != FallbackResponse(models.EmotionNeutral) {
		t.Errorf("Expected neutral fallback feedback, got %q", result.AIFeedback)
	}
	if result.AvatarState != models.AvatarNeutral {
		t.Errorf("Expected NEUTRAL avatar from fallback scores, got %s", result.AvatarState)
	}
}

func TestPipelineService_CombinesNoteAndTranscript(t *testing.T) {
	gen := &fakeGenerator{response: `{"mood_score": 6, "stress_level": 4, "energy_level": 5, "primary_emotion": "calm"}`}
	pipeline := newTestPipeline(gen, nil)

	pipeline.Run(context.Background(), PipelineInput{Note: " typed note ", Transcript: " spoken part "})

	if !strings.Contains(gen.lastPrompt, "typed note spoken part") {
		t.Errorf("Expected combined trimmed text in prompt, got:\n%s", gen.lastPrompt)
	}
}

// panicGenerator simulates a defect escaping a stage guard.
type panicGenerator struct{}

func (panicGenerator) Generate(context.Context, string, bool) (string, error) {
	panic("unexpected defect")
}

func TestPipelineService_OuterBoundaryNeverPanics(t *testing.T) {
	pipeline := newTestPipeline(panicGenerator{}, nil)

	result := pipeline.Run(context.Background(), PipelineInput{Note: "entry"})

	if result == nil {
		t.Fatal("Expected coarse fallback result, not a panic")
	}
	if result.AIFeedback != technicalIssueFeedback {
		t.Errorf("Expected technical-issue feedback, got %q", result.AIFeedback)
	}
	if result.AvatarState != models.AvatarNeutral {
		t.Errorf("Expected NEUTRAL avatar, got %s", result.AvatarState)
	}
}

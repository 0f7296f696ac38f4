package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"auramind/pkg/models"
)

// fakeGenerator is the in-test text-generation capability, shared by the
// analyzer, empathy, and pipeline tests.
type fakeGenerator struct {
	response       string
	err            error
	calls          int
	lastPrompt     string
	lastStructured bool
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string, structured bool) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	g.lastStructured = structured
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func TestAnalyzerService_Analyze(t *testing.T) {
	gen := &fakeGenerator{response: `{
		"mood_score": 8,
		"stress_level": 3,
		"energy_level": 6,
		"primary_emotion": "joy",
		"activities": ["work", "gym"],
		"summary": "A good, productive day."
	}`}
	service := NewAnalyzerService(gen)

	metrics, degraded := service.Analyze(context.Background(), "had a great day at the gym")
	if degraded {
		t.Fatal("Expected non-degraded result")
	}
	if !gen.lastStructured {
		t.Error("Expected structured generation request")
	}
	if !strings.Contains(gen.lastPrompt, "had a great day at the gym") {
		t.Error("Expected prompt to embed the journal text")
	}
	if metrics.MoodScore != 8 || metrics.StressLevel != 3 || metrics.EnergyLevel != 6 {
		t.Errorf("Unexpected scores: %+v", metrics)
	}
	if metrics.PrimaryEmotion != models.EmotionJoy {
		t.Errorf("Expected joy, got %s", metrics.PrimaryEmotion)
	}
	if metrics.Summary != "A good, productive day." {
		t.Errorf("Unexpected summary: %q", metrics.Summary)
	}
}

func TestAnalyzerService_ActivitiesFilter(t *testing.T) {
	gen := &fakeGenerator{response: `{
		"mood_score": 6,
		"stress_level": 4,
		"energy_level": 5,
		"primary_emotion": "calm",
		"activities": ["work", "", "gym", null, "  ", "study"],
		"summary": "ok"
	}`}
	service := NewAnalyzerService(gen)

	metrics, _ := service.Analyze(context.Background(), "busy day")

	want := []string{"work", "gym", "study"}
	if !reflect.DeepEqual(metrics.Activities, want) {
		t.Errorf("Expected %v, got %v", want, metrics.Activities)
	}
}

func TestAnalyzerService_ClampsAndNormalizes(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantMood    int
		wantStress  int
		wantEnergy  int
		wantEmotion models.Emotion
	}{
		{
			name:        "scores out of range",
			response:    `{"mood_score": 15, "stress_level": -3, "energy_level": 4.6, "primary_emotion": "anger"}`,
			wantMood:    10,
			wantStress:  1,
			wantEnergy:  5,
			wantEmotion: models.EmotionAnger,
		},
		{
			name:        "explicit zero clamps instead of defaulting",
			response:    `{"mood_score": 0, "stress_level": 0, "energy_level": 0, "primary_emotion": "fatigue"}`,
			wantMood:    1,
			wantStress:  1,
			wantEnergy:  1,
			wantEmotion: models.EmotionFatigue,
		},
		{
			name:        "null scores default to neutral midpoint",
			response:    `{"mood_score": null, "stress_level": null, "energy_level": null, "primary_emotion": "calm"}`,
			wantMood:    5,
			wantStress:  5,
			wantEnergy:  5,
			wantEmotion: models.EmotionCalm,
		},
		{
			name:        "missing scores default to neutral midpoint",
			response:    `{"primary_emotion": "sadness", "summary": "rough"}`,
			wantMood:    5,
			wantStress:  5,
			wantEnergy:  5,
			wantEmotion: models.EmotionSadness,
		},
		{
			name:        "empty emotion defaults to neutral",
			response:    `{"mood_score": 6, "stress_level": 4, "energy_level": 5, "primary_emotion": ""}`,
			wantMood:    6,
			wantStress:  4,
			wantEnergy:  5,
			wantEmotion: models.EmotionNeutral,
		},
		{
			name:        "unknown emotion normalized to neutral",
			response:    `{"mood_score": 6, "stress_level": 4, "energy_level": 5, "primary_emotion": "ecstatic"}`,
			wantMood:    6,
			wantStress:  4,
			wantEnergy:  5,
			wantEmotion: models.EmotionNeutral,
		},
		{
			name:        "uppercase emotion accepted",
			response:    `{"mood_score": 6, "stress_level": 4, "energy_level": 5, "primary_emotion": " Anxiety "}`,
			wantMood:    6,
			wantStress:  4,
			wantEnergy:  5,
			wantEmotion: models.EmotionAnxiety,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewAnalyzerService(&fakeGenerator{response: tt.response})
			metrics, degraded := service.Analyze(context.Background(), "entry")
			if degraded {
				t.Fatal("Expected non-degraded result")
			}
			if metrics.MoodScore != tt.wantMood {
				t.Errorf("Expected mood %d, got %d", tt.wantMood, metrics.MoodScore)
			}
			if metrics.StressLevel != tt.wantStress {
				t.Errorf("Expected stress %d, got %d", tt.wantStress, metrics.StressLevel)
			}
			if metrics.EnergyLevel != tt.wantEnergy {
				t.Errorf("Expected energy %d, got %d", tt.wantEnergy, metrics.EnergyLevel)
			}
			if metrics.PrimaryEmotion != tt.wantEmotion {
				t.Errorf("Expected emotion %s, got %s", tt.wantEmotion, metrics.PrimaryEmotion)
			}
		})
	}
}

func TestAnalyzerService_FallbackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"generation error", &fakeGenerator{err: errors.New("provider down")}},
		{"unparsable response", &fakeGenerator{response: "I cannot do that as JSON, sorry."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewAnalyzerService(tt.gen)
			metrics, degraded := service.Analyze(context.Background(), "some entry")

			if !degraded {
				t.Fatal("Expected degraded result")
			}
			if metrics.MoodScore != 5 || metrics.StressLevel != 5 || metrics.EnergyLevel != 5 {
				t.Errorf("Expected neutral fallback scores, got %+v", metrics)
			}
			if metrics.PrimaryEmotion != models.EmotionNeutral {
				t.Errorf("Expected neutral emotion, got %s", metrics.PrimaryEmotion)
			}
			if len(metrics.Activities) != 0 {
				t.Errorf("Expected empty activities, got %v", metrics.Activities)
			}
			if metrics.Summary != analysisFallbackSummary {
				t.Errorf("Expected fallback summary, got %q", metrics.Summary)
			}
		})
	}
}

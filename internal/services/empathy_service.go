package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"auramind/pkg/models"
)

const empathyPrompt = `You are Aura, the warm companion inside the Auramind journaling app.
A user just wrote a journal entry. Respond directly to them.

Guidelines:
- 2-3 short sentences, conversational and supportive
- Acknowledge what they expressed, do not lecture
- Never make medical or diagnostic claims, never prescribe treatment
- Do not mention scores or metrics

Their entry: %q
Their mood score today: %d/10
Their primary emotion: %s
%s
Write your response now.`

const streakAcknowledgment = "They have journaled %d days in a row. Briefly acknowledge and encourage this streak.\n"

// empathyFallbacks maps the detected emotion to a fixed supportive response
// used whenever generation fails.
var empathyFallbacks = map[models.Emotion]string{
	models.EmotionJoy:     "It's lovely to hear some brightness in your day. Hold on to whatever brought that smile.",
	models.EmotionSadness: "It sounds like today carried some weight. Be gentle with yourself — heavy days do pass.",
	models.EmotionAnger:   "Something clearly got under your skin today. Your frustration is valid, and writing it down was a good release.",
	models.EmotionAnxiety: "There's a lot on your mind right now. One small step at a time is still moving forward.",
	models.EmotionCalm:    "There's a nice steadiness in what you shared. Moments of calm like this are worth noticing.",
	models.EmotionFatigue: "You sound worn out. Rest isn't a luxury — your body is asking for it.",
	models.EmotionNeutral: "Thank you for checking in today. Every entry helps you understand yourself a little better.",
}

// EmpathyService produces a short reflective response to a journal entry,
// optionally informed by the user's recent context.
type EmpathyService struct {
	generator TextGenerator
}

// NewEmpathyService creates a new empathy stage.
func NewEmpathyService(generator TextGenerator) *EmpathyService {
	return &EmpathyService{generator: generator}
}

// Respond generates the reflective reply for the entry. On any generation
// failure it falls back to the emotion-keyed template; the second return
// value reports whether that fallback was used.
func (s *EmpathyService) Respond(ctx context.Context, text string, metrics models.EmotionalMetrics, userCtx models.UserContext) (string, bool) {
	streakNote := ""
	if userCtx.HasContext && userCtx.Streak >= 3 {
		streakNote = fmt.Sprintf(streakAcknowledgment, userCtx.Streak)
	}

	prompt := fmt.Sprintf(empathyPrompt, text, metrics.MoodScore, metrics.PrimaryEmotion, streakNote)

	reply, err := s.generator.Generate(ctx, prompt, false)
	if err != nil || strings.TrimSpace(reply) == "" {
		log.Printf("⚠️ [EMPATHY] Generation failed, using %s fallback: %v", metrics.PrimaryEmotion, err)
		return FallbackResponse(metrics.PrimaryEmotion), true
	}

	return strings.TrimSpace(reply), false
}

// FallbackResponse returns the fixed supportive reply for an emotion. Unknown
// emotions get the neutral reply.
func FallbackResponse(emotion models.Emotion) string {
	if reply, ok := empathyFallbacks[emotion]; ok {
		return reply
	}
	return empathyFallbacks[models.EmotionNeutral]
}

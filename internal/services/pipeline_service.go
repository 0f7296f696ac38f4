package services

import (
	"context"
	"log"
	"strings"

	"auramind/pkg/models"
)

// Fixed feedback strings for the two pipeline-level fallbacks. The empty-input
// welcome matches the companion's voice; the technical-difficulty string is
// only reachable through the defensive outer boundary.
const (
	emptyInputFeedback     = "I'm here for you. Tell me more."
	technicalIssueFeedback = "I'm having a little trouble reflecting right now, but your entry is safe with me. Let's talk again soon."
)

// PipelineInput is one journal-entry submission. UserID is optional; without
// it (or without a context provider) the context stage is skipped.
type PipelineInput struct {
	Note       string
	Transcript string
	UserID     string
}

// PipelineService sequences the inference stages for one journal entry:
// analysis, context fetch, empathy, avatar classification. Its contract never
// fails — under upstream failure the quality of the result degrades, never
// its availability. Rate limiting is the caller's concern, consulted before
// Run, so a denied request never reaches the stages.
type PipelineService struct {
	analyzer *AnalyzerService
	context  *ContextService
	empathy  *EmpathyService
}

// NewPipelineService creates the orchestrator. context may be nil when no
// datastore is available; the pipeline then runs without user context.
func NewPipelineService(analyzer *AnalyzerService, contextSvc *ContextService, empathy *EmpathyService) *PipelineService {
	return &PipelineService{
		analyzer: analyzer,
		context:  contextSvc,
		empathy:  empathy,
	}
}

// Run executes the pipeline and always returns a well-formed result.
func (s *PipelineService) Run(ctx context.Context, in PipelineInput) (result *models.PipelineResult) {
	// Outer boundary: nothing escaping the per-stage guards may reach the
	// caller. Log the cause for operators and substitute the coarse fallback.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ [PIPELINE] Unexpected failure for user %q: %v", in.UserID, r)
			result = neutralResult(technicalIssueFeedback)
		}
	}()

	combined := combineText(in.Note, in.Transcript)
	if combined == "" {
		return neutralResult(emptyInputFeedback)
	}

	metrics, degraded := s.analyzer.Analyze(ctx, combined)
	if degraded {
		log.Printf("📉 [PIPELINE] Analyzer degraded for user %q", in.UserID)
	}

	userCtx := models.UserContext{AvgMood: 5}
	if s.context != nil && in.UserID != "" {
		userCtx = s.context.GetUserContext(ctx, in.UserID)
	}

	feedback, degraded := s.empathy.Respond(ctx, combined, metrics, userCtx)
	if degraded {
		log.Printf("📉 [PIPELINE] Empathy degraded for user %q", in.UserID)
	}

	return &models.PipelineResult{
		EmotionalMetrics: metrics,
		AIFeedback:       feedback,
		AvatarState:      ClassifyAvatar(metrics.MoodScore, metrics.StressLevel),
	}
}

// combineText joins note and transcript the way the entry was spoken: note
// first, transcript after, surrounding whitespace dropped.
func combineText(note, transcript string) string {
	return strings.TrimSpace(strings.TrimSpace(note) + " " + strings.TrimSpace(transcript))
}

// neutralResult is the shared shape of the empty-input and technical-issue
// fallbacks: neutral metrics, neutral avatar, caller-visible feedback only.
func neutralResult(feedback string) *models.PipelineResult {
	return &models.PipelineResult{
		EmotionalMetrics: models.EmotionalMetrics{
			MoodScore:      5,
			StressLevel:    5,
			EnergyLevel:    5,
			PrimaryEmotion: models.EmotionNeutral,
			Activities:     []string{},
		},
		AIFeedback:  feedback,
		AvatarState: models.AvatarNeutral,
	}
}

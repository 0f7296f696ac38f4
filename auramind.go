// Package auramind wires the journaling core into a single importable unit:
// AI call admission, the inference pipeline, and the badge rule engine over
// their MongoDB/Redis/generation-provider adapters. Embedding applications
// mount their own serving surface on top of a Core.
package auramind

import (
	"context"
	"fmt"
	"log"
	"time"

	"auramind/internal/config"
	"auramind/internal/database"
	"auramind/internal/genai"
	"auramind/internal/jobs"
	"auramind/internal/logging"
	"auramind/internal/services"
	"auramind/pkg/models"

	"github.com/redis/go-redis/v9"
)

// LimitExceededError is returned by ProcessEntry when the user is out of AI
// calls for the current window.
type LimitExceededError struct {
	UserID    string        `json:"user_id"`
	Limit     int           `json:"limit"`
	Remaining int           `json:"remaining"`
	Window    time.Duration `json:"window"`
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("AI call limit reached for user %s (%d per %v)", e.UserID, e.Limit, e.Window)
}

// Core is the wired journaling backend.
type Core struct {
	cfg       *config.Config
	mongo     *database.MongoDB
	limiter   services.AICallLimiter
	pipeline  *services.PipelineService
	badges    *services.BadgeService
	scheduler *jobs.Scheduler
}

// New builds a Core from the environment (see config.Load for the variables
// and their defaults). MongoDB is required; Redis is used for rate limiting
// when REDIS_URL is set, otherwise an in-memory limiter with a periodic idle
// sweep is used.
func New(ctx context.Context) (*Core, error) {
	cfg := config.Load()

	mongoDB, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := mongoDB.Initialize(ctx); err != nil {
		mongoDB.Close(ctx)
		return nil, fmt.Errorf("failed to initialize MongoDB: %w", err)
	}
	log.Println("✅ MongoDB connected successfully")

	generator := genai.NewClient(cfg.ProviderBaseURL, cfg.ProviderAPIKey, cfg.ProviderModel, cfg.GenerationTimeout)
	generator.UseStructuredSchema("mood_analysis", services.MoodAnalysisSchema)
	log.Printf("✅ Generation client ready (model: %s)", cfg.ProviderModel)

	scheduler := jobs.NewScheduler()

	var limiter services.AICallLimiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			mongoDB.Close(ctx)
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		limiter = services.NewRedisRateLimiter(redis.NewClient(opts), cfg.MaxAICalls, cfg.RateWindow)
		log.Printf("✅ Redis rate limiter ready (%d calls per %v)", cfg.MaxAICalls, cfg.RateWindow)
	} else {
		memLimiter := services.NewRateLimiter(cfg.MaxAICalls, cfg.RateWindow)
		scheduler.Register("rate-limit-sweep", cfg.SweepInterval, jobs.NewRateLimitSweepJob(memLimiter))
		limiter = memLimiter
		log.Printf("✅ In-memory rate limiter ready (%d calls per %v)", cfg.MaxAICalls, cfg.RateWindow)
	}

	analyzer := services.NewAnalyzerService(generator)
	contextSvc := services.NewContextService(database.NewMongoHistoryStore(mongoDB), cfg.HistoryWindowDays)
	empathy := services.NewEmpathyService(generator)

	return &Core{
		cfg:       cfg,
		mongo:     mongoDB,
		limiter:   limiter,
		pipeline:  services.NewPipelineService(analyzer, contextSvc, empathy),
		badges:    services.NewBadgeService(database.NewMongoAwardStore(mongoDB)),
		scheduler: scheduler,
	}, nil
}

// Start launches the background maintenance jobs.
func (c *Core) Start() {
	c.scheduler.Start()
}

// Close stops background jobs and releases the datastore connection.
func (c *Core) Close(ctx context.Context) {
	c.scheduler.Stop()
	if c.mongo != nil {
		c.mongo.Close(ctx)
	}
}

// ProcessEntry runs one journal entry through admission control and the
// inference pipeline. A *LimitExceededError is the only error it returns;
// once admitted the pipeline never fails, only degrades.
func (c *Core) ProcessEntry(ctx context.Context, userID, note, transcript string) (*models.PipelineResult, error) {
	if !c.limiter.Allow(ctx, userID) {
		return nil, &LimitExceededError{
			UserID:    userID,
			Limit:     c.cfg.MaxAICalls,
			Remaining: c.limiter.Remaining(ctx, userID),
			Window:    c.cfg.RateWindow,
		}
	}

	logging.WithPipeline(userID).Debug("journal entry admitted")

	return c.pipeline.Run(ctx, services.PipelineInput{
		Note:       note,
		Transcript: transcript,
		UserID:     userID,
	}), nil
}

// CheckBadges evaluates the achievement rules for a saved log entry and
// returns anything newly earned.
func (c *Core) CheckBadges(ctx context.Context, userID string, newLog models.MoodLog, profile models.UserProfile) []models.Badge {
	return c.badges.CheckNewBadges(ctx, userID, newLog, profile)
}

// RemainingAICalls reports how many AI calls the user has left in the window.
func (c *Core) RemainingAICalls(ctx context.Context, userID string) int {
	return c.limiter.Remaining(ctx, userID)
}

// ResetAICalls clears the user's admission window.
func (c *Core) ResetAICalls(ctx context.Context, userID string) {
	c.limiter.Reset(ctx, userID)
}

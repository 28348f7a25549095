package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tallerchat/config"
	analyticsRepo "tallerchat/database/repository/analytics"
	conversationRepo "tallerchat/database/repository/conversation"
	"tallerchat/models"
	"tallerchat/services/chat"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitAnalyticsWorker runs the async worker in background, draining the
// analytics queue into MongoDB.
func InitAnalyticsWorker(events analyticsRepo.AnalyticsRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAnalyticsDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(chat.TypeAnalyticsEvent, handleAnalyticsTask(events))

	// Start async worker with retry logic
	go func() {
		log.Println("[AnalyticsWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[AnalyticsWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[AnalyticsWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleAnalyticsTask(events analyticsRepo.AnalyticsRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var event models.AnalyticsEvent
		if err := json.Unmarshal(task.Payload(), &event); err != nil {
			log.Printf("[AnalyticsWorker] 🔴 Invalid payload: %v", err)
			return err
		}
		if event.ID == "" {
			event.ID = uuid.New().String()
		}
		if event.CreatedAt.IsZero() {
			event.CreatedAt = time.Now()
		}
		return events.Insert(ctx, event)
	}
}

// InitStaleConversationSweeper resets conversations that have been stuck in a
// confirmation state past the configured threshold. A shop that walked away
// mid-registration gets a clean slate on return.
func InitStaleConversationSweeper(conversations conversationRepo.ConversationRepository, logger *zap.Logger) {
	threshold := time.Duration(config.AppConfig.ConversationStaleMinutes) * time.Minute
	if threshold <= 0 {
		threshold = 30 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			sweepStaleConversations(conversations, threshold, logger)
		}
	}()
}

func sweepStaleConversations(conversations conversationRepo.ConversationRepository, threshold time.Duration, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	stale, err := conversations.FindStale(ctx, now.Add(-threshold))
	if err != nil {
		logger.Warn("sweeper: failed to list stale conversations", zap.Error(err))
		return
	}

	for i := range stale {
		conv := &stale[i]
		conv.Reset(now)
		if err := conversations.Save(ctx, conv); err != nil {
			logger.Warn("sweeper: failed to reset conversation",
				zap.String("conversationID", conv.ID), zap.Error(err))
			continue
		}
		logger.Info("sweeper: reset stale conversation",
			zap.String("conversationID", conv.ID),
			zap.String("shopID", conv.ShopID))
	}
}

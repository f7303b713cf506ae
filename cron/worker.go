package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"innkeep/config"
	"innkeep/services/inventory"
	"innkeep/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitInventoryWorker runs the async inventory worker in background.
func InitInventoryWorker(invSvc inventory.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
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
	mux.HandleFunc(tasks.TypeInventoryCheckIn, handleInventoryCheckIn(invSvc))
	mux.HandleFunc(tasks.TypeInventoryCheckOut, handleInventoryCheckOut(invSvc))

	go monitorRedisConnection()

	go func() {
		log.Println("[InventoryWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[InventoryWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[InventoryWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleInventoryCheckIn(invSvc inventory.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.InventoryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[InventoryWorker] invalid check-in payload: %v", err)
			return err
		}
		if err := invSvc.IssueCheckInDefaults(p.RoomID, p.GuestID); err != nil {
			// Intents are at-most-once; a failed issue is logged and dropped.
			log.Printf("[InventoryWorker] failed to issue check-in defaults for guest %s: %v", p.GuestID, err)
		}
		return nil
	}
}

func handleInventoryCheckOut(invSvc inventory.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.InventoryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[InventoryWorker] invalid checkout payload: %v", err)
			return err
		}
		if err := invSvc.ReconcileCheckout(p.RoomID, p.GuestID); err != nil {
			log.Printf("[InventoryWorker] failed to reconcile checkout for guest %s: %v", p.GuestID, err)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[InventoryWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}

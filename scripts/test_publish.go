//go:build ignore

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/domain"
	redisRepo "github.com/infrastructure-search/internal/repository/redis"
)

const streamName = domain.StreamInfrastructureChanged

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	id := flag.String("id", "gym-basket", "infrastructure id")
	action := flag.String("action", "updated", "created | updated | withdrawn")
	group := flag.String("group", "catalog-invalidation", "consumer group to inspect")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	streamRepo := redisRepo.NewStreamRepository(client, zap.NewNop())
	err := streamRepo.PublishToStream(ctx, streamName, domain.InfrastructureChangedEvent{
		InfrastructureID: *id,
		Action:           *action,
		OccurredAt:       time.Now().UTC(),
	})
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", streamName)
	fmt.Printf("   Infrastructure: %s (%s)\n", *id, *action)

	// Ждём, пока воркер подтвердит сообщение
	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout: message still pending (is the worker running?)")
			return
		case <-ticker.C:
			pending, err := client.XPending(ctx, streamName, *group).Result()
			if err != nil {
				continue
			}
			if pending.Count == 0 {
				fmt.Println("Message acknowledged, facet cache invalidated")
				return
			}
		}
	}
}

package store

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestRedisStore runs against a live server when CANDIDATE_SCORER_TEST_REDIS
// names one, e.g. localhost:6379.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("CANDIDATE_SCORER_TEST_REDIS")
	if addr == "" {
		t.Skip("CANDIDATE_SCORER_TEST_REDIS not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	prefix := "candidate-scorer-test:" + time.Now().UTC().Format("150405.000000000") + ":"
	s, err := DialRedis(ctx, addr, "", 0, prefix)
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}
	defer func() {
		keys, _ := s.client.Keys(context.Background(), prefix+"*").Result()
		if len(keys) > 0 {
			s.client.Del(context.Background(), keys...)
		}
		_ = s.Close()
	}()

	exerciseStore(t, s)
}

func TestRedisStoreKey(t *testing.T) {
	s := NewRedisStore(nil, "candidate:")

	if got := s.key("abc"); got != "candidate:abc" {
		t.Errorf("Expected candidate:abc, got %s", got)
	}
}

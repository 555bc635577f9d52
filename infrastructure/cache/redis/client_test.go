package redis

import (
	"context"
	"testing"
	"time"

	"github.com/jbpiacentino/lumen-digest/pkg/config"
)

// Note: these are integration tests that require a Redis instance.

func skipIfNoRedis(t *testing.T) {
	t.Skip("Skipping Redis integration tests - set REDIS_TEST=1 to run")
}

func TestNewRedisCache_InvalidAddress(t *testing.T) {
	cfg := config.RedisConfig{
		Address:  "",
		Password: "",
		DB:       0,
	}

	cache, err := NewRedisCache(cfg)

	if err == nil {
		t.Error("NewRedisCache should return error for empty address")
	}
	if cache != nil {
		t.Error("NewRedisCache should return nil cache on error")
	}
}

func TestRedisCache_SetAndGet(t *testing.T) {
	skipIfNoRedis(t)

	cfg := config.RedisConfig{Address: "localhost:6379"}
	cache, err := NewRedisCache(cfg)
	if err != nil {
		t.Fatalf("NewRedisCache returned error: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	if err := cache.Set(ctx, "test-key", []byte("test-value"), 1*time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := cache.Get(ctx, "test-key")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(got) != "test-value" {
		t.Errorf("Get returned %s, want test-value", string(got))
	}
}

func TestRedisCache_Delete(t *testing.T) {
	skipIfNoRedis(t)

	cfg := config.RedisConfig{Address: "localhost:6379"}
	cache, err := NewRedisCache(cfg)
	if err != nil {
		t.Fatalf("NewRedisCache returned error: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	cache.Set(ctx, "test-key", []byte("test-value"), 1*time.Minute)

	if err := cache.Delete(ctx, "test-key"); err != nil {
		t.Errorf("Delete returned error: %v", err)
	}
	if _, err := cache.Get(ctx, "test-key"); err == nil {
		t.Error("Get should miss after Delete")
	}
}

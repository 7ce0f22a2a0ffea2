//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func exerciseBackend(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	key := "test:" + Hash([]byte(t.Name()))
	if err := c.Set(ctx, key, []byte("<svg/>"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get = %q, %v, %v; want <svg/> hit", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestRedisCache_Integration(t *testing.T) {
	url := os.Getenv("CHORD2SVG_TEST_REDIS_URL")
	if url == "" {
		t.Skip("CHORD2SVG_TEST_REDIS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewRedisCache(ctx, url, "chord2svg-test:")
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}

func TestMongoCache_Integration(t *testing.T) {
	uri := os.Getenv("CHORD2SVG_TEST_MONGO_URL")
	if uri == "" {
		t.Skip("CHORD2SVG_TEST_MONGO_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewMongoCache(ctx, uri, "chord2svg_test", "artifacts")
	if err != nil {
		t.Fatalf("NewMongoCache() error: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}

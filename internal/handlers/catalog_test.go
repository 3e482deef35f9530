package handlers

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"sway_back_end/internal/database"
)

func TestInvalidateProductCache(t *testing.T) {
	mr := miniredis.RunT(t)
	database.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	ctx := context.Background()
	database.Redis.Set(ctx, "products:list:1:10::", "cached", 0)
	database.Redis.Set(ctx, "products:list:2:10:lawn:kurta", "cached", 0)
	database.Redis.Set(ctx, "cart:64f0c2a1b3d4e5f601234567", "[]", 0)

	InvalidateProductCache(ctx)

	if mr.Exists("products:list:1:10::") || mr.Exists("products:list:2:10:lawn:kurta") {
		t.Fatal("catalog pages should be dropped")
	}
	if !mr.Exists("cart:64f0c2a1b3d4e5f601234567") {
		t.Fatal("unrelated keys must survive the sweep")
	}
}

func TestInvalidateProductCache_NothingCached(t *testing.T) {
	mr := miniredis.RunT(t)
	database.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	// Must not panic or issue an empty DEL.
	InvalidateProductCache(context.Background())
}

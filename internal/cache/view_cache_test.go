package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// Without a backend every operation must degrade to a harmless no-op:
// the system stays correct, just slower.
func TestViewCache_NilClientDegradesToNoop(t *testing.T) {
	c := NewViewCache(nil, zap.NewNop())
	ctx := context.Background()

	var dest map[string]int
	hit := c.GetJSON(ctx, PublicMenuKey(1), &dest)
	assert.False(t, hit)
	assert.Nil(t, dest)

	// must not panic or error
	c.SetJSON(ctx, PublicMenuKey(1), map[string]int{"a": 1}, time.Hour)
	c.Invalidate(ctx, PublicMenuKey(1), PlaceStatsKey(1))
}

func TestViewCache_InvalidateNoKeys(t *testing.T) {
	c := NewViewCache(nil, zap.NewNop())
	c.Invalidate(context.Background())
}

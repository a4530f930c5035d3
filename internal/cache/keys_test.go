package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The literal formats are a cross-implementation contract for shared
// cache tiers.
func TestPublicMenuKey(t *testing.T) {
	assert.Equal(t, "menu:public:42", PublicMenuKey(42))
	assert.Equal(t, "menu:public:1", PublicMenuKey(1))
}

func TestPlaceStatsKey(t *testing.T) {
	assert.Equal(t, "place:stats:42", PlaceStatsKey(42))
	assert.Equal(t, "place:stats:9001", PlaceStatsKey(9001))
}

package cache

import "fmt"

// Key formats are shared with any other consumer of the same cache
// tier and must not change shape.

func PublicMenuKey(placeID uint64) string {
	return fmt.Sprintf("menu:public:%d", placeID)
}

func PlaceStatsKey(placeID uint64) string {
	return fmt.Sprintf("place:stats:%d", placeID)
}

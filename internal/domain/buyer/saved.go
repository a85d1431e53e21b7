package buyer

import "time"

// SavedProperty bookmarks a property for a buyer; one per (buyer, property).
type SavedProperty struct {
	ID         uint
	BuyerID    uint
	PropertyID uint
	CreatedAt  time.Time
}

// Purchase records a completed purchase. A property is purchased at most once.
type Purchase struct {
	ID         uint
	BuyerID    uint
	PropertyID uint
	Price      int64
	CreatedAt  time.Time
}

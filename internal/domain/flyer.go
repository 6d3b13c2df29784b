package domain

import "time"

// FlyerSlot is one uploaded flyer for a product. At most one row exists per
// (product_type, flyer_index) pair; re-uploads upsert onto the same key.
type FlyerSlot struct {
	ID          int64     `gorm:"primaryKey" json:"id,string"`
	ProductType string    `gorm:"size:64;uniqueIndex:idx_product_slot,priority:1" json:"product_type"`
	FlyerIndex  int       `gorm:"uniqueIndex:idx_product_slot,priority:2" json:"flyer_index"`
	Name        string    `gorm:"size:200" json:"name"`
	Description string    `gorm:"size:1024" json:"description"`
	ImageURL    string    `gorm:"size:1024" json:"image_url"`
	ImageKey    string    `gorm:"size:255;index" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (FlyerSlot) TableName() string {
	return "flyer_slots"
}

// FlyerEntry is the public listing shape for one slot.
type FlyerEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

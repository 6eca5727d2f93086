package models

import "time"

// User is the shop owner. Profile/settings fields live on the same record;
// there is one principal per account.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"unique;not null;index" json:"email"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Phone    string `json:"phone"`
	State    string `json:"state"`

	ShopName  string `json:"shop_name"`
	ShopType  string `json:"shop_type"`
	Address   string `json:"address"`
	GSTNumber string `json:"gst_number"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

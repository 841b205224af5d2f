package models

import "time"

// CartLine is one book in a user's cart. There is at most one line per
// (Username, BookID) pair; repeated adds bump Quantity instead.
type CartLine struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"type:varchar(100);not null;uniqueIndex:idx_cart_user_book,priority:1"`
	BookID    string    `json:"catalogItemId" gorm:"type:varchar(255);not null;uniqueIndex:idx_cart_user_book,priority:2"`
	Title     string    `json:"title" gorm:"not null"`
	Author    string    `json:"author" gorm:"not null"`
	Price     float64   `json:"price" gorm:"not null"`
	CoverURL  string    `json:"coverUrl"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LineTotal returns Price multiplied by Quantity.
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

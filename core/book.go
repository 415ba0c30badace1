package core

import (
	"time"

	"github.com/google/uuid"
)

// Book is a title in the catalog together with its copy inventory.
//
// AvailableCopies is the single source of truth for availability:
// 0 <= AvailableCopies <= TotalCopies must hold at all times, and
// "is available" is always derived from the count, never stored alongside it
// where the two could drift apart.
type Book struct {
	ID              uuid.UUID
	Title           string
	Author          string
	ISBN            string
	Category        string
	Publisher       string
	PublishDate     *time.Time
	PageCount       int
	Description     string
	TotalCopies     int
	AvailableCopies int
	CreatedAt       Timestamp
	Version         uint
}

// IsAvailable reports whether at least one copy can be rented right now.
func (b Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

// RentedCopies returns the number of copies currently checked out.
func (b Book) RentedCopies() int {
	return b.TotalCopies - b.AvailableCopies
}

// HasValidInventory reports whether the copy counts satisfy the inventory
// invariant.
func (b Book) HasValidInventory() bool {
	return b.AvailableCopies >= 0 && b.AvailableCopies <= b.TotalCopies
}

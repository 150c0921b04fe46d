package model

import (
	"time"

	"github.com/google/uuid"
)

// Permanent shelves created for every user at registration. They can never
// be renamed or deleted.
const (
	PermanentShelfWantRead = "Want read"
	PermanentShelfHaveRead = "Have read"
)

// Shelf is a named set of books owned by a single user. Names are unique
// per owner, case-insensitive. Each book appears on a shelf at most once.
type Shelf struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Permanent bool      `json:"-"`
	OwnerID   uuid.UUID `json:"owner_id"`

	BookIDs []uuid.UUID `json:"book_ids"`

	CreatedAt time.Time `json:"created_at"`
}

// PermanentShelves builds the two shelves every new user starts with.
func PermanentShelves(ownerID uuid.UUID, now time.Time) []*Shelf {
	return []*Shelf{
		{ID: uuid.New(), Name: PermanentShelfWantRead, Permanent: true, OwnerID: ownerID, CreatedAt: now},
		{ID: uuid.New(), Name: PermanentShelfHaveRead, Permanent: true, OwnerID: ownerID, CreatedAt: now},
	}
}

// ContainsBook reports whether the shelf already holds the book.
func (s *Shelf) ContainsBook(bookID uuid.UUID) bool {
	for _, id := range s.BookIDs {
		if id == bookID {
			return true
		}
	}
	return false
}

package model

import (
	"context"
	"time"
)

// DefaultPageLimit is the page size used when the client does not pass one.
const DefaultPageLimit = 10

// ContactStore defines owner-scoped persistence operations for contacts.
type ContactStore interface {
	Create(ctx context.Context, contact Contact) (Contact, error)
	GetByID(ctx context.Context, ownerID, id int64) (Contact, error)
	List(ctx context.Context, ownerID int64, page Page) ([]Contact, error)
	Update(ctx context.Context, contact Contact) (Contact, error)
	Delete(ctx context.Context, ownerID, id int64) (Contact, error)
	Search(ctx context.Context, ownerID int64, query string, page Page) ([]Contact, error)
	GetByBirthdayRange(ctx context.Context, ownerID int64, from, to MonthDay) ([]Contact, error)
}

// Contact represents an address book entry owned by a user.
type Contact struct {
	ID             int64
	OwnerID        int64
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	Birthday       time.Time
	AdditionalData string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ContactParams contains the client-editable fields of a contact.
type ContactParams struct {
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	Birthday       time.Time
	AdditionalData string
}

// Page selects a window of an ordered result set.
type Page struct {
	Skip  int
	Limit int
}

// MonthDay is a calendar day without a year, formatted as "MM-DD".
type MonthDay string

// MonthDayOf returns the month and day of t.
func MonthDayOf(t time.Time) MonthDay {
	return MonthDay(t.Format("01-02"))
}

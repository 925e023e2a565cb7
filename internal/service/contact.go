package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Pelmenoff/m2-hw12/internal/logger"
	"github.com/Pelmenoff/m2-hw12/internal/model"
)

// DefaultBirthdayWindow is how many days ahead UpcomingBirthdays looks by default.
const DefaultBirthdayWindow = 7

type Contact struct {
	contactStore   model.ContactStore
	birthdayWindow int
	now            func() time.Time
	logger         *logger.Logger
}

// ContactOption configures Contact.
type ContactOption func(*Contact)

// WithBirthdayWindow sets how many days after today UpcomingBirthdays covers.
func WithBirthdayWindow(days int) ContactOption {
	return func(s *Contact) {
		if days >= 0 {
			s.birthdayWindow = days
		}
	}
}

// WithNow sets the clock used to determine "today".
func WithNow(now func() time.Time) ContactOption {
	return func(s *Contact) {
		s.now = now
	}
}

func NewContact(contactStore model.ContactStore, logger *logger.Logger, opts ...ContactOption) *Contact {
	s := &Contact{
		contactStore:   contactStore,
		birthdayWindow: DefaultBirthdayWindow,
		now:            time.Now,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Contact) Create(ctx context.Context, ownerID int64, params model.ContactParams) (model.Contact, error) {
	if err := validateContact(params); err != nil {
		return model.Contact{}, err
	}

	contact, err := s.contactStore.Create(ctx, newContact(ownerID, params))
	if err != nil {
		return model.Contact{}, s.wrap(err, "failed to create contact")
	}

	s.logger.Info("Contact service: contact created",
		"owner_id", ownerID,
		"contact_id", contact.ID)

	return contact, nil
}

func (s *Contact) List(ctx context.Context, ownerID int64, page model.Page) ([]model.Contact, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	contacts, err := s.contactStore.List(ctx, ownerID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return contacts, nil
}

func (s *Contact) Get(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	contact, err := s.contactStore.GetByID(ctx, ownerID, id)
	if err != nil {
		return model.Contact{}, s.wrap(err, "failed to get contact by id")
	}

	return contact, nil
}

// Update replaces every editable field of the contact.
func (s *Contact) Update(ctx context.Context, ownerID, id int64, params model.ContactParams) (model.Contact, error) {
	if err := validateContact(params); err != nil {
		return model.Contact{}, err
	}

	contact := newContact(ownerID, params)
	contact.ID = id

	updated, err := s.contactStore.Update(ctx, contact)
	if err != nil {
		return model.Contact{}, s.wrap(err, "failed to update contact")
	}

	s.logger.Info("Contact service: contact updated",
		"owner_id", ownerID,
		"contact_id", id)

	return updated, nil
}

// Delete removes the contact and returns it as it was before removal.
func (s *Contact) Delete(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	deleted, err := s.contactStore.Delete(ctx, ownerID, id)
	if err != nil {
		return model.Contact{}, s.wrap(err, "failed to delete contact")
	}

	s.logger.Info("Contact service: contact deleted",
		"owner_id", ownerID,
		"contact_id", id)

	return deleted, nil
}

func (s *Contact) Search(ctx context.Context, ownerID int64, query string, page model.Page) ([]model.Contact, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	contacts, err := s.contactStore.Search(ctx, ownerID, strings.TrimSpace(query), page)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}

	return contacts, nil
}

// UpcomingBirthdays returns contacts whose birthday, ignoring the year,
// falls between today and today plus the configured window, inclusive.
func (s *Contact) UpcomingBirthdays(ctx context.Context, ownerID int64) ([]model.Contact, error) {
	from, to := BirthdayRange(s.now(), s.birthdayWindow)

	contacts, err := s.contactStore.GetByBirthdayRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming birthdays: %w", err)
	}

	return contacts, nil
}

// BirthdayRange returns the first and last calendar day of a window of
// days starting at today. A window of a year or more covers every day.
func BirthdayRange(today time.Time, days int) (from, to model.MonthDay) {
	if days >= 365 {
		return "01-01", "12-31"
	}
	return model.MonthDayOf(today), model.MonthDayOf(today.AddDate(0, 0, days))
}

func (s *Contact) wrap(err error, msg string) error {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return model.NewError(model.ErrNotFound, "Contact not found")
	case errors.Is(err, model.ErrConflict):
		return model.NewError(model.ErrConflict, "Contact with this email already exists")
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}

func newContact(ownerID int64, params model.ContactParams) model.Contact {
	return model.Contact{
		OwnerID:        ownerID,
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		Email:          params.Email,
		PhoneNumber:    params.PhoneNumber,
		Birthday:       params.Birthday,
		AdditionalData: params.AdditionalData,
	}
}

func validateContact(params model.ContactParams) error {
	switch {
	case params.FirstName == "":
		return model.NewValidationError("first_name is required")
	case params.LastName == "":
		return model.NewValidationError("last_name is required")
	case params.PhoneNumber == "":
		return model.NewValidationError("phone_number is required")
	case params.Birthday.IsZero():
		return model.NewValidationError("birthday is required")
	}
	return validateEmail(params.Email)
}

func validatePage(page model.Page) error {
	if page.Skip < 0 {
		return model.NewValidationError("skip must be greater than or equal to 0")
	}
	if page.Limit < 0 {
		return model.NewValidationError("limit must be greater than or equal to 0")
	}
	return nil
}

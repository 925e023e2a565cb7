package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Pelmenoff/m2-hw12/internal/model"
)

var _ model.ContactStore = (*ContactRepository)(nil)

const contactColumns = `id, owner_id, first_name, last_name, email, phone_number, birthday, additional_data, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

type ContactRepository struct {
	db *Connection
}

func NewContactRepository(db *Connection) *ContactRepository {
	return &ContactRepository{
		db: db,
	}
}

func (r *ContactRepository) Create(ctx context.Context, contact model.Contact) (model.Contact, error) {
	query := `INSERT INTO contacts (owner_id, first_name, last_name, email, phone_number, birthday, additional_data)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + contactColumns

	row := r.db.executor(ctx).QueryRowContext(ctx, query,
		contact.OwnerID, contact.FirstName, contact.LastName, contact.Email,
		contact.PhoneNumber, contact.Birthday, contact.AdditionalData,
	)
	saved, err := scanContact(row)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Contact{}, model.ErrConflict
		}
		return model.Contact{}, fmt.Errorf("failed to create contact: %w", err)
	}

	return saved, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	query := `SELECT ` + contactColumns + `
			  FROM contacts WHERE id = $1 AND owner_id = $2`

	contact, err := scanContact(r.db.executor(ctx).QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Contact{}, model.ErrNotFound
		}
		return model.Contact{}, fmt.Errorf("failed to get contact by id: %w", err)
	}

	return contact, nil
}

func (r *ContactRepository) List(ctx context.Context, ownerID int64, page model.Page) ([]model.Contact, error) {
	query := `SELECT ` + contactColumns + `
			  FROM contacts WHERE owner_id = $1
			  ORDER BY id
			  OFFSET $2 LIMIT $3`

	contacts, err := r.query(ctx, query, ownerID, page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return contacts, nil
}

func (r *ContactRepository) Update(ctx context.Context, contact model.Contact) (model.Contact, error) {
	query := `UPDATE contacts
			  SET first_name = $3, last_name = $4, email = $5, phone_number = $6,
			      birthday = $7, additional_data = $8, updated_at = NOW()
			  WHERE id = $1 AND owner_id = $2
			  RETURNING ` + contactColumns

	row := r.db.executor(ctx).QueryRowContext(ctx, query,
		contact.ID, contact.OwnerID, contact.FirstName, contact.LastName, contact.Email,
		contact.PhoneNumber, contact.Birthday, contact.AdditionalData,
	)
	saved, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Contact{}, model.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.Contact{}, model.ErrConflict
		}
		return model.Contact{}, fmt.Errorf("failed to update contact: %w", err)
	}

	return saved, nil
}

func (r *ContactRepository) Delete(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	query := `DELETE FROM contacts WHERE id = $1 AND owner_id = $2
			  RETURNING ` + contactColumns

	deleted, err := scanContact(r.db.executor(ctx).QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Contact{}, model.ErrNotFound
		}
		return model.Contact{}, fmt.Errorf("failed to delete contact: %w", err)
	}

	return deleted, nil
}

// Search matches query as a case-insensitive substring of the name, email and phone fields.
func (r *ContactRepository) Search(ctx context.Context, ownerID int64, query string, page model.Page) ([]model.Contact, error) {
	q := `SELECT ` + contactColumns + `
		  FROM contacts
		  WHERE owner_id = $1 AND (
		      first_name ILIKE $2 OR last_name ILIKE $2 OR email ILIKE $2 OR phone_number ILIKE $2
		  )
		  ORDER BY id
		  OFFSET $3 LIMIT $4`

	contacts, err := r.query(ctx, q, ownerID, likePattern(query), page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}

	return contacts, nil
}

// GetByBirthdayRange returns contacts whose birthday month and day lie in
// [from, to]. When from > to the range wraps around the end of the year.
// Results are ordered by the next occurrence counted from "from".
func (r *ContactRepository) GetByBirthdayRange(ctx context.Context, ownerID int64, from, to model.MonthDay) ([]model.Contact, error) {
	query := `SELECT ` + contactColumns + `
			  FROM contacts
			  WHERE owner_id = $1 AND (
			      ($2::text <= $3::text AND to_char(birthday, 'MM-DD') BETWEEN $2 AND $3)
			      OR ($2 > $3 AND (to_char(birthday, 'MM-DD') >= $2 OR to_char(birthday, 'MM-DD') <= $3))
			  )
			  ORDER BY to_char(birthday, 'MM-DD') < $2, to_char(birthday, 'MM-DD'), id`

	contacts, err := r.query(ctx, query, ownerID, string(from), string(to))
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts by birthday range: %w", err)
	}

	return contacts, nil
}

func (r *ContactRepository) query(ctx context.Context, query string, args ...any) ([]model.Contact, error) {
	rows, err := r.db.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]model.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return contacts, nil
}

func scanContact(row rowScanner) (model.Contact, error) {
	var c model.Contact
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.FirstName, &c.LastName, &c.Email,
		&c.PhoneNumber, &c.Birthday, &c.AdditionalData, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// likePattern escapes LIKE metacharacters in s and wraps it in wildcards.
func likePattern(s string) string {
	out := make([]rune, 0, len(s)+2)
	out = append(out, '%')
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(append(out, '%'))
}

package domain

import (
	"errors"
	"time"
)

var ErrContactNotFound = errors.New("contact not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidBirthday = errors.New("invalid birthday")

// birthdayLayouts are tried in order when parsing a birthday. The slash form
// is read month-first (05/03/1998 is May 3); the rendered form is day-first.
// This asymmetry is a locale decision, kept in one place on purpose.
var birthdayLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2 January, 2006",
	"2 January 2006",
	"January 2, 2006",
	"2006-01-02",
}

// BirthdayFormat is the canonical rendering of a birthday (day-first).
const BirthdayFormat = "02/01/2006"

// ParseBirthday parses a birthday from flexible textual input and normalizes
// it to midnight UTC. Unparsable input returns ErrInvalidBirthday.
func ParseBirthday(s string) (time.Time, error) {
	for _, layout := range birthdayLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrInvalidBirthday
}

// FormatBirthday renders a birthday in the canonical DD/MM/YYYY form.
func FormatBirthday(t time.Time) string {
	return t.Format(BirthdayFormat)
}

// Contact is the core aggregate: one person's details, owned by one user.
type Contact struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Birthday  time.Time `json:"birthday" bson:"birthday"`
	Company   string    `json:"company" bson:"company"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// OwnedBy reports whether the contact belongs to the given user.
func (c *Contact) OwnedBy(userID string) bool {
	return userID != "" && c.UserID == userID
}

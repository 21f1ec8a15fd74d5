package handler

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rolodex/contacts-api/internal/core/domain"
	"github.com/rolodex/contacts-api/internal/core/ports"
)

// --- Request → Service input ---

// toContactInput carries the fields already normalized by bindInput plus the
// parsed birthday. Any user_id a client smuggles into the payload never
// reaches this point; ownership comes from the token alone.
func toContactInput(req contactRequest, birthday time.Time) ports.ContactInput {
	return ports.ContactInput{
		Name:     req.Name,
		Email:    req.Email,
		Birthday: birthday,
		Company:  req.Company,
	}
}

// --- Contact → HTTP response ---

// toContactEnvelope presents one contact: birthday in the canonical
// DD/MM/YYYY form, last_update as a human-relative string, and an absolute
// self link. Pure transformation apart from the wall clock feeding the
// relative timestamp.
func toContactEnvelope(c *domain.Contact, baseURL string) contactEnvelope {
	return contactEnvelope{
		Data: contactData{
			ContactID:  c.ID,
			Name:       c.Name,
			Email:      c.Email,
			Birthday:   domain.FormatBirthday(c.Birthday),
			Company:    c.Company,
			LastUpdate: humanize.Time(c.UpdatedAt),
		},
		Links: contactLinks{
			Self: strings.TrimRight(baseURL, "/") + "/contacts/" + c.ID,
		},
	}
}

func toContactListResponse(contacts []domain.Contact, baseURL string) contactListResponse {
	items := make([]contactEnvelope, len(contacts))
	for i := range contacts {
		items[i] = toContactEnvelope(&contacts[i], baseURL)
	}
	return contactListResponse{Data: items}
}

package handler

import (
	"testing"
	"time"

	"github.com/rolodex/contacts-api/internal/core/domain"
)

func TestToContactEnvelope(t *testing.T) {
	contact := &domain.Contact{
		ID:        "64f0c1",
		UserID:    "u1",
		Name:      "test name",
		Email:     "test@gmail.com",
		Birthday:  time.Date(1998, time.May, 3, 0, 0, 0, 0, time.UTC),
		Company:   "ABC String",
		UpdatedAt: time.Now().UTC().Add(-3 * time.Minute),
	}

	env := toContactEnvelope(contact, "http://localhost:8080")

	if env.Data.ContactID != "64f0c1" {
		t.Fatalf("unexpected contact_id: %s", env.Data.ContactID)
	}
	if env.Data.Birthday != "03/05/1998" {
		t.Fatalf("expected birthday 03/05/1998, got %s", env.Data.Birthday)
	}
	if env.Data.LastUpdate != "3 minutes ago" {
		t.Fatalf("expected humanized last_update, got %q", env.Data.LastUpdate)
	}
	if env.Links.Self != "http://localhost:8080/contacts/64f0c1" {
		t.Fatalf("unexpected self link: %s", env.Links.Self)
	}
}

func TestToContactEnvelope_TrailingSlashBase(t *testing.T) {
	contact := &domain.Contact{ID: "abc", UpdatedAt: time.Now().UTC()}
	env := toContactEnvelope(contact, "https://api.example.com/")
	if env.Links.Self != "https://api.example.com/contacts/abc" {
		t.Fatalf("unexpected self link: %s", env.Links.Self)
	}
}

func TestToContactListResponse(t *testing.T) {
	contacts := []domain.Contact{
		{ID: "a", UpdatedAt: time.Now().UTC()},
		{ID: "b", UpdatedAt: time.Now().UTC()},
	}
	resp := toContactListResponse(contacts, "http://localhost:8080")
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 envelopes, got %d", len(resp.Data))
	}
	if resp.Data[0].Data.ContactID != "a" || resp.Data[1].Data.ContactID != "b" {
		t.Fatalf("envelope order mismatch: %+v", resp.Data)
	}

	empty := toContactListResponse(nil, "http://localhost:8080")
	if empty.Data == nil {
		t.Fatalf("empty list must serialize as [], not null")
	}
}

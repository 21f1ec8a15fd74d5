package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rolodex/contacts-api/internal/api/handler"
	"github.com/rolodex/contacts-api/internal/api/middleware"
	"github.com/rolodex/contacts-api/internal/core/domain"
	"github.com/rolodex/contacts-api/internal/core/service"
)

const (
	testSecret  = "test-secret"
	testBaseURL = "http://localhost:8080"
)

// memContactRepo is an in-memory ContactRepository for boundary tests.
type memContactRepo struct {
	byID map[string]*domain.Contact
	seq  int
}

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{byID: make(map[string]*domain.Contact)}
}

func (r *memContactRepo) Insert(_ context.Context, c *domain.Contact) (*domain.Contact, error) {
	r.seq++
	clone := *c
	clone.ID = fmt.Sprintf("contact-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memContactRepo) FindByID(_ context.Context, id string) (*domain.Contact, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memContactRepo) FindByOwner(_ context.Context, userID string) ([]domain.Contact, error) {
	var out []domain.Contact
	for _, c := range r.byID {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memContactRepo) Update(_ context.Context, c *domain.Contact) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrContactNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *memContactRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrContactNotFound
	}
	delete(r.byID, id)
	return nil
}

// newTestServer wires the contacts routes exactly as NewRouter does, minus
// the external Mongo/Redis/metrics dependencies.
func newTestServer(repo *memContactRepo) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())

	svc := service.NewContactService(repo, nil, nil, zerolog.Nop())
	h := handler.NewContactHandler(svc, testBaseURL)

	contacts := e.Group("/contacts", middleware.Auth(testSecret), middleware.RequireIdentity())
	contacts.GET("", h.List)
	contacts.POST("", h.Create)
	contacts.GET("/:id", h.Get)
	contacts.PUT("/:id", h.Update)
	contacts.DELETE("/:id", h.Delete)

	return e
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": userID,
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func doJSON(e *echo.Echo, method, path, auth, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"name":"test name","email":"test@gmail.com","birthday":"05/03/1998","company":"ABC String"}`

type envelope struct {
	Data struct {
		ContactID  string `json:"contact_id"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		Birthday   string `json:"birthday"`
		Company    string `json:"company"`
		LastUpdate string `json:"last_update"`
	} `json:"data"`
	Links struct {
		Self string `json:"self"`
	} `json:"links"`
}

func TestContacts_RequireAuthentication(t *testing.T) {
	e := newTestServer(newMemContactRepo())

	if rec := doJSON(e, http.MethodGet, "/contacts", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodPost, "/contacts", "", validBody); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestContacts_CreateAndFetch(t *testing.T) {
	repo := newMemContactRepo()
	e := newTestServer(repo)
	alice := bearerFor(t, "alice")

	rec := doJSON(e, http.MethodPost, "/contacts", alice, validBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Data.ContactID == "" {
		t.Fatalf("expected contact_id in response")
	}
	if created.Data.Birthday != "03/05/1998" {
		t.Fatalf("expected birthday 03/05/1998, got %s", created.Data.Birthday)
	}
	wantSelf := testBaseURL + "/contacts/" + created.Data.ContactID
	if created.Links.Self != wantSelf {
		t.Fatalf("expected self link %s, got %s", wantSelf, created.Links.Self)
	}

	stored := repo.byID[created.Data.ContactID]
	if stored == nil || stored.UserID != "alice" {
		t.Fatalf("stored contact should belong to alice: %+v", stored)
	}

	rec = doJSON(e, http.MethodGet, "/contacts/"+created.Data.ContactID, alice, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var fetched envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if fetched.Data.Name != "test name" || fetched.Data.Company != "ABC String" {
		t.Fatalf("unexpected contact data: %+v", fetched.Data)
	}
}

func TestContacts_PayloadUserIDIgnored(t *testing.T) {
	repo := newMemContactRepo()
	e := newTestServer(repo)

	body := `{"name":"test name","email":"test@gmail.com","birthday":"05/03/1998","company":"ABC String","user_id":"mallory"}`
	rec := doJSON(e, http.MethodPost, "/contacts", bearerFor(t, "alice"), body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	if got := repo.byID[created.Data.ContactID].UserID; got != "alice" {
		t.Fatalf("user_id must come from the token, got %q", got)
	}
}

func TestContacts_ForeignAccessIsForbidden(t *testing.T) {
	repo := newMemContactRepo()
	e := newTestServer(repo)
	alice := bearerFor(t, "alice")
	bob := bearerFor(t, "bob")

	rec := doJSON(e, http.MethodPost, "/contacts", alice, validBody)
	var created envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	id := created.Data.ContactID

	if rec := doJSON(e, http.MethodGet, "/contacts/"+id, bob, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign get, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodPut, "/contacts/"+id, bob, validBody); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign put, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodDelete, "/contacts/"+id, bob, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign delete, got %d", rec.Code)
	}

	if _, ok := repo.byID[id]; !ok {
		t.Fatalf("contact must survive foreign delete attempts")
	}
}

func TestContacts_NotFoundDistinctFromForbidden(t *testing.T) {
	e := newTestServer(newMemContactRepo())

	rec := doJSON(e, http.MethodGet, "/contacts/does-not-exist", bearerFor(t, "alice"), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing contact, got %d", rec.Code)
	}
}

func TestContacts_ValidationFailures(t *testing.T) {
	repo := newMemContactRepo()
	e := newTestServer(repo)
	alice := bearerFor(t, "alice")

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", `{"email":"test@gmail.com","birthday":"05/03/1998","company":"ABC String"}`, "name"},
		{"blank name", `{"name":"   ","email":"test@gmail.com","birthday":"05/03/1998","company":"ABC String"}`, "name"},
		{"bad email", `{"name":"test name","email":"dgdfdgdrsgd","birthday":"05/03/1998","company":"ABC String"}`, "email"},
		{"missing birthday", `{"name":"test name","email":"test@gmail.com","company":"ABC String"}`, "birthday"},
		{"unparsable birthday", `{"name":"test name","email":"test@gmail.com","birthday":"not a date","company":"ABC String"}`, "birthday"},
		{"missing company", `{"name":"test name","email":"test@gmail.com","birthday":"05/03/1998"}`, "company"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/contacts", alice, tc.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
			}

			var resp struct {
				Error  string              `json:"error"`
				Fields map[string][]string `json:"fields"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode 422 body: %v", err)
			}
			if len(resp.Fields[tc.field]) == 0 {
				t.Fatalf("expected violation on %q, got %v", tc.field, resp.Fields)
			}
			if len(repo.byID) != 0 {
				t.Fatalf("validation failure must not persist anything")
			}
		})
	}
}

func TestContacts_UpdateResolvesBeforeValidating(t *testing.T) {
	repo := newMemContactRepo()
	e := newTestServer(repo)
	alice := bearerFor(t, "alice")
	bob := bearerFor(t, "bob")

	rec := doJSON(e, http.MethodPost, "/contacts", alice, validBody)
	var created envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	id := created.Data.ContactID

	invalid := `{"name":"","email":"not-an-email","birthday":"","company":""}`

	if rec := doJSON(e, http.MethodPut, "/contacts/"+id, bob, invalid); rec.Code != http.StatusForbidden {
		t.Fatalf("foreign update with invalid body: want 403, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodPut, "/contacts/does-not-exist", alice, invalid); rec.Code != http.StatusNotFound {
		t.Fatalf("missing contact with invalid body: want 404, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodPut, "/contacts/"+id, alice, invalid); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("owner update with invalid body: want 422, got %d", rec.Code)
	}

	if got := repo.byID[id].Name; got != "test name" {
		t.Fatalf("contact mutated by rejected updates: %q", got)
	}
}

func TestContacts_UpdateReplacesAllFields(t *testing.T) {
	repo := newMemContactRepo()
	e := newTestServer(repo)
	alice := bearerFor(t, "alice")

	rec := doJSON(e, http.MethodPost, "/contacts", alice, validBody)
	var created envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	id := created.Data.ContactID

	update := `{"name":"new name","email":"new@example.com","birthday":"25 December, 1990","company":"New Co"}`
	rec = doJSON(e, http.MethodPut, "/contacts/"+id, alice, update)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	stored := repo.byID[id]
	if stored.Name != "new name" || stored.Email != "new@example.com" || stored.Company != "New Co" {
		t.Fatalf("fields not replaced: %+v", stored)
	}
	if stored.UserID != "alice" || stored.ID != id {
		t.Fatalf("id/owner changed on update: %+v", stored)
	}
	if got := stored.Birthday.Format("2006-01-02"); got != "1990-12-25" {
		t.Fatalf("birthday not replaced, got %s", got)
	}
}

func TestContacts_DeleteThenGone(t *testing.T) {
	repo := newMemContactRepo()
	e := newTestServer(repo)
	alice := bearerFor(t, "alice")

	rec := doJSON(e, http.MethodPost, "/contacts", alice, validBody)
	var created envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	id := created.Data.ContactID

	if rec := doJSON(e, http.MethodDelete, "/contacts/"+id, alice, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodGet, "/contacts/"+id, alice, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodDelete, "/contacts/"+id, alice, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for repeated delete, got %d", rec.Code)
	}
}

func TestContacts_ListScopedToCaller(t *testing.T) {
	repo := newMemContactRepo()
	e := newTestServer(repo)
	alice := bearerFor(t, "alice")
	bob := bearerFor(t, "bob")

	doJSON(e, http.MethodPost, "/contacts", alice, validBody)
	doJSON(e, http.MethodPost, "/contacts", alice, validBody)
	doJSON(e, http.MethodPost, "/contacts", bob, validBody)

	rec := doJSON(e, http.MethodGet, "/contacts", alice, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var list struct {
		Data []envelope `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Data) != 2 {
		t.Fatalf("expected 2 contacts for alice, got %d", len(list.Data))
	}
	for _, item := range list.Data {
		if owner := repo.byID[item.Data.ContactID].UserID; owner != "alice" {
			t.Fatalf("foreign contact in alice's list: owner %s", owner)
		}
	}
}

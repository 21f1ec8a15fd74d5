package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rolodex/contacts-api/internal/core/domain"
	"github.com/rolodex/contacts-api/internal/core/ports"
)

// ContactHandler handles the HTTP CRUD surface for contacts.
type ContactHandler struct {
	service ports.ContactService
	baseURL string
}

func NewContactHandler(service ports.ContactService, baseURL string) *ContactHandler {
	return &ContactHandler{service: service, baseURL: baseURL}
}

// List handles GET /contacts.
//
// @Summary      List the caller's contacts
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  contactListResponse
// @Failure      401  {object}  map[string]string
// @Router       /contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	contacts, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toContactListResponse(contacts, h.baseURL))
}

// Create handles POST /contacts.
//
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      contactRequest  true  "Contact fields"
// @Success      201   {object}  contactEnvelope
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]interface{}
// @Router       /contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Authorize(c.Request().Context(), userID, "", domain.ActionCreate); err != nil {
		return err
	}

	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	contact, err := h.service.Create(c.Request().Context(), userID, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toContactEnvelope(contact, h.baseURL))
}

// Get handles GET /contacts/:id.
//
// @Summary      Get a single contact
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Contact id"
// @Success      200  {object}  contactEnvelope
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	contact, err := h.service.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toContactEnvelope(contact, h.baseURL))
}

// Update handles PUT /contacts/:id. Full replace: all four fields required
// every time, no merge semantics.
//
// @Summary      Replace a contact's fields
// @Tags         contacts
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string          true  "Contact id"
// @Param        body  body  contactRequest  true  "Contact fields"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]interface{}
// @Router       /contacts/{id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	// Resolve and authorize before validating: a missing target is 404 and a
	// foreign one 403 even when the payload is also invalid.
	if err := h.service.Authorize(c.Request().Context(), userID, c.Param("id"), domain.ActionUpdate); err != nil {
		return err
	}

	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	if _, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), input); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /contacts/:id.
//
// @Summary      Delete a contact
// @Tags         contacts
// @Security     BearerAuth
// @Param        id  path  string  true  "Contact id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// bindInput decodes and validates a create/update payload. All field
// violations are collected into one ValidationError so a response enumerates
// every problem, not just the first.
func (h *ContactHandler) bindInput(c echo.Context) (ports.ContactInput, error) {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return ports.ContactInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Birthday = strings.TrimSpace(req.Birthday)
	req.Company = strings.TrimSpace(req.Company)

	verr := domain.NewValidationError()
	if err := c.Validate(&req); err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			return ports.ContactInput{}, err
		}
		verr = ve
	}

	var birthday time.Time
	if req.Birthday != "" {
		parsed, err := domain.ParseBirthday(req.Birthday)
		if err != nil {
			verr.Add("birthday", "birthday must be a valid date")
		}
		birthday = parsed
	}

	if !verr.Empty() {
		return ports.ContactInput{}, verr
	}

	return toContactInput(req, birthday), nil
}

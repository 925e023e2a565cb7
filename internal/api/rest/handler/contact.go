package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Pelmenoff/m2-hw12/internal/api/rest/response"
	"github.com/Pelmenoff/m2-hw12/internal/logger"
	"github.com/Pelmenoff/m2-hw12/internal/model"
)

const (
	dateLayout   = "2006-01-02"
	maxBodyBytes = 1 << 20
)

// ContactService defines owner-scoped contact operations.
type ContactService interface {
	Create(ctx context.Context, ownerID int64, params model.ContactParams) (model.Contact, error)
	List(ctx context.Context, ownerID int64, page model.Page) ([]model.Contact, error)
	Get(ctx context.Context, ownerID, id int64) (model.Contact, error)
	Update(ctx context.Context, ownerID, id int64, params model.ContactParams) (model.Contact, error)
	Delete(ctx context.Context, ownerID, id int64) (model.Contact, error)
	Search(ctx context.Context, ownerID int64, query string, page model.Page) ([]model.Contact, error)
	UpcomingBirthdays(ctx context.Context, ownerID int64) ([]model.Contact, error)
}

// Contact handles HTTP endpoints for contacts of the authenticated user.
type Contact struct {
	contactService ContactService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewContact creates a new Contact handler.
func NewContact(contactService ContactService, contextManager model.ContextManager, logger *logger.Logger) *Contact {
	return &Contact{
		contactService: contactService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type contactRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	Birthday       string `json:"birthday"`
	AdditionalData string `json:"additional_data"`
}

type contactResponse struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	Birthday       string `json:"birthday"`
	AdditionalData string `json:"additional_data"`
}

type contactListResponse struct {
	Contacts []contactResponse `json:"contacts"`
}

func (h *Contact) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	params, err := decodeContact(w, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	contact, err := h.contactService.Create(r.Context(), user.ID, params)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, toContactResponse(contact))
}

func (h *Contact) List(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	contacts, err := h.contactService.List(r.Context(), user.ID, page)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, toContactListResponse(contacts))
}

func (h *Contact) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	id, err := parseID(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	contact, err := h.contactService.Get(r.Context(), user.ID, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, toContactResponse(contact))
}

func (h *Contact) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	id, err := parseID(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	params, err := decodeContact(w, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	contact, err := h.contactService.Update(r.Context(), user.ID, id, params)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, toContactResponse(contact))
}

func (h *Contact) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	id, err := parseID(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	contact, err := h.contactService.Delete(r.Context(), user.ID, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, toContactResponse(contact))
}

func (h *Contact) Search(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	values := r.URL.Query()
	if !values.Has("query") {
		response.Error(w, http.StatusUnprocessableEntity, "query is required")
		return
	}

	page, err := parsePage(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	contacts, err := h.contactService.Search(r.Context(), user.ID, values.Get("query"), page)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, toContactListResponse(contacts))
}

func (h *Contact) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	contacts, err := h.contactService.UpcomingBirthdays(r.Context(), user.ID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, toContactListResponse(contacts))
}

// user returns the authenticated user or writes 401 when the route was
// reached without the authenticate middleware.
func (h *Contact) user(w http.ResponseWriter, r *http.Request) (model.User, bool) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
	}
	return user, ok
}

// decodeContact reads a single JSON object of at most maxBodyBytes.
// Unknown fields are ignored.
func decodeContact(w http.ResponseWriter, r *http.Request) (model.ContactParams, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	var req contactRequest
	if err := dec.Decode(&req); err != nil {
		return model.ContactParams{}, bodyError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if isTooLarge(err) {
			return model.ContactParams{}, bodyError(err)
		}
		return model.ContactParams{}, model.NewValidationError("request body must contain a single JSON object")
	}

	params := model.ContactParams{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		AdditionalData: req.AdditionalData,
	}
	if req.Birthday != "" {
		birthday, err := time.Parse(dateLayout, req.Birthday)
		if err != nil {
			return model.ContactParams{}, model.NewValidationError("birthday must be a date in YYYY-MM-DD format")
		}
		params.Birthday = birthday
	}

	return params, nil
}

func bodyError(err error) error {
	if isTooLarge(err) {
		return model.NewValidationError("request body must not exceed %d bytes", maxBodyBytes)
	}
	return model.NewValidationError("invalid JSON body")
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, model.NewValidationError("contact id must be an integer")
	}
	return id, nil
}

func parsePage(r *http.Request) (model.Page, error) {
	page := model.Page{Limit: model.DefaultPageLimit}
	values := r.URL.Query()

	if v := values.Get("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil {
			return model.Page{}, model.NewValidationError("skip must be an integer")
		}
		page.Skip = skip
	}
	if v := values.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return model.Page{}, model.NewValidationError("limit must be an integer")
		}
		page.Limit = limit
	}

	return page, nil
}

func toContactResponse(c model.Contact) contactResponse {
	return contactResponse{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		PhoneNumber:    c.PhoneNumber,
		Birthday:       c.Birthday.Format(dateLayout),
		AdditionalData: c.AdditionalData,
	}
}

func toContactListResponse(contacts []model.Contact) contactListResponse {
	out := contactListResponse{Contacts: make([]contactResponse, 0, len(contacts))}
	for _, c := range contacts {
		out.Contacts = append(out.Contacts, toContactResponse(c))
	}
	return out
}

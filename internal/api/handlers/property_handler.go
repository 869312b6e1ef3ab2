package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rentora/rentora-be/internal/auth"
	"github.com/rentora/rentora-be/internal/services"
	"github.com/rs/zerolog/log"
)

// PropertyHandler handles HTTP requests for the property manager.
type PropertyHandler struct {
	service services.PropertyServiceProvider
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(service services.PropertyServiceProvider) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// PropertyPayload defines the structure for create and update requests.
// Units are kept raw so the service can normalize whatever shape arrives.
type PropertyPayload struct {
	Name    string          `json:"name"`
	Address string          `json:"address"`
	Units   json.RawMessage `json:"units"`
}

// GetAll lists every property owned by the authenticated user.
func (h *PropertyHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from context")
		respondMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	properties, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list properties")
		respondInternalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, properties)
}

// Create adds a new property for the authenticated user.
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from context")
		respondMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	var payload PropertyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	property, err := h.service.Create(r.Context(), user.ID, payload.Name, payload.Address, payload.Units)
	if err != nil {
		h.respondServiceError(w, err, user.ID, "Failed to create property")
		return
	}

	respondJSON(w, http.StatusCreated, property)
}

// Update replaces an existing property's fields and unit list.
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from context")
		respondMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	id := chi.URLParam(r, "id")
	var payload PropertyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	property, err := h.service.Update(r.Context(), user.ID, id, payload.Name, payload.Address, payload.Units)
	if err != nil {
		h.respondServiceError(w, err, user.ID, "Failed to update property")
		return
	}

	respondJSON(w, http.StatusOK, property)
}

// Delete removes a property owned by the authenticated user.
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from context")
		respondMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), user.ID, id); err != nil {
		h.respondServiceError(w, err, user.ID, "Failed to delete property")
		return
	}

	respondMessage(w, http.StatusOK, "Property deleted successfully")
}

// respondServiceError maps service errors onto the response taxonomy.
func (h *PropertyHandler) respondServiceError(w http.ResponseWriter, err error, userID, logMsg string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		respondMessage(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "Property not found")
	default:
		log.Error().Err(err).Str("user_id", userID).Msg(logMsg)
		respondInternalError(w, err)
	}
}

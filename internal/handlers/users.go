package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/storeqa/storefront-suite/internal/models"
	"github.com/storeqa/storefront-suite/internal/services"
)

// UsersPath is the collection path of the users API
const UsersPath = "/public/v2/users"

// UsersHandler serves the users API: list, create, get, update and delete
type UsersHandler struct {
	users services.UserService
	token string
}

// NewUsersHandler creates a UsersHandler that requires token as a bearer credential
func NewUsersHandler(users services.UserService, token string) *UsersHandler {
	return &UsersHandler{users: users, token: token}
}

type messageResponse struct {
	Message string `json:"message"`
}

// ServeHTTP handles /public/v2/users and /public/v2/users/{id}
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Authentication failed"})
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, UsersPath), "/")
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			methodNotAllowed(w, "GET, POST")
		}
		return
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "Resource not found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut, http.MethodPatch:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		methodNotAllowed(w, "GET, PUT, PATCH, DELETE")
	}
}

func (h *UsersHandler) authorized(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return ok && subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) == 1
}

func (h *UsersHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UsersHandler) create(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid JSON body"})
		return
	}

	created, err := h.users.Create(r.Context(), u)
	if h.writeServiceError(w, err) {
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *UsersHandler) get(w http.ResponseWriter, r *http.Request, id int64) {
	u, err := h.users.Get(r.Context(), id)
	if h.writeServiceError(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) update(w http.ResponseWriter, r *http.Request, id int64) {
	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid JSON body"})
		return
	}

	u, err := h.users.Update(r.Context(), id, fields)
	if h.writeServiceError(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	if h.writeServiceError(w, h.users.Delete(r.Context(), id)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps err to a response and reports whether it wrote one
func (h *UsersHandler) writeServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, verr.Fields)
	case errors.Is(err, models.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "Resource not found"})
	default:
		h.internalError(w, err)
	}
	return true
}

func (h *UsersHandler) internalError(w http.ResponseWriter, err error) {
	log.Printf("Users API error: %v", err)
	writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Internal server error"})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeJSON(w, http.StatusMethodNotAllowed, messageResponse{Message: "Method not allowed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

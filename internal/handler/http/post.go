package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devconnector/devconnector/internal/service"
	"github.com/devconnector/devconnector/pkg/middleware"
	"github.com/devconnector/devconnector/pkg/pagination"
	"github.com/devconnector/devconnector/pkg/validator"
)

// PostHandler handles HTTP requests for posts, likes, and comments.
type PostHandler struct {
	service *service.PostService
	logger  *slog.Logger
}

// NewPostHandler creates a new post HTTP handler.
func NewPostHandler(svc *service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{service: svc, logger: logger}
}

// CreatePostRequest is the JSON request body for creating a post or comment.
type CreatePostRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

// Create handles POST /api/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	post, err := h.service.Create(r.Context(), userID, req.Text)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: post})
}

// List handles GET /api/posts
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	result, err := h.service.List(r.Context(), params)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetByID handles GET /api/posts/{id}
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	if postID == "" {
		writeBadRequest(w, "post id is required")
		return
	}

	post, err := h.service.GetByID(r.Context(), postID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: post})
}

// Delete handles DELETE /api/posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	postID := chi.URLParam(r, "id")
	if postID == "" {
		writeBadRequest(w, "post id is required")
		return
	}

	if err := h.service.Delete(r.Context(), postID, userID); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"id": postID, "status": "deleted"}})
}

// Like handles PUT /api/posts/{id}/like
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	postID := chi.URLParam(r, "id")
	if postID == "" {
		writeBadRequest(w, "post id is required")
		return
	}

	post, err := h.service.Like(r.Context(), postID, userID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: post})
}

// Unlike handles PUT /api/posts/{id}/unlike
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	postID := chi.URLParam(r, "id")
	if postID == "" {
		writeBadRequest(w, "post id is required")
		return
	}

	post, err := h.service.Unlike(r.Context(), postID, userID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: post})
}

// AddComment handles POST /api/posts/{id}/comments
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	postID := chi.URLParam(r, "id")
	if postID == "" {
		writeBadRequest(w, "post id is required")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	post, err := h.service.AddComment(r.Context(), postID, userID, req.Text)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: post})
}

// DeleteComment handles DELETE /api/posts/{id}/comments/{commentID}
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	postID := chi.URLParam(r, "id")
	commentID := chi.URLParam(r, "commentID")
	if postID == "" || commentID == "" {
		writeBadRequest(w, "post id and comment id are required")
		return
	}

	post, err := h.service.DeleteComment(r.Context(), postID, commentID, userID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: post})
}

package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/devconnector/devconnector/internal/domain"
	"github.com/devconnector/devconnector/internal/service"
	"github.com/devconnector/devconnector/pkg/middleware"
	"github.com/devconnector/devconnector/pkg/pagination"
	"github.com/devconnector/devconnector/pkg/validator"
)

// ProfileHandler handles HTTP requests for developer profiles.
type ProfileHandler struct {
	profiles *service.ProfileService
	users    *service.UserService
	logger   *slog.Logger
}

// NewProfileHandler creates a new profile HTTP handler.
func NewProfileHandler(profiles *service.ProfileService, users *service.UserService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, users: users, logger: logger}
}

// --- Request DTOs ---

// UpsertProfileRequest is the JSON request body for creating or updating a profile.
// Skills is a comma-separated string, split and trimmed server-side.
type UpsertProfileRequest struct {
	Status         string `json:"status" validate:"required,min=1,max=100"`
	Skills         string `json:"skills" validate:"required,min=1"`
	Company        string `json:"company" validate:"omitempty,max=100"`
	Website        string `json:"website" validate:"omitempty,max=500"`
	Location       string `json:"location" validate:"omitempty,max=100"`
	Bio            string `json:"bio" validate:"omitempty,max=1000"`
	GithubUsername string `json:"github_username" validate:"omitempty,max=100"`
	Youtube        string `json:"youtube" validate:"omitempty,max=500"`
	Twitter        string `json:"twitter" validate:"omitempty,max=500"`
	Facebook       string `json:"facebook" validate:"omitempty,max=500"`
	Instagram      string `json:"instagram" validate:"omitempty,max=500"`
	Linkedin       string `json:"linkedin" validate:"omitempty,max=500"`
}

// AddExperienceRequest is the JSON request body for adding a work history entry.
type AddExperienceRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=100"`
	Company     string     `json:"company" validate:"required,min=1,max=100"`
	Location    string     `json:"location" validate:"omitempty,max=100"`
	From        time.Time  `json:"from" validate:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description" validate:"omitempty,max=1000"`
}

// AddEducationRequest is the JSON request body for adding a schooling entry.
type AddEducationRequest struct {
	School       string     `json:"school" validate:"required,min=1,max=100"`
	Degree       string     `json:"degree" validate:"required,min=1,max=100"`
	FieldOfStudy string     `json:"field_of_study" validate:"required,min=1,max=100"`
	From         time.Time  `json:"from" validate:"required"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description" validate:"omitempty,max=1000"`
}

// --- Public handlers ---

// List handles GET /api/profiles
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	result, err := h.profiles.List(r.Context(), params)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetByUserID handles GET /api/profiles/user/{userID}
func (h *ProfileHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeBadRequest(w, "user id is required")
		return
	}

	profile, err := h.profiles.GetByUserID(r.Context(), userID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: profile})
}

// --- Gated handlers ---

// GetMine handles GET /api/profiles/me
func (h *ProfileHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	profile, err := h.profiles.GetByUserID(r.Context(), userID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: profile})
}

// Upsert handles POST /api/profiles/me
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	var req UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	input := service.UpsertProfileInput{
		Status:         req.Status,
		Skills:         req.Skills,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social: domain.Social{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			Instagram: req.Instagram,
			Linkedin:  req.Linkedin,
		},
	}

	profile, err := h.profiles.Upsert(r.Context(), userID, input)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: profile})
}

// DeleteAccount handles DELETE /api/profiles/me. It removes the caller's
// posts, profile, and user record.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	if err := h.users.DeleteAccount(r.Context(), userID); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"message": "user deleted"}})
}

// AddExperience handles PUT /api/profiles/me/experience
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	var req AddExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	input := service.AddExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}

	profile, err := h.profiles.AddExperience(r.Context(), userID, input)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: profile})
}

// DeleteExperience handles DELETE /api/profiles/me/experience/{id}
func (h *ProfileHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	experienceID := chi.URLParam(r, "id")
	if experienceID == "" {
		writeBadRequest(w, "experience id is required")
		return
	}

	profile, err := h.profiles.DeleteExperience(r.Context(), userID, experienceID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: profile})
}

// AddEducation handles PUT /api/profiles/me/education
func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	var req AddEducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	input := service.AddEducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}

	profile, err := h.profiles.AddEducation(r.Context(), userID, input)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: profile})
}

// DeleteEducation handles DELETE /api/profiles/me/education/{id}
func (h *ProfileHandler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	educationID := chi.URLParam(r, "id")
	if educationID == "" {
		writeBadRequest(w, "education id is required")
		return
	}

	profile, err := h.profiles.DeleteEducation(r.Context(), userID, educationID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: profile})
}

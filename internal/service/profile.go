package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/devconnector/devconnector/internal/domain"
	"github.com/devconnector/devconnector/internal/repository"
	apperrors "github.com/devconnector/devconnector/pkg/errors"
	"github.com/devconnector/devconnector/pkg/pagination"
)

// ProfileService implements developer profile operations.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	logger      *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(profileRepo repository.ProfileRepository, logger *slog.Logger) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, logger: logger}
}

// UpsertProfileInput holds the fields for creating or updating a profile.
// Skills arrives as the raw comma-separated string the client sends.
type UpsertProfileInput struct {
	Status         string
	Skills         string
	Company        string
	Website        string
	Location       string
	Bio            string
	GithubUsername string
	Social         domain.Social
}

// AddExperienceInput holds the fields for a new experience entry.
type AddExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// AddEducationInput holds the fields for a new education entry.
type AddEducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// Upsert creates the caller's profile or replaces its fields. Calling it
// twice with the same input is idempotent.
func (s *ProfileService) Upsert(ctx context.Context, userID string, input UpsertProfileInput) (*domain.Profile, error) {
	if input.Status == "" {
		return nil, apperrors.InvalidInput("status is required")
	}

	skills := domain.ParseSkills(input.Skills)
	if len(skills) == 0 {
		return nil, apperrors.InvalidInput("at least one skill is required")
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:             uuid.New().String(),
		UserID:         userID,
		Status:         input.Status,
		Skills:         skills,
		Company:        input.Company,
		Website:        input.Website,
		Location:       input.Location,
		Bio:            input.Bio,
		GithubUsername: input.GithubUsername,
		Social:         input.Social,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	s.logger.InfoContext(ctx, "profile saved",
		slog.String("user_id", userID),
		slog.String("profile_id", profile.ID),
	)

	// Re-read so the response carries experience/education and owner fields.
	return s.GetByUserID(ctx, userID)
}

// GetByUserID returns the full profile for a user.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// List returns a page of profiles, newest first.
func (s *ProfileService) List(ctx context.Context, params pagination.Params) (pagination.Result[domain.Profile], error) {
	profiles, total, err := s.profileRepo.List(ctx, params)
	if err != nil {
		return pagination.Result[domain.Profile]{}, fmt.Errorf("list profiles: %w", err)
	}
	return pagination.NewResult(profiles, total, params), nil
}

// AddExperience appends a work history entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, input AddExperienceInput) (*domain.Profile, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidInput("title is required")
	}
	if input.Company == "" {
		return nil, apperrors.InvalidInput("company is required")
	}
	if input.From.IsZero() {
		return nil, apperrors.InvalidInput("from date is required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile for experience: %w", err)
	}

	exp := &domain.Experience{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.profileRepo.AddExperience(ctx, profile.ID, exp); err != nil {
		return nil, fmt.Errorf("add experience: %w", err)
	}

	return s.GetByUserID(ctx, userID)
}

// DeleteExperience removes an experience entry from the caller's profile.
func (s *ProfileService) DeleteExperience(ctx context.Context, userID, experienceID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile for experience delete: %w", err)
	}

	if err := s.profileRepo.DeleteExperience(ctx, profile.ID, experienceID); err != nil {
		return nil, fmt.Errorf("delete experience: %w", err)
	}

	return s.GetByUserID(ctx, userID)
}

// AddEducation appends a schooling entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, input AddEducationInput) (*domain.Profile, error) {
	if input.School == "" {
		return nil, apperrors.InvalidInput("school is required")
	}
	if input.Degree == "" {
		return nil, apperrors.InvalidInput("degree is required")
	}
	if input.FieldOfStudy == "" {
		return nil, apperrors.InvalidInput("field of study is required")
	}
	if input.From.IsZero() {
		return nil, apperrors.InvalidInput("from date is required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile for education: %w", err)
	}

	edu := &domain.Education{
		ID:           uuid.New().String(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.profileRepo.AddEducation(ctx, profile.ID, edu); err != nil {
		return nil, fmt.Errorf("add education: %w", err)
	}

	return s.GetByUserID(ctx, userID)
}

// DeleteEducation removes an education entry from the caller's profile.
func (s *ProfileService) DeleteEducation(ctx context.Context, userID, educationID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile for education delete: %w", err)
	}

	if err := s.profileRepo.DeleteEducation(ctx, profile.ID, educationID); err != nil {
		return nil, fmt.Errorf("delete education: %w", err)
	}

	return s.GetByUserID(ctx, userID)
}

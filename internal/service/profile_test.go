package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/devconnector/internal/domain"
	apperrors "github.com/devconnector/devconnector/pkg/errors"
	"github.com/devconnector/devconnector/pkg/pagination"
)

func newTestProfileService(profileRepo *mockProfileRepository) *ProfileService {
	return NewProfileService(profileRepo, newTestLogger())
}

func storedProfile(userID string) *domain.Profile {
	return &domain.Profile{
		ID:     "profile-1",
		UserID: userID,
		Status: "Developer",
		Skills: []string{"Go"},
	}
}

// --- Upsert Tests ---

func TestProfileUpsert_Success(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	svc := newTestProfileService(profileRepo)
	ctx := context.Background()

	profileRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.Profile")).Return(nil)
	profileRepo.On("GetByUserID", ctx, "user-1").Return(storedProfile("user-1"), nil)

	profile, err := svc.Upsert(ctx, "user-1", UpsertProfileInput{
		Status: "Developer",
		Skills: "Go, SQL , React",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.UserID)
	profileRepo.AssertExpectations(t)

	// The skills string must be split and trimmed before persistence.
	saved := profileRepo.Calls[0].Arguments.Get(1).(*domain.Profile)
	assert.Equal(t, []string{"Go", "SQL", "React"}, saved.Skills)
}

func TestProfileUpsert_MissingStatus(t *testing.T) {
	svc := newTestProfileService(new(mockProfileRepository))

	profile, err := svc.Upsert(context.Background(), "user-1", UpsertProfileInput{Skills: "Go"})

	assert.Nil(t, profile)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestProfileUpsert_EmptySkills(t *testing.T) {
	svc := newTestProfileService(new(mockProfileRepository))

	profile, err := svc.Upsert(context.Background(), "user-1", UpsertProfileInput{
		Status: "Developer",
		Skills: " , ,",
	})

	assert.Nil(t, profile)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// --- Get / List Tests ---

func TestProfileGetByUserID_NotFound(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	svc := newTestProfileService(profileRepo)
	ctx := context.Background()

	profileRepo.On("GetByUserID", ctx, "user-1").Return(nil, apperrors.NotFound("profile", "user-1"))

	profile, err := svc.GetByUserID(ctx, "user-1")

	assert.Nil(t, profile)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProfileList_Paginates(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	svc := newTestProfileService(profileRepo)
	ctx := context.Background()

	params := pagination.Params{Page: 2, PerPage: 10, Offset: 10}
	profileRepo.On("List", ctx, params).Return([]domain.Profile{*storedProfile("user-1")}, 11, nil)

	result, err := svc.List(ctx, params)

	require.NoError(t, err)
	assert.Len(t, result.Data, 1)
	assert.Equal(t, 11, result.TotalCount)
	assert.Equal(t, 2, result.TotalPages)
	assert.False(t, result.HasNext)
	assert.True(t, result.HasPrev)
}

// --- Experience Tests ---

func TestAddExperience_Success(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	svc := newTestProfileService(profileRepo)
	ctx := context.Background()

	profileRepo.On("GetByUserID", ctx, "user-1").Return(storedProfile("user-1"), nil)
	profileRepo.On("AddExperience", ctx, "profile-1", mock.AnythingOfType("*domain.Experience")).Return(nil)

	profile, err := svc.AddExperience(ctx, "user-1", AddExperienceInput{
		Title:   "Engineer",
		Company: "Acme",
		From:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.NotNil(t, profile)
	profileRepo.AssertExpectations(t)
}

func TestAddExperience_RequiredFields(t *testing.T) {
	svc := newTestProfileService(new(mockProfileRepository))
	ctx := context.Background()
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input AddExperienceInput
	}{
		{"no title", AddExperienceInput{Company: "Acme", From: from}},
		{"no company", AddExperienceInput{Title: "Engineer", From: from}},
		{"no from", AddExperienceInput{Title: "Engineer", Company: "Acme"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile, err := svc.AddExperience(ctx, "user-1", tc.input)
			assert.Nil(t, profile)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestAddExperience_NoProfileYet(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	svc := newTestProfileService(profileRepo)
	ctx := context.Background()

	profileRepo.On("GetByUserID", ctx, "user-1").Return(nil, apperrors.NotFound("profile", "user-1"))

	profile, err := svc.AddExperience(ctx, "user-1", AddExperienceInput{
		Title:   "Engineer",
		Company: "Acme",
		From:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Nil(t, profile)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteExperience_UnknownEntry(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	svc := newTestProfileService(profileRepo)
	ctx := context.Background()

	profileRepo.On("GetByUserID", ctx, "user-1").Return(storedProfile("user-1"), nil)
	profileRepo.On("DeleteExperience", ctx, "profile-1", "exp-404").
		Return(apperrors.NotFound("experience", "exp-404"))

	profile, err := svc.DeleteExperience(ctx, "user-1", "exp-404")

	assert.Nil(t, profile)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// --- Education Tests ---

func TestAddEducation_Success(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	svc := newTestProfileService(profileRepo)
	ctx := context.Background()

	profileRepo.On("GetByUserID", ctx, "user-1").Return(storedProfile("user-1"), nil)
	profileRepo.On("AddEducation", ctx, "profile-1", mock.AnythingOfType("*domain.Education")).Return(nil)

	profile, err := svc.AddEducation(ctx, "user-1", AddEducationInput{
		School:       "State University",
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.NotNil(t, profile)
	profileRepo.AssertExpectations(t)
}

func TestAddEducation_RequiredFields(t *testing.T) {
	svc := newTestProfileService(new(mockProfileRepository))
	ctx := context.Background()
	from := time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input AddEducationInput
	}{
		{"no school", AddEducationInput{Degree: "BSc", FieldOfStudy: "CS", From: from}},
		{"no degree", AddEducationInput{School: "SU", FieldOfStudy: "CS", From: from}},
		{"no field", AddEducationInput{School: "SU", Degree: "BSc", From: from}},
		{"no from", AddEducationInput{School: "SU", Degree: "BSc", FieldOfStudy: "CS"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile, err := svc.AddEducation(ctx, "user-1", tc.input)
			assert.Nil(t, profile)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

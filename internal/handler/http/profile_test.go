package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/devconnector/internal/domain"
	apperrors "github.com/devconnector/devconnector/pkg/errors"
	"github.com/devconnector/devconnector/pkg/pagination"
)

func sampleProfile() *domain.Profile {
	now := time.Now().UTC()
	return &domain.Profile{
		ID:            "profile-1",
		UserID:        testUserID,
		Status:        "Developer",
		Skills:        []string{"Go", "SQL"},
		UserName:      "John Doe",
		UserAvatarURL: "https://www.gravatar.com/avatar/x?s=200&r=pg&d=mm",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func authedRequest(t *testing.T, deps *testDeps, method, path string, body any) *http.Request {
	t.Helper()
	token, err := deps.tokens.Generate(testUserID)
	require.NoError(t, err)

	var req *http.Request
	if body != nil {
		req = jsonRequest(t, method, path, body)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("x-auth-token", token)
	return req
}

// --- Public listing tests ---

func TestProfileList_PublicAndCacheable(t *testing.T) {
	router, deps := newTestRouter(t)

	deps.profileRepo.On("List", mock.Anything, mock.AnythingOfType("pagination.Params")).
		Return([]domain.Profile{*sampleProfile()}, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=60")

	var result pagination.Result[domain.Profile]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Len(t, result.Data, 1)
	assert.Equal(t, 1, result.TotalCount)
	assert.Equal(t, "John Doe", result.Data[0].UserName)
}

func TestProfileGetByUser_NotFound(t *testing.T) {
	router, deps := newTestRouter(t)

	deps.profileRepo.On("GetByUserID", mock.Anything, "ghost").
		Return(nil, apperrors.NotFound("profile", "ghost"))

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/user/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

// --- Gated profile tests ---

func TestProfileGetMine_RequiresToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileGetMine_NoneYet(t *testing.T) {
	router, deps := newTestRouter(t)

	deps.profileRepo.On("GetByUserID", mock.Anything, testUserID).
		Return(nil, apperrors.NotFound("profile", testUserID))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, deps, http.MethodGet, "/api/profiles/me", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileUpsert_Success(t *testing.T) {
	router, deps := newTestRouter(t)

	deps.profileRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil)
	deps.profileRepo.On("GetByUserID", mock.Anything, testUserID).Return(sampleProfile(), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, deps, http.MethodPost, "/api/profiles/me", map[string]string{
		"status": "Developer",
		"skills": "Go, SQL",
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data domain.Profile `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"Go", "SQL"}, resp.Data.Skills)
	deps.profileRepo.AssertExpectations(t)
}

func TestProfileUpsert_MissingStatus(t *testing.T) {
	router, deps := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, deps, http.MethodPost, "/api/profiles/me", map[string]string{
		"skills": "Go",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "status")
}

func TestDeleteAccount_Cascades(t *testing.T) {
	router, deps := newTestRouter(t)

	deps.postRepo.On("DeleteByAuthor", mock.Anything, testUserID).Return(nil)
	deps.profileRepo.On("DeleteByUserID", mock.Anything, testUserID).Return(nil)
	deps.userRepo.On("Delete", mock.Anything, testUserID).Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, deps, http.MethodDelete, "/api/profiles/me", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	deps.postRepo.AssertExpectations(t)
	deps.profileRepo.AssertExpectations(t)
	deps.userRepo.AssertExpectations(t)
}

// --- Experience / Education tests ---

func TestAddExperience_Success(t *testing.T) {
	router, deps := newTestRouter(t)

	deps.profileRepo.On("GetByUserID", mock.Anything, testUserID).Return(sampleProfile(), nil)
	deps.profileRepo.On("AddExperience", mock.Anything, "profile-1", mock.AnythingOfType("*domain.Experience")).Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, deps, http.MethodPut, "/api/profiles/me/experience", map[string]any{
		"title":   "Engineer",
		"company": "Acme",
		"from":    "2020-01-01T00:00:00Z",
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	deps.profileRepo.AssertExpectations(t)
}

func TestAddExperience_MissingCompany(t *testing.T) {
	router, deps := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, deps, http.MethodPut, "/api/profiles/me/experience", map[string]any{
		"title": "Engineer",
		"from":  "2020-01-01T00:00:00Z",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEducation_UnknownEntry(t *testing.T) {
	router, deps := newTestRouter(t)

	deps.profileRepo.On("GetByUserID", mock.Anything, testUserID).Return(sampleProfile(), nil)
	deps.profileRepo.On("DeleteEducation", mock.Anything, "profile-1", "edu-404").
		Return(apperrors.NotFound("education", "edu-404"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, deps, http.MethodDelete, "/api/profiles/me/education/edu-404", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

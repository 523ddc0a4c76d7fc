package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/devconnector/internal/domain"
	"github.com/devconnector/devconnector/pkg/database"
	apperrors "github.com/devconnector/devconnector/pkg/errors"
)

func newProfileTestFixture(t *testing.T) (*ProfileRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewProfileRepository(mock)
	return repo, mock
}

func storedProfile() *domain.Profile {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Profile{
		ID:             "pr-1",
		UserID:         "u-1234",
		Status:         "Developer",
		Skills:         []string{"Go", "SQL"},
		Company:        "Acme",
		Website:        "https://acme.example.com",
		Location:       "Berlin",
		Bio:            "builds things",
		GithubUsername: "alice",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func profileColumns() []string {
	return []string{
		"id", "user_id", "status", "skills", "company", "website", "location", "bio", "github_username",
		"social_youtube", "social_twitter", "social_facebook", "social_instagram", "social_linkedin",
		"created_at", "updated_at", "name", "avatar_url",
	}
}

func profileRow(p *domain.Profile) *pgxmock.Rows {
	return pgxmock.NewRows(profileColumns()).AddRow(
		p.ID, p.UserID, p.Status, p.Skills, p.Company, p.Website, p.Location, p.Bio, p.GithubUsername,
		p.Social.Youtube, p.Social.Twitter, p.Social.Facebook, p.Social.Instagram, p.Social.Linkedin,
		p.CreatedAt, p.UpdatedAt, "Alice Smith", "https://example.com/a.png",
	)
}

func TestProfileRepository_Upsert_WritesBackIDAndCreatedAt(t *testing.T) {
	repo, mock := newProfileTestFixture(t)
	defer mock.Close()

	p := storedProfile()
	existingCreatedAt := p.CreatedAt.Add(-24 * time.Hour)

	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs(
			p.ID, p.UserID, p.Status, p.Skills, p.Company, p.Website, p.Location, p.Bio, p.GithubUsername,
			p.Social.Youtube, p.Social.Twitter, p.Social.Facebook, p.Social.Instagram, p.Social.Linkedin,
			p.CreatedAt, p.UpdatedAt,
		).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("pr-existing", existingCreatedAt))

	err := repo.Upsert(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "pr-existing", p.ID)
	assert.Equal(t, existingCreatedAt, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_GetByUserID_LoadsChildEntries(t *testing.T) {
	repo, mock := newProfileTestFixture(t)
	defer mock.Close()

	p := storedProfile()
	from := p.CreatedAt.Add(-365 * 24 * time.Hour)

	mock.ExpectQuery("SELECT .+ FROM profiles p").
		WithArgs(p.UserID).
		WillReturnRows(profileRow(p))

	mock.ExpectQuery("SELECT .+ FROM profile_experience").
		WithArgs(p.ID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "profile_id", "title", "company", "location", "from_date", "to_date", "current", "description", "created_at",
		}).AddRow("exp-1", p.ID, "Engineer", "Acme", "Berlin", from, (*time.Time)(nil), true, "backend work", p.CreatedAt))

	mock.ExpectQuery("SELECT .+ FROM profile_education").
		WithArgs(p.ID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "profile_id", "school", "degree", "field_of_study", "from_date", "to_date", "current", "description", "created_at",
		}))

	got, err := repo.GetByUserID(context.Background(), p.UserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, got.Skills)
	assert.Equal(t, "Alice Smith", got.UserName)
	require.Len(t, got.Experience, 1)
	assert.True(t, got.Experience[0].Current)
	assert.Nil(t, got.Experience[0].To)
	assert.Empty(t, got.Education)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_GetByUserID_NotFound(t *testing.T) {
	repo, mock := newProfileTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM profiles p").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(profileColumns()))

	got, err := repo.GetByUserID(context.Background(), "ghost")
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_AddExperience_Success(t *testing.T) {
	repo, mock := newProfileTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	exp := &domain.Experience{
		ID:          "exp-1",
		Title:       "Engineer",
		Company:     "Acme",
		Location:    "Berlin",
		From:        now.Add(-time.Hour),
		Current:     true,
		Description: "backend work",
		CreatedAt:   now,
	}

	mock.ExpectExec("INSERT INTO profile_experience").
		WithArgs(exp.ID, "pr-1", exp.Title, exp.Company, exp.Location, exp.From, exp.To, exp.Current, exp.Description, exp.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.AddExperience(context.Background(), "pr-1", exp)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_DeleteExperience_ScopedToProfile(t *testing.T) {
	repo, mock := newProfileTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM profile_experience WHERE id =").
		WithArgs("exp-other", "pr-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.DeleteExperience(context.Background(), "pr-1", "exp-other")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_DeleteEducation_Success(t *testing.T) {
	repo, mock := newProfileTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM profile_education WHERE id =").
		WithArgs("edu-1", "pr-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.DeleteEducation(context.Background(), "pr-1", "edu-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_DeleteByUserID_NoRowIsNoError(t *testing.T) {
	repo, mock := newProfileTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM profiles WHERE user_id =").
		WithArgs("u-1234").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.DeleteByUserID(context.Background(), "u-1234")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

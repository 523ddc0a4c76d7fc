package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/devconnector/devconnector/internal/domain"
	apperrors "github.com/devconnector/devconnector/pkg/errors"
	"github.com/devconnector/devconnector/pkg/pagination"
)

// ProfileRepository implements repository.ProfileRepository using PostgreSQL.
// Experience and education live in child tables keyed by profile id.
type ProfileRepository struct {
	db DBTX
}

// NewProfileRepository creates a new PostgreSQL-backed profile repository.
func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert creates the profile for p.UserID, or replaces its scalar fields if
// one exists already. Experience and education entries are untouched. The
// resulting profile id and created_at are written back into p.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, status, skills, company, website, location, bio, github_username,
		                      social_youtube, social_twitter, social_facebook, social_instagram, social_linkedin,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (user_id) DO UPDATE SET
			status = EXCLUDED.status,
			skills = EXCLUDED.skills,
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			bio = EXCLUDED.bio,
			github_username = EXCLUDED.github_username,
			social_youtube = EXCLUDED.social_youtube,
			social_twitter = EXCLUDED.social_twitter,
			social_facebook = EXCLUDED.social_facebook,
			social_instagram = EXCLUDED.social_instagram,
			social_linkedin = EXCLUDED.social_linkedin,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		p.ID,
		p.UserID,
		p.Status,
		p.Skills,
		p.Company,
		p.Website,
		p.Location,
		p.Bio,
		p.GithubUsername,
		p.Social.Youtube,
		p.Social.Twitter,
		p.Social.Facebook,
		p.Social.Instagram,
		p.Social.Linkedin,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves the full profile for the given user, including
// experience and education entries and the owner's name/avatar.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT p.id, p.user_id, p.status, p.skills, p.company, p.website, p.location, p.bio, p.github_username,
		       p.social_youtube, p.social_twitter, p.social_facebook, p.social_instagram, p.social_linkedin,
		       p.created_at, p.updated_at, u.name, u.avatar_url
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`

	p, err := r.scanProfile(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	if p.Experience, err = r.listExperience(ctx, p.ID); err != nil {
		return nil, err
	}
	if p.Education, err = r.listEducation(ctx, p.ID); err != nil {
		return nil, err
	}

	return p, nil
}

// List returns profiles joined with owner name/avatar, newest first. Child
// entries are not loaded for listings.
func (r *ProfileRepository) List(ctx context.Context, params pagination.Params) ([]domain.Profile, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count profiles: %w", err)
	}

	query := `
		SELECT p.id, p.user_id, p.status, p.skills, p.company, p.website, p.location, p.bio, p.github_username,
		       p.social_youtube, p.social_twitter, p.social_facebook, p.social_instagram, p.social_linkedin,
		       p.created_at, p.updated_at, u.name, u.avatar_url
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, params.PerPage, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		var p domain.Profile
		if err := scanProfileRow(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scan profile row: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate profile rows: %w", err)
	}

	return profiles, total, nil
}

// DeleteByUserID removes the user's profile. Experience and education rows
// go with it via ON DELETE CASCADE.
func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// AddExperience appends a work history entry to the profile.
func (r *ProfileRepository) AddExperience(ctx context.Context, profileID string, exp *domain.Experience) error {
	query := `
		INSERT INTO profile_experience (id, profile_id, title, company, location, from_date, to_date, current, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		exp.ID,
		profileID,
		exp.Title,
		exp.Company,
		exp.Location,
		exp.From,
		exp.To,
		exp.Current,
		exp.Description,
		exp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert experience: %w", err)
	}

	return nil
}

// DeleteExperience removes an experience entry owned by the profile.
func (r *ProfileRepository) DeleteExperience(ctx context.Context, profileID, experienceID string) error {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM profile_experience WHERE id = $1 AND profile_id = $2`,
		experienceID, profileID,
	)
	if err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("experience", experienceID)
	}

	return nil
}

// AddEducation appends a schooling entry to the profile.
func (r *ProfileRepository) AddEducation(ctx context.Context, profileID string, edu *domain.Education) error {
	query := `
		INSERT INTO profile_education (id, profile_id, school, degree, field_of_study, from_date, to_date, current, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		edu.ID,
		profileID,
		edu.School,
		edu.Degree,
		edu.FieldOfStudy,
		edu.From,
		edu.To,
		edu.Current,
		edu.Description,
		edu.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert education: %w", err)
	}

	return nil
}

// DeleteEducation removes an education entry owned by the profile.
func (r *ProfileRepository) DeleteEducation(ctx context.Context, profileID, educationID string) error {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM profile_education WHERE id = $1 AND profile_id = $2`,
		educationID, profileID,
	)
	if err != nil {
		return fmt.Errorf("delete education: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("education", educationID)
	}

	return nil
}

// --- scan helpers ---

func (r *ProfileRepository) scanProfile(ctx context.Context, query string, args ...any) (*domain.Profile, error) {
	var p domain.Profile
	if err := scanProfileRow(r.db.QueryRow(ctx, query, args...), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}

// scanProfileRow scans the 18 columns every profile query selects.
func scanProfileRow(row pgx.Row, p *domain.Profile) error {
	return row.Scan(
		&p.ID,
		&p.UserID,
		&p.Status,
		&p.Skills,
		&p.Company,
		&p.Website,
		&p.Location,
		&p.Bio,
		&p.GithubUsername,
		&p.Social.Youtube,
		&p.Social.Twitter,
		&p.Social.Facebook,
		&p.Social.Instagram,
		&p.Social.Linkedin,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.UserName,
		&p.UserAvatarURL,
	)
}

func (r *ProfileRepository) listExperience(ctx context.Context, profileID string) ([]domain.Experience, error) {
	query := `
		SELECT id, profile_id, title, company, location, from_date, to_date, current, description, created_at
		FROM profile_experience
		WHERE profile_id = $1
		ORDER BY from_date DESC`

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("list experience: %w", err)
	}
	defer rows.Close()

	entries := []domain.Experience{}
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(
			&e.ID, &e.ProfileID, &e.Title, &e.Company, &e.Location,
			&e.From, &e.To, &e.Current, &e.Description, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan experience row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate experience rows: %w", err)
	}

	return entries, nil
}

func (r *ProfileRepository) listEducation(ctx context.Context, profileID string) ([]domain.Education, error) {
	query := `
		SELECT id, profile_id, school, degree, field_of_study, from_date, to_date, current, description, created_at
		FROM profile_education
		WHERE profile_id = $1
		ORDER BY from_date DESC`

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("list education: %w", err)
	}
	defer rows.Close()

	entries := []domain.Education{}
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(
			&e.ID, &e.ProfileID, &e.School, &e.Degree, &e.FieldOfStudy,
			&e.From, &e.To, &e.Current, &e.Description, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan education row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate education rows: %w", err)
	}

	return entries, nil
}

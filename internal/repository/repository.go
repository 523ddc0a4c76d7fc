package repository

import (
	"context"

	"github.com/devconnector/devconnector/internal/domain"
	"github.com/devconnector/devconnector/pkg/pagination"
)

// UserRepository is the credential store contract the auth core depends on.
// It is deliberately narrow so the core carries no storage technology.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Delete removes a user from the store by their identifier.
	Delete(ctx context.Context, id string) error
}

// ProfileRepository defines persistence for developer profiles and their
// experience/education entries.
type ProfileRepository interface {
	// Upsert creates the profile for p.UserID or replaces its fields if one
	// already exists, keeping experience and education intact.
	Upsert(ctx context.Context, p *domain.Profile) error

	// GetByUserID retrieves the full profile (with experience and education)
	// for the given user.
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)

	// List returns profiles joined with owner name/avatar, newest first.
	List(ctx context.Context, params pagination.Params) ([]domain.Profile, int, error)

	// DeleteByUserID removes the user's profile and its child entries.
	DeleteByUserID(ctx context.Context, userID string) error

	// AddExperience appends a work history entry to the profile.
	AddExperience(ctx context.Context, profileID string, exp *domain.Experience) error

	// DeleteExperience removes an experience entry owned by the profile.
	DeleteExperience(ctx context.Context, profileID, experienceID string) error

	// AddEducation appends a schooling entry to the profile.
	AddEducation(ctx context.Context, profileID string, edu *domain.Education) error

	// DeleteEducation removes an education entry owned by the profile.
	DeleteEducation(ctx context.Context, profileID, educationID string) error
}

// PostRepository defines persistence for feed posts, likes, and comments.
type PostRepository interface {
	// Create inserts a new post.
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post with author fields, like user ids, and comments.
	GetByID(ctx context.Context, id string) (*domain.Post, error)

	// List returns posts with author fields and like counts, newest first.
	List(ctx context.Context, params pagination.Params) ([]domain.Post, int, error)

	// Delete removes a post and its likes and comments.
	Delete(ctx context.Context, id string) error

	// DeleteByAuthor removes all posts (with likes and comments) by a user.
	DeleteByAuthor(ctx context.Context, authorID string) error

	// AddLike records that userID likes the post. Returns
	// errors.ErrAlreadyExists if the like is already present.
	AddLike(ctx context.Context, postID, userID string) error

	// RemoveLike removes userID's like from the post. Returns
	// errors.ErrNotFound if no such like exists.
	RemoveLike(ctx context.Context, postID, userID string) error

	// AddComment appends a comment to the post.
	AddComment(ctx context.Context, comment *domain.Comment) error

	// GetComment retrieves a single comment by id.
	GetComment(ctx context.Context, commentID string) (*domain.Comment, error)

	// DeleteComment removes a comment from a post.
	DeleteComment(ctx context.Context, postID, commentID string) error
}

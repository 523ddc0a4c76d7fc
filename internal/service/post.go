package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/devconnector/devconnector/internal/domain"
	"github.com/devconnector/devconnector/internal/event"
	"github.com/devconnector/devconnector/internal/repository"
	apperrors "github.com/devconnector/devconnector/pkg/errors"
	"github.com/devconnector/devconnector/pkg/pagination"
)

// PostService implements the discussion feed: posts, likes, and comments.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewPostService creates a new post service.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		producer: producer,
		logger:   logger,
	}
}

// Create publishes a new post authored by the caller.
func (s *PostService) Create(ctx context.Context, authorID, text string) (*domain.Post, error) {
	if text == "" {
		return nil, apperrors.InvalidInput("text is required")
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("get post author: %w", err)
	}

	post := &domain.Post{
		ID:        uuid.New().String(),
		AuthorID:  author.ID,
		Text:      text,
		CreatedAt: time.Now().UTC(),

		AuthorName:      author.Name,
		AuthorAvatarURL: author.AvatarURL,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := s.producer.PublishPostCreated(ctx, post); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish post.created event",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "post created",
		slog.String("post_id", post.ID),
		slog.String("author_id", author.ID),
	)

	return post, nil
}

// GetByID returns a single post with its likes and comments.
func (s *PostService) GetByID(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

// List returns a page of posts, newest first.
func (s *PostService) List(ctx context.Context, params pagination.Params) (pagination.Result[domain.Post], error) {
	posts, total, err := s.postRepo.List(ctx, params)
	if err != nil {
		return pagination.Result[domain.Post]{}, fmt.Errorf("list posts: %w", err)
	}
	return pagination.NewResult(posts, total, params), nil
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, postID, callerID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("get post for delete: %w", err)
	}

	if post.AuthorID != callerID {
		return apperrors.Forbidden("only the author can delete a post")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	s.logger.InfoContext(ctx, "post deleted",
		slog.String("post_id", postID),
		slog.String("author_id", callerID),
	)

	return nil
}

// Like records the caller's like on a post. Liking a post twice is a
// conflict, not a no-op.
func (s *PostService) Like(ctx context.Context, postID, userID string) (*domain.Post, error) {
	// Ensure the post exists first so a missing post surfaces as 404
	// rather than a foreign key error or a bogus conflict.
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("get post for like: %w", err)
	}

	if err := s.postRepo.AddLike(ctx, postID, userID); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.Conflict("post already liked")
		}
		return nil, fmt.Errorf("like post: %w", err)
	}
	return s.GetByID(ctx, postID)
}

// Unlike removes the caller's like from a post. Unliking a post that was
// never liked is a conflict.
func (s *PostService) Unlike(ctx context.Context, postID, userID string) (*domain.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("get post for unlike: %w", err)
	}

	if err := s.postRepo.RemoveLike(ctx, postID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Conflict("post has not been liked")
		}
		return nil, fmt.Errorf("unlike post: %w", err)
	}
	return s.GetByID(ctx, postID)
}

// AddComment attaches a comment by the caller to a post.
func (s *PostService) AddComment(ctx context.Context, postID, authorID, text string) (*domain.Post, error) {
	if text == "" {
		return nil, apperrors.InvalidInput("text is required")
	}

	// Ensure the post exists before writing the child row so a missing
	// post surfaces as 404 rather than a foreign key error.
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("get post for comment: %w", err)
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("get comment author: %w", err)
	}

	comment := &domain.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  author.ID,
		Text:      text,
		CreatedAt: time.Now().UTC(),

		AuthorName:      author.Name,
		AuthorAvatarURL: author.AvatarURL,
	}

	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	return s.GetByID(ctx, postID)
}

// DeleteComment removes a comment. Only the comment's author may delete it.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, callerID string) (*domain.Post, error) {
	comment, err := s.postRepo.GetComment(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("get comment for delete: %w", err)
	}

	if comment.PostID != postID {
		return nil, apperrors.NotFound("comment", commentID)
	}
	if comment.AuthorID != callerID {
		return nil, apperrors.Forbidden("only the author can delete a comment")
	}

	if err := s.postRepo.DeleteComment(ctx, postID, commentID); err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}

	return s.GetByID(ctx, postID)
}

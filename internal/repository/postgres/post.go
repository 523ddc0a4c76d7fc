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

// PostRepository implements repository.PostRepository using PostgreSQL.
// Likes and comments live in child tables; author name/avatar are joined
// from users at read time.
type PostRepository struct {
	db DBTX
}

// NewPostRepository creates a new PostgreSQL-backed post repository.
func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	query := `
		INSERT INTO posts (id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, p.ID, p.AuthorID, p.Text, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

// GetByID retrieves a post with author fields, like user ids, and comments.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query := `
		SELECT p.id, p.author_id, p.text, p.created_at, u.name, u.avatar_url
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`

	var p domain.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.AuthorID,
		&p.Text,
		&p.CreatedAt,
		&p.AuthorName,
		&p.AuthorAvatarURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}

	if p.Likes, err = r.listLikes(ctx, id); err != nil {
		return nil, err
	}
	p.LikeCount = len(p.Likes)

	if p.Comments, err = r.listComments(ctx, id); err != nil {
		return nil, err
	}

	return &p, nil
}

// List returns posts with author fields and like counts, newest first.
func (r *PostRepository) List(ctx context.Context, params pagination.Params) ([]domain.Post, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	query := `
		SELECT p.id, p.author_id, p.text, p.created_at, u.name, u.avatar_url,
		       (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id) AS like_count
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, params.PerPage, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(
			&p.ID, &p.AuthorID, &p.Text, &p.CreatedAt,
			&p.AuthorName, &p.AuthorAvatarURL, &p.LikeCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan post row: %w", err)
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate post rows: %w", err)
	}

	return posts, total, nil
}

// Delete removes a post. Likes and comments cascade.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("post", id)
	}

	return nil
}

// DeleteByAuthor removes everything a user contributed to the feed: their
// posts (likes/comments on them cascade), plus their likes and comments on
// other users' posts. Runs in one transaction so an account deletion never
// leaves partial feed state.
func (r *PostRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM post_likes WHERE user_id = $1`, authorID); err != nil {
		return fmt.Errorf("delete likes by user: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM post_comments WHERE author_id = $1`, authorID); err != nil {
		return fmt.Errorf("delete comments by user: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE author_id = $1`, authorID); err != nil {
		return fmt.Errorf("delete posts by author: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// AddLike records that userID likes the post. A user likes a post at most
// once; a repeat like returns ErrAlreadyExists.
func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) error {
	query := `
		INSERT INTO post_likes (post_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (post_id, user_id) DO NOTHING`

	ct, err := r.db.Exec(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("insert like: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.ErrAlreadyExists
	}

	return nil
}

// RemoveLike removes userID's like from the post.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`,
		postID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// AddComment appends a comment to the post.
func (r *PostRepository) AddComment(ctx context.Context, c *domain.Comment) error {
	query := `
		INSERT INTO post_comments (id, post_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, c.ID, c.PostID, c.AuthorID, c.Text, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

// GetComment retrieves a single comment by id.
func (r *PostRepository) GetComment(ctx context.Context, commentID string) (*domain.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.text, c.created_at, u.name, u.avatar_url
		FROM post_comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1`

	var c domain.Comment
	err := r.db.QueryRow(ctx, query, commentID).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt,
		&c.AuthorName, &c.AuthorAvatarURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan comment: %w", err)
	}

	return &c, nil
}

// DeleteComment removes a comment from a post.
func (r *PostRepository) DeleteComment(ctx context.Context, postID, commentID string) error {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM post_comments WHERE id = $1 AND post_id = $2`,
		commentID, postID,
	)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("comment", commentID)
	}

	return nil
}

// --- child row helpers ---

func (r *PostRepository) listLikes(ctx context.Context, postID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM post_likes WHERE post_id = $1 ORDER BY created_at`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	likes := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan like row: %w", err)
		}
		likes = append(likes, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate like rows: %w", err)
	}

	return likes, nil
}

func (r *PostRepository) listComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.text, c.created_at, u.name, u.avatar_url
		FROM post_comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt,
			&c.AuthorName, &c.AuthorAvatarURL,
		); err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}

	return comments, nil
}

package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/devconnector/devconnector/internal/domain"
	pkgkafka "github.com/devconnector/devconnector/pkg/kafka"
)

// Kafka topic constants for devconnector domain events.
const (
	TopicUserRegistered = "devconnector.user.registered"
	TopicUserDeleted    = "devconnector.user.deleted"
	TopicPostCreated    = "devconnector.post.created"
)

// Aggregate type constants.
const (
	AggregateTypeUser = "user"
	AggregateTypePost = "post"
)

// Source identifier for events originating from this service.
const Source = "devconnector"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// UserDeletedData is the payload for a user.deleted event.
type UserDeletedData struct {
	UserID string `json:"user_id"`
}

// PostCreatedData is the payload for a post.created event.
type PostCreatedData struct {
	ID       string `json:"id"`
	AuthorID string `json:"author_id"`
	Text     string `json:"text"`
}

// Producer publishes devconnector domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, AggregateTypeUser, Source, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// PublishUserDeleted publishes a user.deleted event.
func (p *Producer) PublishUserDeleted(ctx context.Context, userID string) error {
	data := UserDeletedData{UserID: userID}

	event, err := pkgkafka.NewEvent(TopicUserDeleted, userID, AggregateTypeUser, Source, data)
	if err != nil {
		return fmt.Errorf("create user.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserDeleted, event); err != nil {
		return fmt.Errorf("publish user.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.deleted event",
		slog.String("user_id", userID),
	)

	return nil
}

// PublishPostCreated publishes a post.created event.
func (p *Producer) PublishPostCreated(ctx context.Context, post *domain.Post) error {
	data := PostCreatedData{
		ID:       post.ID,
		AuthorID: post.AuthorID,
		Text:     post.Text,
	}

	event, err := pkgkafka.NewEvent(TopicPostCreated, post.ID, AggregateTypePost, Source, data)
	if err != nil {
		return fmt.Errorf("create post.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicPostCreated, event); err != nil {
		return fmt.Errorf("publish post.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published post.created event",
		slog.String("post_id", post.ID),
		slog.String("author_id", post.AuthorID),
	)

	return nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rkormilcyn/portfolio/internal/apperror"
	"github.com/rkormilcyn/portfolio/internal/model"
	"github.com/rkormilcyn/portfolio/internal/repository"
)

const (
	DefaultCommentLimit = 20
	MaxCommentLimit     = 100
	MaxCommentLength    = 10000
)

// CommentService handles the comment board's business rules.
type CommentService struct {
	repo   repository.CommentRepository
	logger *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(repo repository.CommentRepository, logger *slog.Logger) *CommentService {
	return &CommentService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and appends a comment authored by the given user.
//
// The author comes from the caller, which resolved it from the active
// session — never from the request body. A nil author means the operation
// was attempted without a session and fails before anything is persisted.
//
// The body is trimmed first; an empty or whitespace-only body is rejected
// with a validation error and nothing is written.
func (s *CommentService) Create(ctx context.Context, author *model.User, body string) (*model.Comment, error) {
	if author == nil {
		return nil, apperror.Unauthenticated()
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperror.ValidationFailed("body", "Comment is empty")
	}
	if len(body) > MaxCommentLength {
		return nil, apperror.ValidationFailed("body",
			fmt.Sprintf("comment must be %d characters or less", MaxCommentLength))
	}

	comment := &model.Comment{
		Body:   body,
		UserID: author.ID,
		// Denormalized author fields for rendering the fresh comment
		// without re-querying.
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
	}

	if err := s.repo.CreateComment(ctx, comment); err != nil {
		s.logger.Error("failed to create comment",
			slog.String("userID", author.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.logger.Info("comment created",
		slog.String("id", comment.ID),
		slog.String("userID", author.ID),
	)

	return comment, nil
}

// List returns the newest comments, at most limit of them, newest first.
// The limit is clamped to a sane range.
func (s *CommentService) List(ctx context.Context, limit int) ([]model.Comment, error) {
	if limit <= 0 {
		limit = DefaultCommentLimit
	}
	if limit > MaxCommentLimit {
		limit = MaxCommentLimit
	}

	comments, err := s.repo.ListComments(ctx, repository.ListOptions{Limit: limit})
	if err != nil {
		s.logger.Error("failed to list comments", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	return comments, nil
}

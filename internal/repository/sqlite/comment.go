package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/rkormilcyn/portfolio/internal/model"
	"github.com/rkormilcyn/portfolio/internal/repository"
)

var _ repository.CommentRepository = (*DB)(nil)

// CreateComment appends a comment to the board. The id and timestamp are
// assigned here; the caller's struct is updated in place.
func (db *DB) CreateComment(ctx context.Context, comment *model.Comment) error {
	comment.ID = xid.New().String()
	comment.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO comments (id, body, user_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		comment.ID,
		comment.Body,
		comment.UserID,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating comment: %w", err)
	}

	return nil
}

// ListComments returns comments newest first, joined with their author's
// current display fields.
//
// Ordering is created_at DESC with id DESC as the tie-break: xid values
// sort by creation time, so equal timestamps still come out most recently
// created first, deterministically.
func (db *DB) ListComments(ctx context.Context, opts repository.ListOptions) ([]model.Comment, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT c.id, c.body, c.user_id, c.created_at, u.name, u.avatar
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 ORDER BY c.created_at DESC, c.id DESC
		 LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0, limit)

	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(
			&c.ID, &c.Body, &c.UserID, &c.CreatedAt,
			&c.AuthorName, &c.AuthorAvatar,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return comments, nil
}

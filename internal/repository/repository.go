// Package repository defines the storage interfaces the service layer
// depends on. The sqlite subpackage implements them; tests substitute fakes.
package repository

import (
	"context"

	"github.com/rkormilcyn/portfolio/internal/model"
)

// ListOptions bounds list queries.
type ListOptions struct {
	Limit  int
	Offset int
}

// UserRepository persists local identities.
//
// The identity key is (provider, provider id) — immutable, exact-match,
// unique. Upsert is the only write path: first login inserts, repeat logins
// overwrite the mutable display fields. The store must enforce the
// uniqueness itself so two concurrent first logins cannot create two rows.
type UserRepository interface {
	Upsert(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByIdentity(ctx context.Context, provider, providerID string) (*model.User, error)
}

// CommentRepository persists the append-only comment board.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	ListComments(ctx context.Context, opts ListOptions) ([]model.Comment, error)
}

// ProjectRepository reads the seeded project list.
type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	SeedProjects(ctx context.Context, projects []model.Project) error
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rkormilcyn/portfolio/internal/model"
	"github.com/rkormilcyn/portfolio/internal/repository"
)

// defaultProjects is the sample portfolio content inserted on first run.
var defaultProjects = []model.Project{
	{
		Name:        "Miminet Packet Filters",
		Description: "Network animation filters for Miminet platform.",
		RepoURL:     "https://github.com/mimi-net/miminet/pull/349",
	},
	{
		Name:        "Graphs-Graphs",
		Description: "Desktop app for graph analysis.",
		RepoURL:     "https://github.com/spbu-coding-2024/graphs-graphs-team-6",
	},
	{
		Name:        "LES",
		Description: "Library that provides Binary search, AVL and Red-black trees for Kotlin.",
		RepoURL:     "https://github.com/spbu-coding-2024/trees-trees-team-4",
	},
}

// ProjectService serves the static project list shown on the index page.
type ProjectService struct {
	repo   repository.ProjectRepository
	logger *slog.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(repo repository.ProjectRepository, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		repo:   repo,
		logger: logger,
	}
}

// Seed populates the sample projects if the table is empty. Called once at
// startup; a no-op on every restart after the first.
func (s *ProjectService) Seed(ctx context.Context) error {
	if err := s.repo.SeedProjects(ctx, defaultProjects); err != nil {
		return fmt.Errorf("seeding projects: %w", err)
	}
	return nil
}

// List returns all projects.
func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		s.logger.Error("failed to list projects", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

package sqlite

import (
	"context"
	"fmt"

	"github.com/rkormilcyn/portfolio/internal/model"
	"github.com/rkormilcyn/portfolio/internal/repository"
)

var _ repository.ProjectRepository = (*DB)(nil)

// ListProjects returns the full project list in insertion order.
func (db *DB) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, repo_url FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.RepoURL); err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating projects: %w", err)
	}

	return projects, nil
}

// SeedProjects inserts the sample projects once. If the table already has
// rows the call is a no-op, so re-running at every startup is safe.
func (db *DB) SeedProjects(ctx context.Context, projects []model.Project) error {
	var count int
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return fmt.Errorf("sqlite: counting projects: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, p := range projects {
		if _, err := db.conn.ExecContext(ctx,
			`INSERT INTO projects (name, description, repo_url) VALUES (?, ?, ?)`,
			p.Name, p.Description, p.RepoURL,
		); err != nil {
			return fmt.Errorf("sqlite: seeding project %q: %w", p.Name, err)
		}
	}

	return nil
}

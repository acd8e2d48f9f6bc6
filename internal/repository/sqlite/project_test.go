package sqlite

import (
	"context"
	"testing"

	"github.com/rkormilcyn/portfolio/internal/model"
)

var sampleProjects = []model.Project{
	{Name: "one", Description: "first", RepoURL: "https://example.com/one"},
	{Name: "two", Description: "second", RepoURL: "https://example.com/two"},
}

func TestProjectSeedAndList(t *testing.T) {
	db := newTestDB(t)

	if err := db.SeedProjects(context.Background(), sampleProjects); err != nil {
		t.Fatalf("SeedProjects() error = %v", err)
	}

	projects, err := db.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(projects))
	}
	if projects[0].Name != "one" || projects[1].Name != "two" {
		t.Errorf("projects out of insertion order: %q, %q", projects[0].Name, projects[1].Name)
	}
}

func TestProjectSeed_Idempotent(t *testing.T) {
	db := newTestDB(t)

	if err := db.SeedProjects(context.Background(), sampleProjects); err != nil {
		t.Fatalf("first SeedProjects() error = %v", err)
	}
	// Second seed (as happens on every restart) must not duplicate rows.
	if err := db.SeedProjects(context.Background(), sampleProjects); err != nil {
		t.Fatalf("second SeedProjects() error = %v", err)
	}

	projects, err := db.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(projects) != 2 {
		t.Errorf("got %d projects after double seed, want 2", len(projects))
	}
}

package model

// Project is an entry in the portfolio's project list. The table is seeded
// once at startup and read-only at runtime.
type Project struct {
	ID          int64  `json:"id"          db:"id"`
	Name        string `json:"name"        db:"name"`
	Description string `json:"description" db:"description"`
	RepoURL     string `json:"repoUrl"     db:"repo_url"`
}

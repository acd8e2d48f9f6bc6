package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/rkormilcyn/portfolio/internal/auth"
	"github.com/rkormilcyn/portfolio/internal/model"
	"github.com/rkormilcyn/portfolio/internal/service"
)

// homeRecentComments is how many comments the index page embeds server-side.
// The /comments API serves more; this is just the initial render.
const homeRecentComments = 10

// PageConfig carries the display-only values the index template needs.
type PageConfig struct {
	Title           string
	YandexMetrikaID string
	GTMID           string
}

// HomeHandler renders the portfolio index page. Templates are parsed once
// at construction and reused on every request.
type HomeHandler struct {
	templates *template.Template
	projects  *service.ProjectService
	comments  *service.CommentService
	users     *service.AuthService
	page      PageConfig
	logger    *slog.Logger
}

// NewHomeHandler parses the page templates and creates a HomeHandler.
// base.html holds the layout; index.html fills its "content" block.
func NewHomeHandler(
	templateDir string,
	projects *service.ProjectService,
	comments *service.CommentService,
	users *service.AuthService,
	page PageConfig,
	logger *slog.Logger,
) (*HomeHandler, error) {
	tmpl, err := template.ParseFiles(
		filepath.Join(templateDir, "base.html"),
		filepath.Join(templateDir, "index.html"),
	)
	if err != nil {
		return nil, err
	}

	return &HomeHandler{
		templates: tmpl,
		projects:  projects,
		comments:  comments,
		users:     users,
		page:      page,
		logger:    logger,
	}, nil
}

// HandleIndex serves GET /. Runs behind OptionalAuth: a logged-in visitor
// gets their name and a logout link, everyone else gets the login buttons.
func (h *HomeHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		h.logger.Error("index: listing projects", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	comments, err := h.comments.List(r.Context(), homeRecentComments)
	if err != nil {
		h.logger.Error("index: listing comments", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Best effort: a stale session (user id that no longer resolves) just
	// renders the page anonymously.
	var currentUser *model.User
	if userID, ok := auth.UserIDFromContext(r.Context()); ok {
		if u, err := h.users.GetUserByID(r.Context(), userID); err == nil {
			currentUser = u
		}
	}

	rendered := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		rendered = append(rendered, renderComment(c))
	}

	data := map[string]any{
		"Title":           h.page.Title,
		"YandexMetrikaID": h.page.YandexMetrikaID,
		"GTMID":           h.page.GTMID,
		"Projects":        projects,
		"Comments":        rendered,
		"CurrentUser":     currentUser,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("index: rendering template", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

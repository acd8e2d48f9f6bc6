package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rkormilcyn/portfolio/internal/auth"
	"github.com/rkormilcyn/portfolio/internal/model"
	"github.com/rkormilcyn/portfolio/internal/service"
)

// CommentHandler serves the public comment board API.
type CommentHandler struct {
	comments *service.CommentService
	users    *service.AuthService
	logger   *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(comments *service.CommentService, users *service.AuthService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		users:    users,
		logger:   logger,
	}
}

// commentResponse is the wire shape of a comment:
//
//	{"id": "...", "body": "...", "author": "...", "created_at": "...", "avatar": "..."}
//
// created_at marshals as RFC 3339. The author field carries the display
// fallback: a user whose provider sent no name renders as "Anonymous" here,
// while the stored record keeps the empty string — the fallback is
// presentation, not data.
type commentResponse struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Avatar    string    `json:"avatar"`
}

func renderComment(c model.Comment) commentResponse {
	author := c.AuthorName
	if author == "" {
		author = "Anonymous"
	}
	return commentResponse{
		ID:        c.ID,
		Body:      c.Body,
		Author:    author,
		CreatedAt: c.CreatedAt,
		Avatar:    c.AuthorAvatar,
	}
}

// HandleList returns the newest 20 comments as a JSON array.
//
// HTTP: GET /comments — public, no session needed.
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.List(r.Context(), service.DefaultCommentLimit)
	if err != nil {
		h.logger.Error("failed to list comments", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, renderComment(c))
	}

	writeJSON(w, http.StatusOK, out)
}

// createCommentRequest is the POST /comments body. Only the text is taken
// from the client — authorship comes from the session.
type createCommentRequest struct {
	Body string `json:"body"`
}

// HandleCreate appends a comment authored by the session's user.
//
// HTTP: POST /comments — behind RequireAuth.
// Responses: 201 with the comment, 400 {"error":"Comment is empty"} for a
// blank body, 401 without a session (from the middleware).
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
		return
	}

	// Resolve the full user record once, here at the boundary; the service
	// receives the author explicitly.
	author, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("create comment: author lookup failed",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	comment, err := h.comments.Create(r.Context(), author, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, renderComment(*comment))
}

package model

import "time"

// Comment is a message left on the public comment board.
//
// Comments are append-only — there is no edit or delete path. UserID is the
// internal id of the author, stamped from the active session at creation
// time. It is never taken from the request body, so a client cannot post as
// somebody else.
type Comment struct {
	ID        string    `json:"id"        db:"id"`
	Body      string    `json:"body"      db:"body"`
	UserID    string    `json:"userId"    db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Author display fields, joined in by the repository when listing.
	// Not columns of the comments table.
	AuthorName   string `json:"-" db:"-"`
	AuthorAvatar string `json:"-" db:"-"`
}

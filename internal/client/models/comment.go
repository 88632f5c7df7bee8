package models

import "github.com/dmitrijs2005/prescreen/internal/timex"

// Comment is one message in an application's thread. Comments are never
// edited; the backend returns them newest first.
type Comment struct {
	ID            int64           `json:"id"`
	ApplicationID int64           `json:"applicationId"`
	AuthorName    string          `json:"authorName"`
	AuthorRole    Role            `json:"authorRole"`
	Message       string          `json:"message"`
	CreatedAt     timex.Timestamp `json:"createdAt"`
}

// IsMine reports whether the comment came from the viewer's side of the
// conversation: staff see staff messages as their own, applicants see
// applicant messages as theirs.
func (c Comment) IsMine(viewerIsStaff bool) bool {
	if viewerIsStaff {
		return c.AuthorRole == RoleStaff
	}
	return c.AuthorRole == RoleApplicant
}

// NewComment is the body of POST /applications/{id}/comments.
type NewComment struct {
	Message string `json:"message"`
}

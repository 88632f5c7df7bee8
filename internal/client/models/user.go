package models

// Role distinguishes applicants from bank staff.
type Role string

const (
	RoleApplicant Role = "APPLICANT"
	RoleStaff     Role = "STAFF"
)

// User is the identity returned by the backend on login.
// Username is the login ID issued at registration (e.g. APPLICANT-3).
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (u *User) IsStaff() bool {
	return u != nil && u.Role == RoleStaff
}

// SessionRecord is what gets persisted between runs: the bearer token and
// the user it was issued to.
type SessionRecord struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Complete reports whether both halves of the record are present.
func (r *SessionRecord) Complete() bool {
	return r != nil && r.Token != "" && r.User != nil
}

package domain

type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	// Verified is set by the identity/document-check subsystem. The booking
	// engine treats it as an opaque precondition for renting.
	Verified  bool   `json:"verified"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}

// Role identifies which side of a booking an actor is on.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleRenter Role = "RENTER"
	RoleAdmin  Role = "ADMIN"
)

// Actor is the authenticated party behind a lifecycle or signing call.
type Actor struct {
	UserID int64
	Admin  bool
}

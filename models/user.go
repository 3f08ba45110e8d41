package models

import "time"

// User roles.
const (
	RoleRecruiter = "recruiter"
	RoleCandidate = "candidate"
)

// Candidate advisory status values. These are a denormalized summary for the
// recruiter directory; the slot and meeting collections stay authoritative.
const (
	CandidateStatusAvailable = "available"
	CandidateStatusScheduled = "scheduled"
)

// User represents a recruiter or candidate account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	Status       string    `bson:"status,omitempty" json:"status,omitempty"` // candidates only
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"`
	// CalendarToken holds the serialized OAuth token for the connected
	// calendar account, empty until the user completes the connect flow.
	CalendarToken string    `bson:"calendar_token,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=recruiter candidate"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token and the public account view.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CandidateSummary is the directory row recruiters browse.
type CandidateSummary struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	AvailabilityStatus string    `json:"availability_status"`
	CreatedAt          time.Time `json:"created_at"`
}

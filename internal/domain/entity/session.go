package entity

import "github.com/google/uuid"

// Session is the authenticated identity carried by a request
type Session struct {
	UserID   uuid.UUID
	Username string
	Role     Role
	TokenID  string
}

package model

// Scope carries the identity of the user a unit of work belongs to.
type Scope struct {
	UserID   string
	Username string
	ChatID   int64
}

package domain

import "time"

// Admin is a back-office user who may create suggestions and whose id is
// attached to audit rows. Password handling and sessions live outside this
// service; PasswordHash is stored opaque.
type Admin struct {
	ID           int64
	EmailAddress string
	DisplayName  string
	FirstName    string
	LastName     string
	Username     string
	PasswordHash *string
	Role         string
	IsActive     bool
	DateCreated  time.Time
	DateUpdated  *time.Time
}

// Package models holds the plain data types persisted by the repositories.
package models

import "time"

// Identifiable is anything that can be bound to a session. The key must be
// stable for the lifetime of the account.
type Identifiable interface {
	SessionKey() int64
}

type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

func (u *User) SessionKey() int64 { return u.ID }

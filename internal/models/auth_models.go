package models

import "time"

// User is an operator account of the database credential store.
type User struct {
	ID           int64     `json:"id"`
	Usuario      string    `json:"usuario"`
	PasswordHash string    `json:"-"`
	Activo       bool      `json:"activo"`
	CreatedAt    time.Time `json:"created_at"`
}

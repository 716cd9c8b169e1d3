// Package models holds the server-side domain models and the request
// payloads parsed from the wire, with their validation rules.
package models

import "time"

// User is the credential record behind a marketplace account. PasswordHash
// and Salt change together on password change; nothing else about the
// record is mutated by this subsystem.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash []byte
	Salt         []byte
	Audience     string
	ServiceID    string
	CreatedAt    time.Time
}

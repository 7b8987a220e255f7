package model

import "time"

// Setting is one key-value configuration row. Public settings are
// readable without authentication; the rest require the admin role.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	IsPublic  bool      `json:"is_public"`
	UpdatedAt time.Time `json:"updated_at"`
}

package model

import "time"

// Server lifecycle statuses.
const (
	ServerProvisioning = "provisioning"
	ServerActive       = "active"
	ServerSuspended    = "suspended"
	ServerTerminated   = "terminated"
)

// Server is a provisioned hosting resource owned by a user.
type Server struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	PlanID    int64      `json:"plan_id"`
	Hostname  string     `json:"hostname"`
	IPAddress *string    `json:"ip_address,omitempty"`
	Region    string     `json:"region"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

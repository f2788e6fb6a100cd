package domain

// Role enumerates dashboard roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

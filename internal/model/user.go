package model

import "time"

// UserRole is the closed set of account roles.
type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleMerchant   UserRole = "merchant"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

// UserRoles lists every declared role.
var UserRoles = []UserRole{RoleCustomer, RoleMerchant, RoleAdmin, RoleSuperAdmin}

// User is a record of the `users` collection.
//
// Fields:
//
//	Email        – unique login address.
//	Name         – may be empty; the display name then falls back to the email local part.
//	Avatar       – optional avatar file name.
//	Role         – account role, gates the admin and merchant route groups.
//	Verified     – whether the address was verified.
//	PasswordHash – bcrypt hash. Never leaves the backend.
type User struct {
	Base
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Avatar       *string  `json:"avatar,omitempty"`
	Role         UserRole `json:"role"`
	Verified     bool     `json:"verified"`
	PasswordHash *string  `json:"password_hash,omitempty"`
}

// RefreshToken models an entry in the `refresh_tokens` table. The plain
// token is not stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    string     // refresh_tokens.user_id (users record id)
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}

package models

import "time"

// Role mirrors the role attribute managed by the external identity
// provider. This service never assigns roles, it only stores what the
// provider forwards.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCommander Role = "commander"
	RoleOperator  Role = "operator"
	RoleGuest     Role = "guest"
)

// User is the identity table owned by the external auth collaborator.
// Rows are mirrored in so commander/operator foreign keys resolve.
type User struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Role      Role      `gorm:"size:32;not null;default:guest" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// UserRef is the minimal identity projection embedded in mission rows.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role,omitempty"`
}

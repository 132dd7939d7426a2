package model

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID    string `gorm:"type:text;primaryKey" json:"id"`
	Email string `gorm:"type:text;not null;uniqueIndex" json:"email"`
	// Argon2id PHC string. Never serialized; read paths additionally blank
	// it before records leave the service layer.
	PasswordHash string `gorm:"column:password_hash;type:text;not null" json:"-"`
	Name         string `gorm:"type:text" json:"name,omitempty"`
	Role         string `gorm:"type:text;not null;default:user;index" json:"role"`

	CreatedAt   time.Time  `gorm:"autoCreateTime;not null;index" json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// User <-> Project
	Projects []Project `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string { return "users" }

// Sanitized returns a copy safe to hand to callers.
func (u User) Sanitized() *User {
	u.PasswordHash = ""
	return &u
}

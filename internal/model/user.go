package model

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// DefaultMannerTemp is the starting reputation score for new accounts
// (thermometer metaphor: a healthy 36.5 degrees).
const DefaultMannerTemp = 36.5

const (
	MannerTempMin = 0.0
	MannerTempMax = 99.0
)

type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"size:120;not null"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:uk_users_email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"`
	Phone        *string   `gorm:"size:32"`
	City         string    `gorm:"size:120;not null"`
	District     *string   `gorm:"size:120"`
	Image        *string   `gorm:"size:512"`
	Role         Role      `gorm:"size:32;not null;default:user"`
	MannerTemp   float64   `gorm:"column:manner_temp;not null;default:36.5"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role grants moderation powers.
func (r Role) IsStaff() bool {
	return r == RoleModerator || r == RoleAdmin
}

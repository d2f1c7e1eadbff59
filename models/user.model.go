package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                string    `gorm:"default:''"`
	Email               string    `gorm:"unique;not null"`
	Role                string    `gorm:"default:'USER'"` // USER, ADMIN
	Password            string    `gorm:"not null"`
	LastLogin           time.Time `gorm:"default:NULL"`
	FailedLoginAttempts int       `gorm:"default:0"`
	IsDeleted           bool      `gorm:"default:false"`
}

// IsAdmin reports whether the user carries the administrator role.
// Every policy decision in the learning core takes this as an explicit flag.
func (u *User) IsAdmin() bool {
	return u.Role == "ADMIN"
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/caixa-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User is an operator account. Nome and Matricula are printed on receipts
// and closing reports.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Nome      string         `gorm:"size:255;not null" json:"nome"`
	Matricula string         `gorm:"size:50;uniqueIndex;not null" json:"matricula"`
	Email     string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"size:255" json:"-"`
	Role      string         `gorm:"size:20;default:'operador'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Caixas []Caixa `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = enum.RoleOperador
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the operator has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == enum.RoleAdmin
}

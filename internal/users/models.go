package users

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username      *string   `json:"username,omitempty" gorm:"uniqueIndex;size:50"`
	Email         *string   `json:"email,omitempty" gorm:"uniqueIndex;size:255"`
	PasswordHash  string    `json:"-" gorm:"not null"`
	FullName      string    `json:"full_name" gorm:"not null;size:255"`
	Phone         string    `json:"phone,omitempty" gorm:"size:20"`
	Role          Role      `json:"role" gorm:"type:varchar(20);not null;default:'customer';index"`
	EmailVerified bool      `json:"email_verified" gorm:"default:false"`
	Status        Status    `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Response is the user shape returned by the API (no credentials).
type Response struct {
	ID            string    `json:"id"`
	Username      string    `json:"username,omitempty"`
	Email         string    `json:"email,omitempty"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone,omitempty"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *User) ToResponse() Response {
	resp := Response{
		ID:            u.ID.String(),
		FullName:      u.FullName,
		Phone:         u.Phone,
		Role:          string(u.Role),
		EmailVerified: u.EmailVerified,
		Status:        string(u.Status),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
	if u.Username != nil {
		resp.Username = *u.Username
	}
	if u.Email != nil {
		resp.Email = *u.Email
	}
	return resp
}

// UpdateProfileRequest is a partial update of the caller's own profile.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

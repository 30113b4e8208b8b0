// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email                string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash         string     `json:"-" gorm:"size:255;not null"`
	Name                 string     `json:"name,omitempty" gorm:"size:100"`
	Role                 UserRole   `json:"role" gorm:"type:varchar(20);not null;default:'buyer'"`
	ResetPasswordToken   *string    `json:"-" gorm:"size:128;index"`
	ResetPasswordExpires *time.Time `json:"-"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// EffectiveRole defaults rows created before roles existed to buyer.
func (u *User) EffectiveRole() UserRole {
	if u.Role == "" {
		return UserRoleBuyer
	}
	return u.Role
}

// UserInvitation is an address on the pre-launch notify list.
type UserInvitation struct {
	BaseModel
	Email string `json:"email" gorm:"uniqueIndex;size:255;not null"`
}

func (UserInvitation) TableName() string {
	return "user_invitations"
}

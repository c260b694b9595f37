package model

import (
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/SR0NAK/insurebharat/internal/model"
	"github.com/SR0NAK/insurebharat/internal/session"
)

type User struct {
	model.Model
	Email    string `json:"email" gorm:"uniqueIndex,not null"`
	Password []byte `json:"-" gorm:"not null"`
	Salt     string `json:"-" gorm:"not null"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`

	VerificationHash   string       `json:"-" gorm:"uniqueIndex,not null"`
	VerificationSentAt time.Time    `json:"-" gorm:"not null"`
	VerifiedAt         sql.NullTime `json:"verifiedAt"`
}

func (u User) MarshalJSON() ([]byte, error) {
	kv := make(map[string]interface{})

	kv["id"] = u.ID
	kv["email"] = u.Email
	kv["firstName"] = u.FirstName
	kv["lastName"] = u.LastName
	kv["phone"] = u.Phone
	kv["company"] = u.Company

	if u.VerifiedAt.Valid {
		kv["verifiedAt"] = u.VerifiedAt.Time
	}

	return json.Marshal(kv)
}

func (u User) IsVerified() bool {
	return u.VerifiedAt.Valid
}

func (u User) IsVerificationHashStale() bool {
	return time.Since(u.VerificationSentAt) > 30*time.Minute
}

func (u User) IsPassword(password []byte) bool {
	return subtle.ConstantTimeCompare(u.Password, password) == 1
}

func (u User) ToSessionUser() session.User {
	return session.User{
		ID:    u.ID,
		Email: u.Email,
		Profile: session.Profile{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Phone:     u.Phone,
			Company:   u.Company,
		},
	}
}

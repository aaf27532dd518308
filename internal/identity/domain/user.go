package domain

import (
	"time"
)

// User represents a registered account. Phone number is the login
// identifier; email is optional and only needed for rejection notices.
type User struct {
	ID                 string     `json:"id" db:"id"`
	PhoneNumber        string     `json:"phone_number" db:"phone_number"`
	FullName           string     `json:"full_name" db:"full_name"`
	Email              *string    `json:"email" db:"email"`
	PasswordHash       string     `json:"-" db:"password_hash"`
	IsAdmin            bool       `json:"-" db:"is_admin"`
	IsKYCVerified      bool       `json:"is_kyc_verified" db:"is_kyc_verified"`
	KYCRejectionReason string     `json:"kyc_rejection_reason" db:"kyc_rejection_reason"`
	DocumentKey        *string    `json:"document" db:"document_key"`
	ProfilePhotoKey    *string    `json:"profile_photo" db:"profile_photo_key"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
}

// VerificationState returns the user's KYC state as a tagged value.
func (u *User) VerificationState() VerificationState {
	return StateFromColumns(u.IsKYCVerified, u.KYCRejectionReason)
}

// SetVerificationState writes a tagged state back onto the two
// persisted columns.
func (u *User) SetVerificationState(s VerificationState) {
	u.IsKYCVerified, u.KYCRejectionReason = s.Columns()
}

// Profile is the wire shape returned by the profile and admin list
// endpoints.
type Profile struct {
	ID                 string  `json:"id"`
	FullName           string  `json:"full_name"`
	PhoneNumber        string  `json:"phone_number"`
	Email              *string `json:"email"`
	IsKYCVerified      bool    `json:"is_kyc_verified"`
	KYCRejectionReason string  `json:"kyc_rejection_reason"`
	ProfilePhoto       string  `json:"profile_photo"`
	Document           string  `json:"document"`
}

// ToProfile converts a user to its profile wire shape.
func (u *User) ToProfile() *Profile {
	p := &Profile{
		ID:                 u.ID,
		FullName:           u.FullName,
		PhoneNumber:        u.PhoneNumber,
		Email:              u.Email,
		IsKYCVerified:      u.IsKYCVerified,
		KYCRejectionReason: u.KYCRejectionReason,
	}
	if u.ProfilePhotoKey != nil {
		p.ProfilePhoto = *u.ProfilePhotoKey
	}
	if u.DocumentKey != nil {
		p.Document = *u.DocumentKey
	}
	return p
}

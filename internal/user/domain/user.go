package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// User is an employer account. Mobile verification is the second factor that gates login;
// email verification is tracked independently.
type User struct {
	ID               string
	Email            string
	PasswordHash     string `json:"-"`
	FullName         string
	Gender           Gender
	MobileNo         string
	IsMobileVerified bool
	IsEmailVerified  bool
	SignupType       SignupType
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Gender string

const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
	GenderOther  Gender = "o"
)

// Valid reports whether g is one of m, f, o.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type SignupType string

const SignupTypeEmail SignupType = "email-based"

var mobilePattern = regexp.MustCompile(`^\+[0-9]{8,15}$`)

var mobileSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// NormalizeEmail trims and lower-cases an email for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeMobile removes the separators people type inside phone numbers (space, '-', '(',
// ')', '.'). Any other character is kept so that ValidMobile rejects the value.
func NormalizeMobile(mobile string) string {
	return mobileSeparators.Replace(strings.TrimSpace(mobile))
}

// ValidMobile reports whether m is an E.164 number.
func ValidMobile(m string) bool {
	return mobilePattern.MatchString(m)
}

// Validate checks the fields required before a row is written.
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	if strings.TrimSpace(u.FullName) == "" {
		return errors.New("full name is required")
	}
	if !u.Gender.Valid() {
		return errors.New("gender must be one of m, f, o")
	}
	if !ValidMobile(u.MobileNo) {
		return errors.New("mobile number must be in E.164 format")
	}
	if u.SignupType == "" {
		u.SignupType = SignupTypeEmail
	}
	return nil
}

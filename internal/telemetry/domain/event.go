package domain

import "time"

// Event types emitted by the onboarding flows.
const (
	EventRegistrationCreated   = "registration.created"
	EventRegistrationRetried   = "registration.retried"
	EventMobileVerified        = "verification.mobile"
	EventMobileMismatch        = "verification.mobile_mismatch"
	EventEmailVerified         = "verification.email"
	EventLoginSucceeded        = "login.succeeded"
	EventCompanyProfileCreated = "company.profile_created"
	EventCompanyProfileUpdated = "company.profile_updated"
	EventCompanyImageUpdated   = "company.image_updated"
)

// Event is a best-effort business event. Attributes never carry secrets.
type Event struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	UserID     string            `json:"user_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

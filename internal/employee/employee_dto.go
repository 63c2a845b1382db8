package employee

type RegisterRequest struct {
	ID         string  `json:"id" binding:"required"`
	FullName   string  `json:"full_name" binding:"required"`
	Department string  `json:"department" binding:"required"`
	Section    *string `json:"section"`
}

// CredentialDisclosure is returned exactly once, at registration time.
// The derived credentials cannot be re-displayed afterwards.
type CredentialDisclosure struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

const (
	RegistrationStatusRegistered = "registered"
	RegistrationStatusPending    = "pending"
)

type RegisterResponse struct {
	Status      string                `json:"status"`
	Profile     ProfileResponse       `json:"profile"`
	Credentials *CredentialDisclosure `json:"credentials,omitempty"`
}

type ProfileResponse struct {
	ID                  string  `json:"id"`
	FullName            string  `json:"full_name"`
	Department          string  `json:"department"`
	Section             *string `json:"section,omitempty"`
	Role                string  `json:"role"`
	IsApproved          bool    `json:"is_approved"`
	PendingRegistration bool    `json:"pending_registration"`
}

// OptionResponse feeds filter dropdowns; cached in redis.
type OptionResponse struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Section  *string `json:"section,omitempty"`
	Role     string  `json:"role"`
}

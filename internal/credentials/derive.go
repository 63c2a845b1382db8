package credentials

import "strings"

// Known weakness, kept deliberately: login credentials are a deterministic,
// publicly derivable transform of the employee id. Operations relies on the
// scheme when onboarding, so it must not change without a migration plan.
const (
	emailDomain    = "@company.com"
	passwordSuffix = "@123"
)

func DeriveEmail(userID string) string {
	return strings.ToLower(userID) + emailDomain
}

func DeriveDefaultPassword(userID string) string {
	return userID + passwordSuffix
}

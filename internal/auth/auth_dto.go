package auth

type EmployeeSignInRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type ManagerLoginRequest struct {
	ManagerID string `json:"manager_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type CodeLoginRequest struct {
	AccessCode string `json:"access_code" binding:"required"`
}

type SwitchViewRequest struct {
	View string `json:"view" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	View        string  `json:"view"`
	Subject     string  `json:"subject"`
	Section     *string `json:"section,omitempty"`
	ExpiresIn   int64   `json:"expires_in"`
}

type AdminSetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

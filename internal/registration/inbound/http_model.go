package inbound

import "time"

type RegisterRequest struct {
	FullName             string `json:"full_name"`
	Mobile               string `json:"mobile"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type RegisterResponse struct {
	Token string `json:"token"`
}

func (RegisterResponse) Message() string {
	return "A verification code has been sent to your mobile number."
}

type RegisterVerifyRequest struct {
	Token string `json:"token"`
	Otp   string `json:"otp"`
}

type RegisterVerifyResponse struct {
	AccessToken string `json:"access_token"`
}

func (RegisterVerifyResponse) Message() string {
	return "Your mobile number has been verified."
}

type RegisterResendRequest struct {
	Mobile string `json:"mobile"`
}

type RegisterResendResponse struct {
	Token string `json:"token,omitempty"`
}

func (RegisterResendResponse) Message() string {
	return "If the mobile number is registered, a new verification code has been sent."
}

type ProfileResponse struct {
	ID         int64      `json:"id,string"`
	Mobile     string     `json:"mobile"`
	FullName   string     `json:"full_name"`
	VerifiedAt *time.Time `json:"verified_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

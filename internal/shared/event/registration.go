package event

const OtpIssuedSubject string = "registration_otp_issued"
const OtpIssuedConsumerAudit string = "registration_otp_issued_audit"

// OtpIssuedMessage deliberately omits the challenge token and code: both
// are live credentials and no consumer needs them.
type OtpIssuedMessage struct {
	AccountID int64  `json:"account_id"`
	Mobile    string `json:"mobile"`
	Purpose   string `json:"purpose"`
}

const AccountVerifiedSubject string = "registration_account_verified"
const AccountVerifiedConsumerAudit string = "registration_account_verified_audit"

type AccountVerifiedMessage struct {
	AccountID int64  `json:"account_id"`
	Mobile    string `json:"mobile"`
	FullName  string `json:"full_name"`
}

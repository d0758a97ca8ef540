package entity

// OtpPurpose identifies the flow a passcode belongs to. A passcode issued
// for one purpose can never be consumed by another.
type OtpPurpose int16

const (
	// OtpPurposeUnknown is mean purpose is not known / not set.
	OtpPurposeUnknown OtpPurpose = 0

	// OtpPurposeRegistration mean the passcode verifies a new account's mobile.
	OtpPurposeRegistration OtpPurpose = 1

	// OtpPurposeLogin mean the passcode authenticates an existing account.
	OtpPurposeLogin OtpPurpose = 2
)

func (p OtpPurpose) String() string {
	switch p {
	case OtpPurposeRegistration:
		return "Registration"
	case OtpPurposeLogin:
		return "Login"
	default:
		return "Unknown"
	}
}

// OtpChannel identifies the delivery medium of a passcode.
type OtpChannel int16

const (
	// OtpChannelUnknown is mean channel is not known / not set.
	OtpChannelUnknown OtpChannel = 0

	// OtpChannelSMS mean delivery over SMS to a mobile number.
	OtpChannelSMS OtpChannel = 1
)

func (c OtpChannel) String() string {
	switch c {
	case OtpChannelSMS:
		return "SMS"
	default:
		return "Unknown"
	}
}

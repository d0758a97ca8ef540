package validator

import (
	"errors"
	"strings"
	"testing"
)

type registerForm struct {
	FullName             string `validate:"required,min=3,max=100"`
	Mobile               string `validate:"required,mobile"`
	Password             string `validate:"required,password"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`
}

func TestV10ValidatorValid(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	err = v.Validate(registerForm{
		FullName:             "Test User",
		Mobile:               "0912345678",
		Password:             "Secret123!",
		PasswordConfirmation: "Secret123!",
	})
	if err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestV10ValidatorMobileRule(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	tests := []struct {
		mobile string
		valid  bool
	}{
		{"0912345678", true},
		{"09123456789", true},
		{"0812345678", false}, // wrong trunk prefix
		{"091234567", false},  // too short
		{"09123a5678", false}, // non-digit
		{"+989123456789", false},
	}

	for _, tc := range tests {
		err := v.Validate(registerForm{
			FullName:             "Test User",
			Mobile:               tc.mobile,
			Password:             "Secret123!",
			PasswordConfirmation: "Secret123!",
		})

		if tc.valid && err != nil {
			t.Fatalf("mobile %q rejected: %v", tc.mobile, err)
		}
		if !tc.valid {
			var verr V10ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("mobile %q: err = %v, want V10ValidationError", tc.mobile, err)
			}
			if _, ok := verr["mobile"]; !ok {
				t.Fatalf("mobile %q: error not keyed by snake_case field: %v", tc.mobile, verr)
			}
		}
	}
}

func TestV10ValidatorPasswordRule(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	tests := []struct {
		password string
		valid    bool
	}{
		{"12345678", true},
		{strings.Repeat("a", 72), true},
		{"1234567", false},
		{strings.Repeat("a", 73), false},
	}

	for _, tc := range tests {
		err := v.Validate(registerForm{
			FullName:             "Test User",
			Mobile:               "0912345678",
			Password:             tc.password,
			PasswordConfirmation: tc.password,
		})

		if tc.valid && err != nil {
			t.Fatalf("password of length %d rejected: %v", len(tc.password), err)
		}
		if !tc.valid && err == nil {
			t.Fatalf("password of length %d accepted", len(tc.password))
		}
	}
}

func TestV10ValidatorFieldNamesAreSnakeCase(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	err = v.Validate(registerForm{
		FullName:             "Test User",
		Mobile:               "0912345678",
		Password:             "Secret123!",
		PasswordConfirmation: "Different1!",
	})

	var verr V10ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want V10ValidationError", err)
	}
	if _, ok := verr["password_confirmation"]; !ok {
		t.Fatalf("error map keys not snake_case: %v", verr)
	}
}

package validator

import (
	"strings"
	"testing"
)

type registerForm struct {
	Username string `validate:"required,max=50"`
	Password string `validate:"required,bcryptlen"`
	Role     string `validate:"required,role"`
}

func TestValidate_Role(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		role    string
		wantErr bool
	}{
		{"admin", false},
		{"doctor", false},
		{"user", false},
		{"superuser", true},
		{"ADMIN", true},
		{"", true},
	}

	for _, tt := range tests {
		err := v.Validate(&registerForm{Username: "alice", Password: "pw", Role: tt.role})
		if (err != nil) != tt.wantErr {
			t.Errorf("role %q: error = %v, wantErr %v", tt.role, err, tt.wantErr)
		}
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerForm{Role: "nurse"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	errs := v.FormatValidationErrors(err)
	if errs["Username"] != "Username is required" {
		t.Errorf("unexpected Username message: %q", errs["Username"])
	}
	if errs["Password"] != "Password is required" {
		t.Errorf("unexpected Password message: %q", errs["Password"])
	}
	if errs["Role"] != "Invalid role" {
		t.Errorf("unexpected Role message: %q", errs["Role"])
	}
}

func TestFormatValidationMessage_SortedByField(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerForm{Role: "nurse"})
	got := v.FormatValidationMessage(err)
	want := "Password is required; Invalid role; Username is required"
	if got != want {
		t.Errorf("FormatValidationMessage() = %q, want %q", got, want)
	}
}

func TestValidate_BcryptLen(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"ascii at limit", strings.Repeat("a", 72), false},
		{"ascii over limit", strings.Repeat("a", 73), true},
		{"multibyte under rune limit but over byte limit", strings.Repeat("é", 40), true},
		{"multibyte at byte limit", strings.Repeat("é", 36), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&registerForm{Username: "alice", Password: tt.password, Role: "user"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if got := v.FormatValidationMessage(err); got != "Password must be at most 72 bytes" {
					t.Errorf("message = %q", got)
				}
			}
		})
	}
}

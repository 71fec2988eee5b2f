package validation

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane.Doe@Example.com", "jane.doe@example.com"},
		{"  jane@example.com ", "jane@example.com"},
		{"Jane.Doe+grad@gmail.com", "jane.doe@gmail.com"},
		{"jane.doe@GoogleMail.com", "jane.doe@gmail.com"},
		{"jane+work@outlook.com", "jane@outlook.com"},
		{"jane+work@icloud.com", "jane@icloud.com"},
		{"jane-lists@yahoo.com", "jane@yahoo.com"},
		{"jane+tag@university.edu", "jane+tag@university.edu"},
		{"not-an-email", "not-an-email"},
		{"+only@gmail.com", "+only@gmail.com"},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Fatalf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsEmail(t *testing.T) {
	valid := []string{"a@example.com", "first.last@uni.ac.uk"}
	invalid := []string{"", "a", "a@", "@example.com", "a b@example.com"}

	for _, s := range valid {
		if !IsEmail(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range invalid {
		if IsEmail(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
	Note     string `json:"-" validate:"required"`
}

func TestStructUsesJSONNamesAndMessages(t *testing.T) {
	fields, err := Struct(&signup{Email: "nope", Password: "123", Note: "x"}, map[string]string{
		"email": "Email is not valid",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields["email"] != "Email is not valid" {
		t.Fatalf("expected custom email message, got %q", fields["email"])
	}
	if fields["password"] != "password must be at least 6 characters long" {
		t.Fatalf("expected default min message, got %q", fields["password"])
	}

	fields, err = Struct(&signup{Email: "a@example.com", Password: "123456", Note: "x"}, nil)
	if err != nil || fields != nil {
		t.Fatalf("expected valid struct, got %v %v", fields, err)
	}
}

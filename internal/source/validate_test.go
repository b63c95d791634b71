package source

import (
	"testing"
)

// TestValidatorFor tests rule compilation and the compiled checks
func TestValidatorFor(t *testing.T) {
	tests := []struct {
		name    string
		rule    string
		value   string
		wantErr bool
	}{
		{"Empty rule accepts anything", "", "anything at all", false},
		{"Empty rule accepts empty", "", "", false},
		{"Required: value", "required", "x", false},
		{"Required: blank", "required", "   ", true},
		{"URL: ws", "url:ws,wss", "ws://localhost:8765", false},
		{"URL: wss", "url:ws,wss", "wss://robot.example.com/ws", false},
		{"URL: scheme is case-insensitive", "url:ws,wss", "WS://localhost:8765", false},
		{"URL: wrong scheme", "url:ws,wss", "http://localhost:8765", true},
		{"URL: missing scheme", "url:ws,wss", "localhost:8765", true},
		{"URL: missing host", "url:ws,wss", "ws://", true},
		{"URL: empty", "url:http,https", "", true},
		{"Port: valid", "port", "2369", false},
		{"Port: max", "port", "65535", false},
		{"Port: zero", "port", "0", true},
		{"Port: too high", "port", "65536", true},
		{"Port: not a number", "port", "abc", true},
		{"Hostname: valid", "hostname", "robot.local", false},
		{"Hostname: empty", "hostname", "", true},
		{"Hostname: whitespace", "hostname", "my robot", true},
		{"Hostname: scheme", "hostname", "http://robot", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validate, err := ValidatorFor(tt.rule)
			if err != nil {
				t.Fatalf("ValidatorFor(%q) error = %v", tt.rule, err)
			}
			err = validate(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("Expected ValidationError, got %T", err)
			}
		})
	}
}

func TestValidatorFor_InvalidRules(t *testing.T) {
	for _, rule := range []string{"url", "url:", "url: , ", "email"} {
		_, err := ValidatorFor(rule)
		if err == nil {
			t.Errorf("ValidatorFor(%q) expected error", rule)
			continue
		}
		if !IsValidationError(err) {
			t.Errorf("ValidatorFor(%q) error type = %T, want *ValidationError", rule, err)
		}
	}
}

func TestValidateURL_Message(t *testing.T) {
	err := ValidateURL("http://x", []string{"ws", "wss"})
	if err == nil {
		t.Fatal("expected error")
	}
	want := "URL must start with ws:// or wss://"
	if got := UserMessage(err); got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(NewFieldError("url", "bad")); got != "bad" {
		t.Errorf("UserMessage(field error) = %q, want %q", got, "bad")
	}
	if got := NewFieldError("url", "bad").Error(); got != "url: bad" {
		t.Errorf("Error() = %q, want %q", got, "url: bad")
	}
}

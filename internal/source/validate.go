package source

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValidateFunc checks a single field value. It returns nil when the value is
// acceptable.
type ValidateFunc func(value string) error

// Validator rule names understood by ValidatorFor.
const (
	RuleRequired = "required"
	RuleURL      = "url"
	RulePort     = "port"
	RuleHostname = "hostname"
)

// ValidatorFor compiles a validator rule from a Field's Validate attribute.
//
// Supported rules:
//   - "" (no validation)
//   - "required": value must not be blank
//   - "url:ws,wss": absolute URL whose scheme is one of the listed schemes
//   - "port": integer in 1-65535
//   - "hostname": non-empty host name without whitespace or scheme
func ValidatorFor(rule string) (ValidateFunc, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(rule), ":")

	switch name {
	case "":
		return func(string) error { return nil }, nil

	case RuleRequired:
		return ValidateRequired, nil

	case RuleURL:
		var schemes []string
		for _, s := range strings.Split(arg, ",") {
			if s = strings.TrimSpace(s); s != "" {
				schemes = append(schemes, strings.ToLower(s))
			}
		}
		if len(schemes) == 0 {
			return nil, NewValidationError(fmt.Sprintf("url rule %q needs at least one scheme", rule))
		}
		return func(value string) error { return ValidateURL(value, schemes) }, nil

	case RulePort:
		return ValidatePort, nil

	case RuleHostname:
		return ValidateHostname, nil

	default:
		return nil, NewValidationError(fmt.Sprintf("unknown validator rule %q", rule))
	}
}

// ValidateRequired rejects blank values.
func ValidateRequired(value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError("Value is required")
	}
	return nil
}

// ValidateURL checks that value is an absolute URL using one of schemes.
func ValidateURL(value string, schemes []string) error {
	u, err := url.Parse(value)
	if err != nil || u.Host == "" || !containsScheme(schemes, u.Scheme) {
		prefixes := make([]string, len(schemes))
		for i, s := range schemes {
			prefixes[i] = s + "://"
		}
		return NewValidationError("URL must start with " + strings.Join(prefixes, " or "))
	}
	return nil
}

// ValidatePort checks that value is a TCP/UDP port number.
func ValidatePort(value string) error {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return NewValidationError(fmt.Sprintf("Port must be a number, got %q", value))
	}
	if port < 1 || port > 65535 {
		return NewValidationError(fmt.Sprintf("Port must be between 1-65535, got %d", port))
	}
	return nil
}

// ValidateHostname checks that value looks like a bare host name or address.
func ValidateHostname(value string) error {
	if value == "" {
		return NewValidationError("Hostname cannot be empty")
	}
	if strings.ContainsAny(value, " \t\r\n") {
		return NewValidationError("Hostname cannot contain whitespace")
	}
	if strings.Contains(value, "://") {
		return NewValidationError("Hostname should not include a scheme")
	}
	if len(value) > 253 {
		return NewValidationError(fmt.Sprintf("Hostname too long (max 253 chars): %d chars", len(value)))
	}
	return nil
}

func containsScheme(schemes []string, scheme string) bool {
	scheme = strings.ToLower(scheme)
	for _, s := range schemes {
		if s == scheme {
			return true
		}
	}
	return false
}

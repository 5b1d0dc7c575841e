package rules

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit"
)

// Phone number regex - international format with optional country code
var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// Email fails when the value is not a plausible email address for web use:
// it must parse per RFC 5322 and carry a dotted domain. Empty strings pass.
func Email() formkit.Rule[string] {
	return func(value string) formkit.Errors {
		if value == "" {
			return nil
		}
		if !isEmail(value) {
			return formkit.Errors{KeyEmail: true}
		}
		return nil
	}
}

func isEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// URL fails when the value is not an absolute http or https URL with a host.
// Empty strings pass.
func URL() formkit.Rule[string] {
	return func(value string) formkit.Errors {
		if value == "" {
			return nil
		}
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return formkit.Errors{KeyURL: true}
		}
		return nil
	}
}

// Phone fails when the value is not an E.164-style phone number. Empty
// strings pass.
func Phone() formkit.Rule[string] {
	return func(value string) formkit.Errors {
		if value == "" {
			return nil
		}
		if !phoneRegex.MatchString(value) {
			return formkit.Errors{KeyPhone: true}
		}
		return nil
	}
}

// UUID fails when the value is not a parseable UUID. Empty strings pass.
func UUID() formkit.Rule[string] {
	return func(value string) formkit.Errors {
		if value == "" {
			return nil
		}
		if _, err := uuid.Parse(value); err != nil {
			return formkit.Errors{KeyUUID: true}
		}
		return nil
	}
}

// IP fails when the value is neither an IPv4 nor an IPv6 address. Empty
// strings pass.
func IP() formkit.Rule[string] {
	return func(value string) formkit.Errors {
		if value == "" {
			return nil
		}
		if net.ParseIP(value) == nil {
			return formkit.Errors{KeyIP: true}
		}
		return nil
	}
}

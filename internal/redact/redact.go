// Package redact removes secrets from strings before they are logged, returned
// in API responses, or written into card content. The generative backend takes
// its API key as a URL query parameter, so transport errors routinely echo the
// key back; every such message must pass through this package first.
package redact

import (
	"regexp"
	"strings"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// Precompiled regex patterns
var (
	// Database connection strings
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database)://[^@\s]+@`)

	// key=... query parameters as sent to the generateContent endpoint
	queryKeyRegex = regexp.MustCompile(`([?&](?:key|api_key|apikey)=)[^&\s"':]+`)

	// Google API keys
	googleKeyRegex = regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`)

	// Credentials and tokens in key/value form
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	rules = []struct {
		pattern     *regexp.Regexp
		replacement string
	}{
		{dbConnRegex, RedactedCredentialPlaceholder},
		{queryKeyRegex, "${1}" + RedactedKeyPlaceholder},
		{googleKeyRegex, RedactedKeyPlaceholder},
		{apiKeyRegex, RedactedKeyPlaceholder},
		{passwordRegex, RedactedCredentialPlaceholder},
		{jwtTokenRegex, "[REDACTED_JWT]"},
	}
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, rule := range rules {
		result = rule.pattern.ReplaceAllString(result, rule.replacement)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// QueryKey redacts only key-style query parameters. Text meant for the user,
// such as a backend diagnostic, goes through this instead of String so that
// ordinary words are left alone.
func QueryKey(input string) string {
	return queryKeyRegex.ReplaceAllString(input, "${1}"+RedactedKeyPlaceholder)
}

// Secret replaces every literal occurrence of secret in input with the key
// placeholder. An empty secret leaves input untouched.
func Secret(input, secret string) string {
	if secret == "" {
		return input
	}
	return strings.ReplaceAll(input, secret, RedactedKeyPlaceholder)
}

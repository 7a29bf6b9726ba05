package credentials

import (
	"fmt"
	"strings"

	"github.com/blacktop/termtweet/internal/termtweet"
)

// Shape hints for freshly issued keys. These are observations, not a
// published format, so a mismatch only produces a warning.
const (
	apiKeyLength    = 25
	apiSecretLength = 50
)

var (
	apiKeyPrefixes      = []string{"AA", "BB", "CC", "DD"}
	accessTokenPrefixes = []string{"1", "2"}
)

// Warning is an advisory note about a credential that looks unusual.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	return w.Message
}

// Check returns advisory warnings for creds. It never reveals the values.
func Check(creds termtweet.Credentials) []Warning {
	var warnings []Warning

	if creds.APIKey != "" && !hasAnyPrefix(creds.APIKey, apiKeyPrefixes) {
		warnings = append(warnings, Warning{
			Field:   EnvAPIKey,
			Message: "API Key format looks unusual (typically starts with AA, BB, CC, or DD)",
		})
	}
	if n := len(creds.APIKey); n != 0 && n != apiKeyLength {
		warnings = append(warnings, Warning{
			Field:   EnvAPIKey,
			Message: fmt.Sprintf("API Key length is %d, should be %d", n, apiKeyLength),
		})
	}
	if n := len(creds.APISecret); n != 0 && n != apiSecretLength {
		warnings = append(warnings, Warning{
			Field:   EnvAPISecret,
			Message: fmt.Sprintf("API Secret length is %d, should be %d", n, apiSecretLength),
		})
	}
	if creds.AccessToken != "" && !hasAnyPrefix(creds.AccessToken, accessTokenPrefixes) {
		warnings = append(warnings, Warning{
			Field:   EnvAccessToken,
			Message: "Access Token should typically start with 1 or 2",
		})
	}

	return warnings
}

// Missing lists the environment keys whose values are empty.
func Missing(creds termtweet.Credentials) []string {
	var missing []string
	for _, key := range Keys {
		if strings.TrimSpace(Value(creds, key)) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// Complete reports whether all five values are present.
func Complete(creds termtweet.Credentials) bool {
	return len(Missing(creds)) == 0
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

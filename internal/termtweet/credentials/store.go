package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blacktop/termtweet/internal/logutil"
	"github.com/blacktop/termtweet/internal/termtweet"
	"github.com/spf13/viper"
)

const (
	EnvAPIKey            = "TWITTER_API_KEY"
	EnvAPISecret         = "TWITTER_API_SECRET"
	EnvAccessToken       = "TWITTER_ACCESS_TOKEN"
	EnvAccessTokenSecret = "TWITTER_ACCESS_TOKEN_SECRET"
	EnvBearerToken       = "TWITTER_BEARER_TOKEN"

	// EnvConfigDir overrides the per-user configuration directory.
	EnvConfigDir = "TERMTWEET_CONFIG_DIR"

	// FileName is the credential file inside the configuration directory.
	FileName = ".env"
	// DirName is the configuration directory under the user's home.
	DirName = ".termtweet"
)

// Keys lists the credential variables in file order.
var Keys = []string{EnvAPIKey, EnvAPISecret, EnvAccessToken, EnvAccessTokenSecret, EnvBearerToken}

const fileHeader = `# Twitter API Credentials
# Get these from https://developer.twitter.com/en/portal/dashboard
# IMPORTANT: Keep this file secure and never commit to version control
`

// Source is one named set of candidate values.
type Source struct {
	Name   string
	Values map[string]string
}

// Resolve fills each field from the first source with a non-empty value for
// it. The result is only usable when ok is true; partial sets are absent.
func Resolve(sources ...Source) (creds termtweet.Credentials, ok bool) {
	pick := func(key string) string {
		for _, src := range sources {
			if v := strings.TrimSpace(src.Values[key]); v != "" {
				logutil.Debugf("credential %s from %s", key, src.Name)
				return v
			}
		}
		return ""
	}

	creds = termtweet.Credentials{
		APIKey:            pick(EnvAPIKey),
		APISecret:         pick(EnvAPISecret),
		AccessToken:       pick(EnvAccessToken),
		AccessTokenSecret: pick(EnvAccessTokenSecret),
		BearerToken:       pick(EnvBearerToken),
	}
	if !Complete(creds) {
		return termtweet.Credentials{}, false
	}
	return creds, true
}

// Store reads and writes the credential file.
type Store struct {
	// Env is consulted before any file.
	Env map[string]string
	// Dir is the per-user configuration directory. Save writes Dir/.env.
	Dir string
	// Fallbacks are read only when Dir/.env does not exist.
	Fallbacks []string
}

// DefaultStore wires the process environment, ~/.termtweet and ./.env.
func DefaultStore() (*Store, error) {
	env := EnvMap(os.Environ())

	dir := strings.TrimSpace(env[EnvConfigDir])
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, DirName)
	}

	var fallbacks []string
	if cwd, err := os.Getwd(); err == nil {
		fallbacks = append(fallbacks, filepath.Join(cwd, FileName))
	}

	return &Store{Env: env, Dir: dir, Fallbacks: fallbacks}, nil
}

// EnvMap converts KEY=value pairs as returned by os.Environ.
func EnvMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		m[k] = v
	}
	return m
}

// Path returns the file Save writes to.
func (s *Store) Path() string {
	return filepath.Join(s.Dir, FileName)
}

// Load resolves credentials from the environment and the first existing
// candidate file. A missing file is not an error; ok reports completeness.
func (s *Store) Load() (creds termtweet.Credentials, ok bool, err error) {
	sources := []Source{{Name: "environment", Values: s.Env}}

	for _, path := range append([]string{s.Path()}, s.Fallbacks...) {
		info, statErr := os.Stat(path)
		if statErr != nil {
			if errors.Is(statErr, os.ErrNotExist) {
				continue
			}
			return termtweet.Credentials{}, false, fmt.Errorf("stat %s: %w", path, statErr)
		}
		if info.IsDir() {
			continue
		}
		values, readErr := readFile(path)
		if readErr != nil {
			return termtweet.Credentials{}, false, readErr
		}
		sources = append(sources, Source{Name: path, Values: values})
		break
	}

	creds, ok = Resolve(sources...)
	return creds, ok, nil
}

// Save replaces the credential file with creds. Concurrent writers from
// separate processes race; the last rename wins.
func (s *Store) Save(creds termtweet.Credentials) error {
	if missing := Missing(creds); len(missing) > 0 {
		return termtweet.MissingCredentialsError{Variables: missing}
	}

	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(render(creds)); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close credentials: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		return fmt.Errorf("replace credentials: %w", err)
	}

	logutil.Debugf("credentials written: path=%s", s.Path())
	return nil
}

func render(creds termtweet.Credentials) string {
	var b strings.Builder
	b.WriteString(fileHeader)
	for _, key := range Keys {
		fmt.Fprintf(&b, "%s=%s\n", key, strings.TrimSpace(Value(creds, key)))
	}
	return b.String()
}

func readFile(path string) (map[string]string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	values := make(map[string]string, len(Keys))
	for _, key := range Keys {
		if v.IsSet(key) {
			values[key] = v.GetString(key)
		}
	}
	return values, nil
}

// Value returns the field of creds named by an environment key.
func Value(creds termtweet.Credentials, key string) string {
	switch key {
	case EnvAPIKey:
		return creds.APIKey
	case EnvAPISecret:
		return creds.APISecret
	case EnvAccessToken:
		return creds.AccessToken
	case EnvAccessTokenSecret:
		return creds.AccessTokenSecret
	case EnvBearerToken:
		return creds.BearerToken
	}
	return ""
}

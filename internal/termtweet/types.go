package termtweet

import "context"

// Credentials holds the five secrets needed for OAuth 1.0a user-context
// requests plus the app bearer token.
type Credentials struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
	BearerToken       string
}

// Request is a single post built from the command line.
type Request struct {
	Text      string
	ImagePath string
}

// HasImage reports whether an attachment was requested.
func (r Request) HasImage() bool { return r.ImagePath != "" }

// Outcome describes what a successful workflow produced.
type Outcome struct {
	PostID   string
	MediaID  string
	Text     string
	Username string
	DryRun   bool
}

// Session is an authenticated handle returned by a Remote.
type Session interface {
	Username() string
}

// Remote abstracts the platform API. Every error is terminal for the
// invocation; callers only care which call failed.
type Remote interface {
	Name() string
	Authenticate(ctx context.Context, creds Credentials) (Session, error)
	UploadMedia(ctx context.Context, creds Credentials, path string) (string, error)
	CreatePost(ctx context.Context, session Session, text, mediaID string) (string, error)
}

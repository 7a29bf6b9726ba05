// Package workflow sequences a single termtweet invocation:
//
//	validate → load credentials → authenticate → [upload media] → create post
//
// Every step either advances or ends the run with an error; nothing is
// retried. Dry runs stop after validation and test runs after
// authentication.
package workflow

import (
	"context"
	"errors"

	"github.com/blacktop/termtweet/internal/logutil"
	"github.com/blacktop/termtweet/internal/termtweet"
	"github.com/blacktop/termtweet/internal/termtweet/credentials"
	"github.com/blacktop/termtweet/internal/ui"
)

const (
	setupHint       = "Run 'termtweet --setup' to configure your credentials."
	testHint        = "Run 'termtweet --test' to verify your setup."
	permissionsHint = "Make sure your credentials are correct and your app has 'Read and Write' permissions."
)

// CredentialStore is the subset of credentials.Store the workflow needs.
type CredentialStore interface {
	Load() (termtweet.Credentials, bool, error)
	Save(creds termtweet.Credentials) error
	Path() string
}

// Runner executes workflows against a store and a remote.
type Runner struct {
	Store  CredentialStore
	Remote termtweet.Remote
	UI     *ui.Printer
}

// New returns a Runner.
func New(store CredentialStore, remote termtweet.Remote, printer *ui.Printer) *Runner {
	return &Runner{Store: store, Remote: remote, UI: printer}
}

// Post validates req and publishes it.
func (r *Runner) Post(ctx context.Context, req termtweet.Request) (termtweet.Outcome, error) {
	if err := termtweet.ValidateRequest(req); err != nil {
		return termtweet.Outcome{}, err
	}

	creds, err := r.loadCredentials()
	if err != nil {
		return termtweet.Outcome{}, err
	}

	session, err := r.authenticate(ctx, creds)
	if err != nil {
		return termtweet.Outcome{}, err
	}

	out := termtweet.Outcome{Text: req.Text, Username: session.Username()}

	if req.HasImage() {
		r.UI.Progress("Uploading image: %s", req.ImagePath)
		mediaID, err := r.Remote.UploadMedia(ctx, creds, req.ImagePath)
		if err != nil {
			logutil.Debugf("upload failed: %v", err)
			var ve termtweet.ValidationError
			return termtweet.Outcome{}, &termtweet.StepError{
				Step:       termtweet.StepUpload,
				Message:    "Failed to upload image",
				Suggestion: permissionsHint,
				Cause:      err,
				ShowCause:  errors.As(err, &ve),
			}
		}
		out.MediaID = mediaID
		r.UI.Success("Image uploaded successfully")
	}

	r.UI.Progress("Posting tweet...")
	postID, err := r.Remote.CreatePost(ctx, session, req.Text, out.MediaID)
	if err != nil {
		logutil.Debugf("create post failed: %v", err)
		return termtweet.Outcome{}, &termtweet.StepError{
			Step:       termtweet.StepPost,
			Message:    "Failed to post tweet",
			Suggestion: permissionsHint + "\n  " + testHint,
			Cause:      err,
		}
	}
	out.PostID = postID
	r.UI.Success("Tweet posted! ID: %s", postID)

	return out, nil
}

// DryRun runs the same validation as Post and reports what would be sent.
// It never reads credentials or contacts the remote.
func (r *Runner) DryRun(req termtweet.Request) (termtweet.Outcome, error) {
	r.UI.Progress("[DRY RUN] Validating tweet without posting...")
	if err := termtweet.ValidateRequest(req); err != nil {
		return termtweet.Outcome{}, err
	}

	r.UI.Plain("Tweet text (%d chars): %s", termtweet.TextLength(req.Text), req.Text)
	if req.HasImage() {
		r.UI.Plain("Image: %s", req.ImagePath)
	}
	r.UI.Success("Validation successful! Use without --dry-run to actually post.")

	return termtweet.Outcome{Text: req.Text, DryRun: true}, nil
}

// Test checks that stored credentials load and authenticate.
func (r *Runner) Test(ctx context.Context) (termtweet.Outcome, error) {
	r.UI.Progress("Testing TermTweet configuration...")

	creds, err := r.loadCredentials()
	if err != nil {
		return termtweet.Outcome{}, err
	}
	r.warn(credentials.Check(creds))

	r.UI.Progress("Testing %s API connection...", r.Remote.Name())
	session, err := r.authenticate(ctx, creds)
	if err != nil {
		return termtweet.Outcome{}, err
	}

	if name := session.Username(); name != "" {
		r.UI.Success("Authentication successful as @%s", name)
	} else {
		r.UI.Success("Authentication successful!")
	}
	r.UI.Success("TermTweet is ready to use!")

	return termtweet.Outcome{Username: session.Username()}, nil
}

// Setup checks creds, prints advisory warnings and saves them. Unusual
// looking values are still saved.
func (r *Runner) Setup(creds termtweet.Credentials) error {
	if missing := credentials.Missing(creds); len(missing) > 0 {
		return termtweet.MissingCredentialsError{Variables: missing}
	}

	r.warn(credentials.Check(creds))

	if err := r.Store.Save(creds); err != nil {
		return &termtweet.StepError{
			Step:      termtweet.StepSave,
			Message:   "Error saving credentials",
			Cause:     err,
			ShowCause: true,
		}
	}

	r.UI.Success("Credentials saved to %s", r.Store.Path())
	r.UI.Hint("Run 'termtweet --test' to verify your setup!")
	return nil
}

func (r *Runner) loadCredentials() (termtweet.Credentials, error) {
	creds, ok, err := r.Store.Load()
	if err != nil {
		return termtweet.Credentials{}, &termtweet.StepError{
			Step:       termtweet.StepLoad,
			Message:    "Failed to read credentials",
			Suggestion: setupHint,
			Cause:      err,
			ShowCause:  true,
		}
	}
	if !ok {
		return termtweet.Credentials{}, &termtweet.StepError{
			Step:       termtweet.StepLoad,
			Message:    "No credentials found",
			Suggestion: setupHint,
		}
	}
	logutil.Debugf("credentials loaded")
	return creds, nil
}

func (r *Runner) authenticate(ctx context.Context, creds termtweet.Credentials) (termtweet.Session, error) {
	session, err := r.Remote.Authenticate(ctx, creds)
	if err == nil && session == nil {
		err = errors.New("no session returned")
	}
	if err != nil {
		logutil.Debugf("authentication failed: %v", err)
		return nil, &termtweet.StepError{
			Step:       termtweet.StepAuthenticate,
			Message:    "Authentication failed. Check your credentials and app permissions.",
			Suggestion: permissionsHint,
			Cause:      err,
		}
	}
	return session, nil
}

func (r *Runner) warn(warnings []credentials.Warning) {
	if len(warnings) == 0 {
		return
	}
	r.UI.Warn("Credential format warnings:")
	for _, w := range warnings {
		r.UI.Warn("  - %s", w)
	}
}

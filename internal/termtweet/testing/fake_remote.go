// Package testing provides test doubles for the termtweet package.
package testing

import (
	"context"
	"errors"
	"sync"

	"github.com/blacktop/termtweet/internal/termtweet"
)

// ErrFake is returned by a failing FakeRemote step when no error is set.
var ErrFake = errors.New("fake remote failure")

// FakeSession is the session handed out by FakeRemote.
type FakeSession struct {
	Name string
}

// Username implements termtweet.Session.
func (s *FakeSession) Username() string { return s.Name }

// FakeRemote records calls and returns configured results.
type FakeRemote struct {
	mu sync.Mutex

	Username string
	MediaID  string
	PostID   string

	AuthErr   error
	UploadErr error
	PostErr   error

	// Tracking for assertions
	AuthCalls   []termtweet.Credentials
	UploadCalls []string
	PostCalls   []PostCall
}

// PostCall captures one CreatePost invocation.
type PostCall struct {
	Text    string
	MediaID string
}

// NewFakeRemote returns a remote where every step succeeds.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{Username: "termtweet", MediaID: "media-1", PostID: "post-1"}
}

// Name implements termtweet.Remote.
func (f *FakeRemote) Name() string { return "fake" }

// Authenticate implements termtweet.Remote.
func (f *FakeRemote) Authenticate(_ context.Context, creds termtweet.Credentials) (termtweet.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AuthCalls = append(f.AuthCalls, creds)
	if f.AuthErr != nil {
		return nil, f.AuthErr
	}
	return &FakeSession{Name: f.Username}, nil
}

// UploadMedia implements termtweet.Remote.
func (f *FakeRemote) UploadMedia(_ context.Context, _ termtweet.Credentials, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UploadCalls = append(f.UploadCalls, path)
	if f.UploadErr != nil {
		return "", f.UploadErr
	}
	return f.MediaID, nil
}

// CreatePost implements termtweet.Remote.
func (f *FakeRemote) CreatePost(_ context.Context, session termtweet.Session, text, mediaID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PostCalls = append(f.PostCalls, PostCall{Text: text, MediaID: mediaID})
	if f.PostErr != nil {
		return "", f.PostErr
	}
	if session == nil {
		return "", ErrFake
	}
	return f.PostID, nil
}

// Calls returns the total number of remote calls made.
func (f *FakeRemote) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.AuthCalls) + len(f.UploadCalls) + len(f.PostCalls)
}

package twitter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blacktop/termtweet/internal/logutil"
	"github.com/blacktop/termtweet/internal/termtweet"
	"github.com/michimani/gotwi"
	"github.com/michimani/gotwi/media/upload"
	uploadtypes "github.com/michimani/gotwi/media/upload/types"
	"github.com/michimani/gotwi/resources"
	"github.com/michimani/gotwi/tweet/managetweet"
	managetweettypes "github.com/michimani/gotwi/tweet/managetweet/types"
	"github.com/michimani/gotwi/user/userlookup"
	userlookuptypes "github.com/michimani/gotwi/user/userlookup/types"
)

const (
	providerName = "twitter"

	envDebug = "TERMTWEET_DEBUG"
)

var httpTimeout = 30 * time.Second

// Client implements termtweet.Remote on top of gotwi.
type Client struct {
	// newClient is swapped in tests.
	newClient func(creds termtweet.Credentials) (*gotwi.Client, error)
}

// Session is an authenticated gotwi client.
type Session struct {
	api      *gotwi.Client
	userID   string
	username string
}

// Username returns the handle the credentials belong to.
func (s *Session) Username() string { return s.username }

// New returns the production adapter.
func New() *Client {
	return &Client{newClient: newAPIClient}
}

// Name returns the provider identifier.
func (c *Client) Name() string { return providerName }

// Authenticate builds an OAuth 1.0a user-context client and confirms it with
// a users/me lookup.
func (c *Client) Authenticate(ctx context.Context, creds termtweet.Credentials) (termtweet.Session, error) {
	api, err := c.newClient(creds)
	if err != nil {
		return nil, err
	}

	logutil.Debugf("verifying credentials with users/me")
	res, err := userlookup.GetMe(ctx, api, &userlookuptypes.GetMeInput{})
	if err != nil {
		return nil, fmt.Errorf("verify credentials: %w", unwrapGotwiError(err))
	}

	session := &Session{
		api:      api,
		userID:   gotwi.StringValue(res.Data.ID),
		username: gotwi.StringValue(res.Data.Username),
	}
	logutil.Debugf("authenticated: user_id=%s username=%s", session.userID, session.username)

	return session, nil
}

// UploadMedia uploads the file at path and returns the media id.
func (c *Client) UploadMedia(ctx context.Context, creds termtweet.Credentials, path string) (string, error) {
	api, err := c.newClient(creds)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", termtweet.ValidationError{Field: "image", Reason: fmt.Sprintf("image %q not found", path)}
		}
		return "", fmt.Errorf("read image: %w", err)
	}

	mediaType, category, err := resolveMediaType(path, data)
	if err != nil {
		return "", err
	}

	logutil.Debugf("initialize upload: media_type=%s bytes=%d", mediaType, len(data))
	initRes, err := upload.Initialize(ctx, api, &uploadtypes.InitializeInput{
		MediaType:     mediaType,
		TotalBytes:    len(data),
		MediaCategory: category,
	})
	if err != nil {
		return "", fmt.Errorf("initialize upload: %w", unwrapGotwiError(err))
	}
	if err := partialError(initRes.Errors); err != nil {
		return "", fmt.Errorf("initialize upload: %w", err)
	}

	mediaID := initRes.Data.MediaID
	logutil.Debugf("initialize complete: media_id=%s", mediaID)

	appendIn := &uploadtypes.AppendInput{
		MediaID:      mediaID,
		Media:        bytes.NewReader(data),
		SegmentIndex: 0,
	}
	appendIn.GenerateBoundary()

	appendRes, err := upload.Append(ctx, api, appendIn)
	if err != nil {
		return "", fmt.Errorf("append upload: %w", unwrapGotwiError(err))
	}
	if err := partialError(appendRes.Errors); err != nil {
		return "", fmt.Errorf("append upload: %w", err)
	}

	finalizeRes, err := upload.Finalize(ctx, api, &uploadtypes.FinalizeInput{MediaID: mediaID})
	if err != nil {
		return "", fmt.Errorf("finalize upload: %w", unwrapGotwiError(err))
	}
	if err := partialError(finalizeRes.Errors); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}

	state := finalizeRes.Data.ProcessingInfo.State
	logutil.Debugf("finalize state=%s media_id=%s", state, mediaID)
	switch state {
	case "", resources.ProcessingInfoStateSucceeded:
	case resources.ProcessingInfoStateInProgress, resources.ProcessingInfoStatePending:
		// Still images settle within one check interval.
		wait := time.Duration(finalizeRes.Data.ProcessingInfo.CheckAfterSecs) * time.Second
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	default:
		return "", fmt.Errorf("media processing failed: state=%s", state)
	}

	return mediaID, nil
}

// CreatePost publishes text with an optional media id and returns the tweet id.
func (c *Client) CreatePost(ctx context.Context, session termtweet.Session, text, mediaID string) (string, error) {
	s, ok := session.(*Session)
	if !ok || s == nil || s.api == nil {
		return "", errors.New("twitter session required")
	}

	input := &managetweettypes.CreateInput{
		Text: gotwi.String(text),
	}
	if mediaID != "" {
		input.Media = &managetweettypes.CreateInputMedia{MediaIDs: []string{mediaID}}
	}

	logutil.Debugf("posting tweet: has_media=%t", mediaID != "")
	res, err := managetweet.Create(ctx, s.api, input)
	if err != nil {
		return "", fmt.Errorf("post tweet: %w", unwrapGotwiError(err))
	}

	id := gotwi.StringValue(res.Data.ID)
	if id == "" {
		return "", errors.New("post tweet: response missing id")
	}
	logutil.Debugf("tweet posted: id=%s", id)

	return id, nil
}

func newAPIClient(creds termtweet.Credentials) (*gotwi.Client, error) {
	httpClient := &http.Client{Timeout: httpTimeout}
	debugEnabled := os.Getenv(envDebug) == "1" || logutil.Verbose()

	client, err := gotwi.NewClient(&gotwi.NewClientInput{
		HTTPClient:           httpClient,
		AuthenticationMethod: gotwi.AuthenMethodOAuth1UserContext,
		OAuthToken:           creds.AccessToken,
		OAuthTokenSecret:     creds.AccessTokenSecret,
		APIKey:               creds.APIKey,
		APIKeySecret:         creds.APISecret,
		Debug:                debugEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("create X client: %w", err)
	}
	if !client.IsReady() {
		return nil, errors.New("twitter client not ready")
	}
	return client, nil
}

func resolveMediaType(path string, data []byte) (uploadtypes.MediaType, uploadtypes.MediaCategory, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return uploadtypes.MediaTypeJPEG, uploadtypes.MediaCategoryTweetImage, nil
	case ".png":
		return uploadtypes.MediaTypePNG, uploadtypes.MediaCategoryTweetImage, nil
	case ".gif":
		return uploadtypes.MediaTypeGIF, uploadtypes.MediaCategoryTweetGIF, nil
	case ".webp":
		return uploadtypes.MediaTypeWebP, uploadtypes.MediaCategoryTweetImage, nil
	}

	detected := http.DetectContentType(data)
	switch {
	case strings.Contains(detected, "jpeg"):
		return uploadtypes.MediaTypeJPEG, uploadtypes.MediaCategoryTweetImage, nil
	case strings.Contains(detected, "png"):
		return uploadtypes.MediaTypePNG, uploadtypes.MediaCategoryTweetImage, nil
	case strings.Contains(detected, "gif"):
		return uploadtypes.MediaTypeGIF, uploadtypes.MediaCategoryTweetGIF, nil
	case strings.Contains(detected, "webp"):
		return uploadtypes.MediaTypeWebP, uploadtypes.MediaCategoryTweetImage, nil
	}

	return "", "", termtweet.ValidationError{Field: "image", Reason: fmt.Sprintf("unsupported image type for %q", path)}
}

func partialError(partials []resources.PartialError) error {
	if len(partials) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(partials))
	for _, pe := range partials {
		switch {
		case pe.Detail != nil && *pe.Detail != "":
			msgs = append(msgs, *pe.Detail)
		case pe.Title != nil && *pe.Title != "":
			msgs = append(msgs, *pe.Title)
		case pe.ResourceType != nil:
			msgs = append(msgs, fmt.Sprintf("%s", *pe.ResourceType))
		}
	}
	if len(msgs) == 0 {
		msgs = append(msgs, "unknown error")
	}
	return errors.New(strings.Join(msgs, "; "))
}

func unwrapGotwiError(err error) error {
	var gwErr *gotwi.GotwiError
	if errors.As(err, &gwErr) && gwErr != nil {
		return errors.New(summarizeGotwiError(gwErr))
	}
	return err
}

func summarizeGotwiError(err *gotwi.GotwiError) string {
	var parts []string
	if err.Title != "" {
		parts = append(parts, err.Title)
	}
	if err.Detail != "" {
		parts = append(parts, err.Detail)
	}
	for _, apiErr := range err.APIErrors {
		if apiErr.Message != "" {
			parts = append(parts, apiErr.Message)
		}
	}
	if len(parts) == 0 {
		if msg := err.Error(); msg != "" {
			parts = append(parts, msg)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "X API request failed")
	}
	return strings.Join(parts, "; ")
}

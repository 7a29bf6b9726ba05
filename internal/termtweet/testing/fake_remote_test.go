package testing

import (
	"context"
	"testing"

	"github.com/blacktop/termtweet/internal/termtweet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ termtweet.Remote = (*FakeRemote)(nil)

func TestFakeRemoteSuccess(t *testing.T) {
	remote := NewFakeRemote()
	ctx := context.Background()

	session, err := remote.Authenticate(ctx, termtweet.Credentials{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "termtweet", session.Username())

	mediaID, err := remote.UploadMedia(ctx, termtweet.Credentials{}, "a.png")
	require.NoError(t, err)
	assert.Equal(t, "media-1", mediaID)

	postID, err := remote.CreatePost(ctx, session, "hello", mediaID)
	require.NoError(t, err)
	assert.Equal(t, "post-1", postID)

	assert.Equal(t, 3, remote.Calls())
	assert.Equal(t, []PostCall{{Text: "hello", MediaID: "media-1"}}, remote.PostCalls)
}

func TestFakeRemoteFailures(t *testing.T) {
	remote := NewFakeRemote()
	remote.AuthErr = ErrFake
	remote.PostErr = ErrFake

	_, err := remote.Authenticate(context.Background(), termtweet.Credentials{})
	assert.ErrorIs(t, err, ErrFake)

	_, err = remote.CreatePost(context.Background(), &FakeSession{}, "x", "")
	assert.ErrorIs(t, err, ErrFake)
}

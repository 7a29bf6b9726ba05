package termtweet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequestText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{name: "short", text: "hello"},
		{name: "exactly max", text: strings.Repeat("x", MaxTextLength)},
		{name: "multibyte at max", text: strings.Repeat("é", MaxTextLength)},
		{name: "one over", text: strings.Repeat("x", 281), wantErr: "281"},
		{name: "empty", text: "", wantErr: "empty"},
		{name: "whitespace", text: "  \n", wantErr: "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(Request{Text: tt.text})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "text", ve.Field)
		})
	}
}

func TestValidateRequestTooLongNamesLimit(t *testing.T) {
	err := ValidateRequest(Request{Text: strings.Repeat("x", 281)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "281")
	assert.Contains(t, err.Error(), "280")
}

func TestValidateRequestImage(t *testing.T) {
	dir := t.TempDir()

	small := filepath.Join(dir, "small.png")
	require.NoError(t, os.WriteFile(small, []byte("png"), 0o644))

	big := filepath.Join(dir, "big.png")
	f, err := os.Create(big)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(MaxImageBytes+1))
	require.NoError(t, f.Close())

	exact := filepath.Join(dir, "exact.png")
	f, err = os.Create(exact)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(MaxImageBytes))
	require.NoError(t, f.Close())

	t.Run("present", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(Request{Text: "hi", ImagePath: small}))
	})
	t.Run("at limit", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(Request{Text: "hi", ImagePath: exact}))
	})
	t.Run("missing", func(t *testing.T) {
		err := ValidateRequest(Request{Text: "hi", ImagePath: filepath.Join(dir, "nope.png")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
	t.Run("too large", func(t *testing.T) {
		err := ValidateRequest(Request{Text: "hi", ImagePath: big})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
		assert.Contains(t, err.Error(), "5MB")
	})
	t.Run("directory", func(t *testing.T) {
		err := ValidateRequest(Request{Text: "hi", ImagePath: dir})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a regular file")
	})
}

func TestTextLengthCountsRunes(t *testing.T) {
	assert.Equal(t, 5, TextLength("hello"))
	assert.Equal(t, 2, TextLength("日本"))
	assert.Equal(t, 0, TextLength(""))
}

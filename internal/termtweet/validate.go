package termtweet

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTextLength is the longest message accepted, in characters.
	MaxTextLength = 280
	// MaxImageBytes is the largest attachment accepted.
	MaxImageBytes = 5 * 1024 * 1024
)

// TextLength counts characters the way the limit is enforced.
func TextLength(text string) int {
	return utf8.RuneCountInString(text)
}

// ValidateRequest checks req against the length and attachment limits. It is
// shared by the dry-run and posting paths.
func ValidateRequest(req Request) error {
	if strings.TrimSpace(req.Text) == "" {
		return ValidationError{Field: "text", Reason: "tweet text is empty"}
	}

	if n := TextLength(req.Text); n > MaxTextLength {
		return ValidationError{
			Field:  "text",
			Reason: fmt.Sprintf("tweet text is %d characters long; maximum is %d characters", n, MaxTextLength),
		}
	}

	if !req.HasImage() {
		return nil
	}

	info, err := os.Stat(req.ImagePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ValidationError{Field: "image", Reason: fmt.Sprintf("image file %q not found", req.ImagePath)}
		}
		return ValidationError{Field: "image", Reason: fmt.Sprintf("cannot read image %q: %v", req.ImagePath, err)}
	}
	if !info.Mode().IsRegular() {
		return ValidationError{Field: "image", Reason: fmt.Sprintf("image %q is not a regular file", req.ImagePath)}
	}
	if info.Size() > MaxImageBytes {
		return ValidationError{
			Field:  "image",
			Reason: fmt.Sprintf("image file is too large (%.1fMB); maximum is 5MB", float64(info.Size())/(1024*1024)),
		}
	}

	return nil
}

package validate

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrNoURL indicates the input contained nothing that looks like a URL.
var ErrNoURL = errors.New("no valid URL found in input")

// urlPattern matches a URL-shaped substring inside arbitrary text. The
// scheme is optional so that bare domains like www.example.com/news are
// still picked up and repaired.
var urlPattern = regexp.MustCompile(`(?i)\b(?:https?://)?(?:www\.)?[a-z0-9][-a-z0-9@:%._+~#=]{0,255}\.[a-z0-9()]{1,6}\b[-a-z0-9()@:%_+.~#?&/=]*`)

// URL extracts and validates an absolute URL from the given input.
// Inputs that already parse as absolute URLs are returned unchanged;
// otherwise the input is scanned for a URL-shaped substring, which is
// prefixed with https:// when it carries no scheme.
func URL(input string) (string, error) {
	if u, err := url.Parse(input); err == nil && u.Scheme != "" && u.Host != "" {
		return input, nil
	}

	match := urlPattern.FindString(input)
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrNoURL, input)
	}
	if !strings.HasPrefix(match, "http://") && !strings.HasPrefix(match, "https://") {
		match = "https://" + match
	}

	u, err := url.Parse(match)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid URL structure: %q", match)
	}
	return match, nil
}

// Package gravatar builds Gravatar image URLs from email addresses.
package gravatar

import (
	"crypto/md5" // #nosec G501 -- md5 is the gravatar protocol, not used for security
	"encoding/hex"
	"fmt"
	"strings"
)

// Options control the requested image variant.
type Options struct {
	Size    int    // pixel size (s)
	Rating  string // max rating (r): g, pg, r, x
	Default string // fallback image (d): mm, identicon, ...
}

// DefaultOptions matches the avatar variant used at registration:
// 200px, pg-rated, "mystery man" fallback.
func DefaultOptions() Options {
	return Options{Size: 200, Rating: "pg", Default: "mm"}
}

// URL returns the Gravatar URL for the given email: the md5 hex digest of
// the trimmed, lowercased address, plus size/rating/default parameters.
func URL(email string, opts Options) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized)) // #nosec G401
	hash := hex.EncodeToString(sum[:])

	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&r=%s&d=%s",
		hash, opts.Size, opts.Rating, opts.Default)
}

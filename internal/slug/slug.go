package slug

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	apperrors "github.com/texlane/catalog-server-go/internal/errors"
)

// maxProbes caps the disambiguation loop so pathological data cannot spin
// the existence check forever.
const maxProbes = 1000

const randomSlugChars = "abcdefghijklmnopqrstuvwxyz0123456789"
const randomSlugLen = 9

var (
	disallowed     = regexp.MustCompile(`[^a-z0-9\s-]+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	hyphenRuns     = regexp.MustCompile(`-+`)
)

// Normalize derives a URL-safe identifier from a display string: lower-case,
// strip everything outside [a-z0-9\s-], whitespace runs become a single
// hyphen, hyphen runs collapse, leading/trailing hyphens are trimmed.
// Returns "" when nothing survives.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = disallowed.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ExistsFunc reports whether a record other than excludeID already holds the
// given slug within the caller's uniqueness scope. excludeID <= 0 means no
// exclusion (create path).
type ExistsFunc func(ctx context.Context, slug string, excludeID int64) (bool, error)

// Assigner computes collision-free slugs against a caller-supplied existence
// check. It only computes the string; persisting it is the caller's job, and
// the storage layer's unique constraint remains the authoritative guarantee
// when two assignments race.
type Assigner struct {
	// RandomPrefix seeds the fallback slug when neither a candidate nor a
	// display name yields a usable base (e.g. "seo").
	RandomPrefix string
}

// Assign derives the slug base from candidate (explicit slug) if present,
// else from displayName, else from a random fallback, then probes base,
// base-1, base-2, ... until no collision is found. The probe count is capped;
// past the cap it fails with a conflict.
func (a Assigner) Assign(ctx context.Context, candidate, displayName string, excludeID int64, exists ExistsFunc) (string, error) {
	base := Normalize(candidate)
	if base == "" {
		base = Normalize(displayName)
	}
	if base == "" {
		base = a.randomBase()
	}

	slug := base
	for i := 1; i <= maxProbes; i++ {
		taken, err := exists(ctx, slug, excludeID)
		if err != nil {
			return "", apperrors.Database(err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}

	return "", apperrors.Conflict(fmt.Sprintf("could not find a free slug for %q", base))
}

func (a Assigner) randomBase() string {
	prefix := a.RandomPrefix
	if prefix == "" {
		prefix = "entry"
	}

	b := make([]byte, randomSlugLen)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(randomSlugChars))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// fall back to a fixed char rather than panic mid-request.
			b[i] = 'x'
			continue
		}
		b[i] = randomSlugChars[n.Int64()]
	}
	return prefix + "-" + string(b)
}

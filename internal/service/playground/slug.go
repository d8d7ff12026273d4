package playground

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"cipherstudio/internal/domain"

	"github.com/gosimple/slug"
)

const (
	// FallbackSlug is used when a name normalizes to nothing
	FallbackSlug = "project"

	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffixLength   = 6
)

// SlugExistsFunc reports whether a slug is already taken
type SlugExistsFunc func(ctx context.Context, slug string) (bool, error)

// SuffixFunc returns a random disambiguation suffix
type SuffixFunc func() (string, error)

// BaseSlug normalizes a project slug hint (or name) into a URL-safe slug
func BaseSlug(hint string) string {
	s := slug.Make(hint)
	if s == "" {
		return FallbackSlug
	}
	return s
}

// UniqueSlug returns base if it is free, otherwise base-<suffix> for the
// first free suffix. It gives up after maxAttempts lookups.
func UniqueSlug(ctx context.Context, base string, exists SlugExistsFunc, suffix SuffixFunc, maxAttempts int) (string, error) {
	candidate := base
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			s, err := suffix()
			if err != nil {
				return "", fmt.Errorf("generate slug suffix: %w", err)
			}
			candidate = base + "-" + s
		}

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", &domain.ConflictError{
		Message:      fmt.Sprintf("could not generate a unique slug for %q", base),
		ResourceType: "project",
	}
}

// RandomSuffix returns 6 random lowercase alphanumerics
func RandomSuffix() (string, error) {
	b := make([]byte, suffixLength)
	max := big.NewInt(int64(len(suffixAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = suffixAlphabet[n.Int64()]
	}
	return string(b), nil
}

package playground

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"cipherstudio/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseSlug(t *testing.T) {
	tests := []struct {
		hint string
		want string
	}{
		{"My App!", "my-app"},
		{"  Hello   World  ", "hello-world"},
		{"demo", "demo"},
		{"!!!", "project"},
		{"", "project"},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseSlug(tt.hint))
		})
	}
}

func TestUniqueSlug_BaseFree(t *testing.T) {
	exists := func(ctx context.Context, s string) (bool, error) { return false, nil }
	suffix := func() (string, error) {
		t.Fatal("suffix should not be generated")
		return "", nil
	}

	got, err := UniqueSlug(context.Background(), "my-app", exists, suffix, 10)
	require.NoError(t, err)
	assert.Equal(t, "my-app", got)
}

func TestUniqueSlug_RetriesUntilFree(t *testing.T) {
	taken := map[string]bool{"my-app": true, "my-app-aaaaaa": true}
	suffixes := []string{"aaaaaa", "bbbbbb"}
	exists := func(ctx context.Context, s string) (bool, error) { return taken[s], nil }
	suffix := func() (string, error) {
		s := suffixes[0]
		suffixes = suffixes[1:]
		return s, nil
	}

	got, err := UniqueSlug(context.Background(), "my-app", exists, suffix, 10)
	require.NoError(t, err)
	assert.Equal(t, "my-app-bbbbbb", got)
}

func TestUniqueSlug_BoundedAttempts(t *testing.T) {
	calls := 0
	exists := func(ctx context.Context, s string) (bool, error) {
		calls++
		return true, nil
	}
	suffix := func() (string, error) { return "xxxxxx", nil }

	_, err := UniqueSlug(context.Background(), "my-app", exists, suffix, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, 10, calls)
}

func TestUniqueSlug_LookupError(t *testing.T) {
	boom := errors.New("store down")
	exists := func(ctx context.Context, s string) (bool, error) { return false, boom }

	_, err := UniqueSlug(context.Background(), "my-app", exists, RandomSuffix, 10)
	assert.ErrorIs(t, err, boom)
}

func TestRandomSuffix(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9]{6}$`)
	for i := 0; i < 50; i++ {
		s, err := RandomSuffix()
		require.NoError(t, err)
		assert.Regexp(t, pattern, s)
	}
}

package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSet is a TokenSet where IDs 1..n exist.
type fixedSet uint64

func (s fixedSet) Exists(id uint64) bool {
	return id >= 1 && id <= uint64(s)
}

func newResolver(t *testing.T, issued uint64) *Resolver {
	t.Helper()
	r := NewResolver(fixedSet(issued))
	require.NoError(t, r.SetPlaceholderURI("ipfs://placeholder/hidden.json"))
	require.NoError(t, r.SetBaseURI("ipfs://series/"))
	return r
}

func TestTokenURI_Unrevealed(t *testing.T) {
	r := newResolver(t, 10)

	uri, err := r.TokenURI(1)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://placeholder/hidden.json", uri)

	// Same placeholder for every token.
	uri2, err := r.TokenURI(10)
	require.NoError(t, err)
	assert.Equal(t, uri, uri2)
}

func TestTokenURI_Revealed(t *testing.T) {
	r := newResolver(t, 10)
	r.Reveal()
	require.True(t, r.Revealed())

	uri, err := r.TokenURI(7)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://series/7.json", uri)
}

func TestTokenURI_BaseWithoutTrailingSlash(t *testing.T) {
	r := NewResolver(fixedSet(5))
	require.NoError(t, r.SetBaseURI("https://meta.example.com/series"))
	r.Reveal()

	uri, err := r.TokenURI(3)
	require.NoError(t, err)
	assert.Equal(t, "https://meta.example.com/series/3.json", uri)
}

func TestTokenURI_UnknownToken(t *testing.T) {
	r := newResolver(t, 5)

	_, err := r.TokenURI(6)
	assert.ErrorIs(t, err, ErrUnknownToken)

	_, err = r.TokenURI(0)
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestTokenURI_MissingReferences(t *testing.T) {
	r := NewResolver(fixedSet(5))

	_, err := r.TokenURI(1)
	assert.ErrorIs(t, err, ErrNoPlaceholder)

	r.Reveal()
	_, err = r.TokenURI(1)
	assert.ErrorIs(t, err, ErrNoBaseURI)
}

func TestReveal_OneWay(t *testing.T) {
	r := newResolver(t, 5)
	r.Reveal()
	r.Reveal() // no-op
	assert.True(t, r.Revealed())
}

func TestSnapshotRestore(t *testing.T) {
	r := newResolver(t, 5)
	snap := r.Snapshot()

	r.Reveal()
	require.NoError(t, r.SetBaseURI("ipfs://other/"))

	r.Restore(snap)
	assert.False(t, r.Revealed())
	assert.Equal(t, "ipfs://series/", r.BaseURI())
	assert.Equal(t, "ipfs://placeholder/hidden.json", r.PlaceholderURI())
}

func TestSetURI_Invalid(t *testing.T) {
	r := NewResolver(fixedSet(1))

	tests := []struct {
		name string
		uri  string
	}{
		{"empty", ""},
		{"no scheme", "meta.example.com/series"},
		{"scheme only", "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, r.SetBaseURI(tt.uri), ErrInvalidURI)
			assert.ErrorIs(t, r.SetPlaceholderURI(tt.uri), ErrInvalidURI)
		})
	}
}

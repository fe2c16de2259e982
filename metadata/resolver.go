// Package metadata resolves token IDs to metadata references.
//
// Until the series is revealed, every token resolves to a single fixed
// placeholder URI. After the one-way reveal, tokens resolve to a
// deterministic reference under the configured base URI.
package metadata

import (
	"fmt"
	"net/url"
	"strings"
)

// TokenSet reports whether a token ID has been issued. The ownership
// ledger satisfies this.
type TokenSet interface {
	Exists(id uint64) bool
}

// Resolver maps token IDs to URIs subject to the reveal state.
type Resolver struct {
	tokens         TokenSet
	revealed       bool
	baseURI        string
	placeholderURI string
}

// NewResolver creates an unrevealed resolver over a token set.
func NewResolver(tokens TokenSet) *Resolver {
	return &Resolver{tokens: tokens}
}

// SetBaseURI sets the post-reveal base reference. A trailing slash is
// optional; resolution normalizes it.
func (r *Resolver) SetBaseURI(uri string) error {
	if err := validateURI(uri); err != nil {
		return err
	}
	r.baseURI = uri
	return nil
}

// SetPlaceholderURI sets the pre-reveal placeholder reference.
func (r *Resolver) SetPlaceholderURI(uri string) error {
	if err := validateURI(uri); err != nil {
		return err
	}
	r.placeholderURI = uri
	return nil
}

// Reveal switches resolution to the base URI permanently. Revealing an
// already revealed series is a no-op.
func (r *Resolver) Reveal() {
	r.revealed = true
}

// Revealed reports whether the series has been revealed.
func (r *Resolver) Revealed() bool {
	return r.revealed
}

// BaseURI returns the configured base reference.
func (r *Resolver) BaseURI() string {
	return r.baseURI
}

// PlaceholderURI returns the configured placeholder reference.
func (r *Resolver) PlaceholderURI() string {
	return r.placeholderURI
}

// Snapshot captures the resolver's settings for later restoration.
type Snapshot struct {
	revealed       bool
	baseURI        string
	placeholderURI string
}

// Snapshot returns a copy of the current resolver state.
func (r *Resolver) Snapshot() *Snapshot {
	return &Snapshot{
		revealed:       r.revealed,
		baseURI:        r.baseURI,
		placeholderURI: r.placeholderURI,
	}
}

// Restore resets the resolver to a previously captured snapshot. The
// reveal flag is restored too, so failed operations can undo a Reveal.
func (r *Resolver) Restore(snap *Snapshot) {
	r.revealed = snap.revealed
	r.baseURI = snap.baseURI
	r.placeholderURI = snap.placeholderURI
}

// TokenURI resolves a token ID to its metadata reference.
func (r *Resolver) TokenURI(id uint64) (string, error) {
	if !r.tokens.Exists(id) {
		return "", fmt.Errorf("%w: id %d", ErrUnknownToken, id)
	}

	if !r.revealed {
		if r.placeholderURI == "" {
			return "", ErrNoPlaceholder
		}
		return r.placeholderURI, nil
	}

	if r.baseURI == "" {
		return "", ErrNoBaseURI
	}
	return fmt.Sprintf("%s/%d.json", strings.TrimSuffix(r.baseURI, "/"), id), nil
}

// validateURI requires an absolute URI with a scheme and a host or path.
func validateURI(uri string) error {
	if uri == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURI)
	}
	u, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURI, err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("%w: missing scheme in %q", ErrInvalidURI, uri)
	}
	if u.Host == "" && u.Opaque == "" && u.Path == "" {
		return fmt.Errorf("%w: empty authority in %q", ErrInvalidURI, uri)
	}
	return nil
}

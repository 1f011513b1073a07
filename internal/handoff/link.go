package handoff

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrNoBaseDomain is returned when link building is attempted without a
// configured base domain.
var ErrNoBaseDomain = errors.New("base domain is not configured")

// LinkBuilder composes one-time authorization links. The recipient
// identifier never appears in the link; only its encrypted form and a token
// bound to that encrypted form do.
type LinkBuilder struct {
	codec      *Codec
	tokens     *Tokens
	baseDomain string
}

// NewLinkBuilder creates a LinkBuilder over the given codec and token service.
func NewLinkBuilder(codec *Codec, tokens *Tokens, baseDomain string) *LinkBuilder {
	return &LinkBuilder{
		codec:      codec,
		tokens:     tokens,
		baseDomain: baseDomain,
	}
}

// BuildAuthorizationURL encrypts recipientID, issues a token bound to the
// encrypted identifier, and composes the webapp authorization URL.
func (b *LinkBuilder) BuildAuthorizationURL(recipientID string) (string, error) {
	if b.baseDomain == "" {
		return "", ErrNoBaseDomain
	}

	euid, err := b.codec.EncryptIdentifier(recipientID)
	if err != nil {
		return "", fmt.Errorf("encrypt identifier: %w", err)
	}

	token, err := b.tokens.Issue(euid)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	q := url.Values{}
	q.Set("euid", euid)
	q.Set("token", token)

	return fmt.Sprintf("https://%s/auth/webapp?%s", b.baseDomain, q.Encode()), nil
}

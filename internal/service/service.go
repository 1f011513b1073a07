// Package service is the notification facade: request validation, the
// handoff decrypt step, authorization transitions, and fan-out enqueueing.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sitecard/notify-relay/internal/authz"
	"github.com/sitecard/notify-relay/internal/dispatch"
	"github.com/sitecard/notify-relay/internal/handoff"
)

const welcomeMessage = "You have successfully authorized.\nYou will now receive contact notifications."

// Service implements the notification RPC operations over the injected
// collaborators. One instance exists per process.
type Service struct {
	codec   *handoff.Codec
	links   *handoff.LinkBuilder
	manager *authz.Manager
	queue   *dispatch.Queue
	log     zerolog.Logger
}

// New creates a Service.
func New(codec *handoff.Codec, links *handoff.LinkBuilder, manager *authz.Manager, queue *dispatch.Queue, log zerolog.Logger) *Service {
	return &Service{
		codec:   codec,
		links:   links,
		manager: manager,
		queue:   queue,
		log:     log,
	}
}

// AuthorizeRecipient decrypts euid and records the recipient as authorized.
// The first authorization of an id also enqueues a best-effort welcome
// message; repeated authorizations just refresh the record.
func (s *Service) AuthorizeRecipient(ctx context.Context, euid string) error {
	if euid == "" {
		return validationError("missing identifier")
	}

	id, err := s.codec.DecryptIdentifier(euid)
	if err != nil {
		// Decryption failure is indistinguishable from malformed input
		// to the caller; details stay in the log.
		s.log.Warn().Err(err).Msg("failed to decrypt euid for authorization")
		return validationError("invalid identifier or decryption failed")
	}

	wasAuthorized, err := s.manager.IsAuthorized(ctx, id)
	if err != nil {
		return fmt.Errorf("check authorization: %w", err)
	}

	if err := s.manager.Authorize(ctx, id); err != nil {
		return fmt.Errorf("authorize recipient: %w", err)
	}

	if !wasAuthorized {
		s.queue.EnqueueFanout([]string{id}, welcomeMessage)
	}

	return nil
}

// UnauthorizeRecipient decrypts euid and removes the recipient from the
// authorized set. Unauthorizing an unknown recipient succeeds.
func (s *Service) UnauthorizeRecipient(ctx context.Context, euid string) error {
	if euid == "" {
		return validationError("missing identifier")
	}

	id, err := s.codec.DecryptIdentifier(euid)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to decrypt euid for unauthorization")
		return validationError("invalid identifier or decryption failed")
	}

	if err := s.manager.Unauthorize(ctx, id); err != nil {
		return fmt.Errorf("unauthorize recipient: %w", err)
	}
	return nil
}

// RecipientStatus decrypts euid and reports whether the recipient is
// currently authorized.
func (s *Service) RecipientStatus(ctx context.Context, euid string) (bool, error) {
	if euid == "" {
		return false, validationError("missing identifier")
	}

	id, err := s.codec.DecryptIdentifier(euid)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to decrypt euid for status check")
		return false, validationError("invalid identifier or decryption failed")
	}

	authorized, err := s.manager.IsAuthorized(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check authorization: %w", err)
	}
	return authorized, nil
}

// BuildAuthorizationLink composes a one-time authorization link for
// recipientID. The link carries only the encrypted identifier.
func (s *Service) BuildAuthorizationLink(recipientID string) (string, error) {
	if recipientID == "" {
		return "", validationError("missing recipient id")
	}
	link, err := s.links.BuildAuthorizationURL(recipientID)
	if err != nil {
		return "", fmt.Errorf("build authorization link: %w", err)
	}
	return link, nil
}

// DeliverContactMessage validates a contact event, renders it, and enqueues
// one delivery per currently authorized recipient. It returns as soon as the
// items are queued; delivery completion is never awaited.
func (s *Service) DeliverContactMessage(ctx context.Context, name, email, body string) error {
	if name == "" || email == "" || body == "" {
		return validationError("missing required fields")
	}
	// Structural check only; full address validation is the mail system's
	// problem, not this relay's.
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return validationError("invalid email format")
	}

	recipients, err := s.manager.ListAuthorized(ctx)
	if err != nil {
		return fmt.Errorf("list authorized recipients: %w", err)
	}

	s.queue.EnqueueFanout(recipients, renderContactMessage(name, email, body))

	s.log.Info().
		Int("recipients", len(recipients)).
		Msg("contact message enqueued for delivery")
	return nil
}

// renderContactMessage produces the fixed delivery format for a contact
// event. Telegram HTML parse mode; user input is escaped.
func renderContactMessage(name, email, body string) string {
	return fmt.Sprintf(
		"<b>New contact message</b>\nFrom: %s (%s)\n\n%s",
		escapeHTML(name), escapeHTML(email), escapeHTML(body),
	)
}

func escapeHTML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

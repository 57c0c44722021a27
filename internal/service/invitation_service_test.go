package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/service"
)

func TestInvitationRequiresActivePayment(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	inviter := env.createClient(t)
	if _, err := env.invitations.CreateInvitation(ctx, inviter.ID, "friend@example.com"); !errors.Is(err, service.ErrPaymentInactive) {
		t.Fatalf("expected ErrPaymentInactive, got %v", err)
	}

	if _, err := env.clients.SetPaymentActive(ctx, inviter.ID, true); err != nil {
		t.Fatalf("activate payment: %v", err)
	}
	invitation, err := env.invitations.CreateInvitation(ctx, inviter.ID, "friend@example.com")
	if err != nil {
		t.Fatalf("create invitation: %v", err)
	}
	if invitation.Status != model.InvitationStatusPending || invitation.Token == "" {
		t.Fatalf("expected pending tokened invitation, got %+v", invitation)
	}
}

func TestInvitationAcceptLifecycle(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	inviter := env.createClient(t)
	if _, err := env.clients.SetPaymentActive(ctx, inviter.ID, true); err != nil {
		t.Fatalf("activate payment: %v", err)
	}
	invitation, err := env.invitations.CreateInvitation(ctx, inviter.ID, "friend@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	accepted, err := env.invitations.AcceptInvitation(ctx, invitation.Token)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != model.InvitationStatusAccepted {
		t.Fatalf("expected ACCEPTED, got %s", accepted.Status)
	}

	// A consumed token cannot be accepted again.
	if _, err := env.invitations.AcceptInvitation(ctx, invitation.Token); !errors.Is(err, service.ErrInvitationNotPending) {
		t.Fatalf("expected ErrInvitationNotPending, got %v", err)
	}
}

func TestInvitationCancelIsOwnerOnly(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	inviter := env.createClient(t)
	stranger := env.createClient(t)
	if _, err := env.clients.SetPaymentActive(ctx, inviter.ID, true); err != nil {
		t.Fatalf("activate payment: %v", err)
	}
	invitation, err := env.invitations.CreateInvitation(ctx, inviter.ID, "friend@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := env.invitations.CancelInvitation(ctx, invitation.ID, stranger.ID); !errors.Is(err, service.ErrInvitationNotOwned) {
		t.Fatalf("expected ErrInvitationNotOwned, got %v", err)
	}

	cancelled, err := env.invitations.CancelInvitation(ctx, invitation.ID, inviter.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != model.InvitationStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}

	// Cancelled invitations cannot be accepted.
	if _, err := env.invitations.AcceptInvitation(ctx, invitation.Token); !errors.Is(err, service.ErrInvitationNotPending) {
		t.Fatalf("expected ErrInvitationNotPending, got %v", err)
	}
}

func TestExpiredInvitationIsMarkedOnAccept(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	inviter := env.createClient(t)
	if _, err := env.clients.SetPaymentActive(ctx, inviter.ID, true); err != nil {
		t.Fatalf("activate payment: %v", err)
	}
	invitation, err := env.invitations.CreateInvitation(ctx, inviter.ID, "friend@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Backdate the expiry.
	if err := env.db.Model(&model.Invitation{}).
		Where("id = ?", invitation.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate expiry: %v", err)
	}

	if _, err := env.invitations.AcceptInvitation(ctx, invitation.Token); !errors.Is(err, service.ErrInvitationExpired) {
		t.Fatalf("expected ErrInvitationExpired, got %v", err)
	}

	page, err := env.invitations.ListByInviter(ctx, inviter.ID, 10, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Status != model.InvitationStatusExpired {
		t.Fatalf("expected one EXPIRED invitation, got %+v", page.Items)
	}
}

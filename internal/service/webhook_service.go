package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fitchain/gymhub/internal/config"
	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/repository"
)

const webhookDeliveryPrefix = "webhook_delivery:"

// WebhookService handles the identity-provider provisioning webhook: a user
// document is created on external sign-up. The backend never creates
// credentials for these accounts; the external subject is the identity.
type WebhookService interface {
	VerifySignature(body []byte, signature string) error
	ProvisionExternalUser(ctx context.Context, deliveryID, subject, email string) (*model.User, error)
}

type webhookService struct {
	cfg        config.WebhookConfig
	userRepo   repository.UserRepository
	stateStore repository.StateStore
}

func NewWebhookService(
	cfg config.WebhookConfig,
	userRepo repository.UserRepository,
	stateStore repository.StateStore,
) WebhookService {
	return &webhookService{cfg: cfg, userRepo: userRepo, stateStore: stateStore}
}

func (s *webhookService) VerifySignature(body []byte, signature string) error {
	mac := hmac.New(sha256.New, []byte(s.cfg.SigningSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrWebhookSignature
	}
	return nil
}

func (s *webhookService) ProvisionExternalUser(
	ctx context.Context, deliveryID, subject, email string,
) (*model.User, error) {
	// Replay protection: each delivery id is accepted once per window.
	seen, err := s.stateStore.Exists(ctx, webhookDeliveryPrefix+deliveryID)
	if err != nil {
		return nil, fmt.Errorf("check delivery id: %w", err)
	}
	if seen {
		return nil, ErrWebhookReplayed
	}

	// Idempotent on subject: re-delivery of a sign-up for a known subject
	// returns the existing user.
	user, err := s.userRepo.GetByExternalSubject(ctx, subject)
	if err == nil {
		return user, s.markDelivered(ctx, deliveryID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user by subject: %w", err)
	}

	user = &model.User{
		Email:           email,
		ExternalSubject: subject,
		Status:          model.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, s.markDelivered(ctx, deliveryID)
}

func (s *webhookService) markDelivered(ctx context.Context, deliveryID string) error {
	return s.stateStore.Set(ctx, webhookDeliveryPrefix+deliveryID, []byte("1"), s.cfg.ReplayWindow)
}

var _ WebhookService = (*webhookService)(nil)

package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/service"
)

func TestClientFreeQuotaBlocksConversation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	client := env.createClient(t)
	trainer := env.createTrainer(t)

	conversation, err := env.chat.GetOrCreateConversation(ctx, client.ID, trainer.ID)
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}
	if conversation.Status != model.ConversationStatusOpen {
		t.Fatalf("expected OPEN conversation, got %s", conversation.Status)
	}

	// All 20 free messages go through.
	for i := 0; i < 20; i++ {
		if _, err := env.chat.SendMessage(ctx, conversation.ID, client.UserID, fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}

	// The 21st is rejected and flips the conversation to BLOCKED.
	if _, err := env.chat.SendMessage(ctx, conversation.ID, client.UserID, "one too many"); !errors.Is(err, service.ErrFreeMessagesExhausted) {
		t.Fatalf("expected ErrFreeMessagesExhausted, got %v", err)
	}

	reloaded, err := env.chatRepo.GetConversation(ctx, conversation.ID)
	if err != nil {
		t.Fatalf("reload conversation: %v", err)
	}
	if reloaded.Status != model.ConversationStatusBlocked {
		t.Fatalf("expected BLOCKED after quota exhaustion, got %s", reloaded.Status)
	}

	// Further sends fail with the blocked error and write nothing.
	if _, err := env.chat.SendMessage(ctx, conversation.ID, client.UserID, "still blocked"); !errors.Is(err, service.ErrConversationBlocked) {
		t.Fatalf("expected ErrConversationBlocked, got %v", err)
	}

	quota, err := env.chatRepo.GetQuotaByConversation(ctx, conversation.ID)
	if err != nil {
		t.Fatalf("load quota: %v", err)
	}
	if quota.UsedCount != 20 {
		t.Fatalf("expected used count 20, got %d", quota.UsedCount)
	}
}

func TestTrainerMessagesAreNeverGated(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	client := env.createClient(t)
	trainer := env.createTrainer(t)

	conversation, err := env.chat.GetOrCreateConversation(ctx, client.ID, trainer.ID)
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}

	for i := 0; i < 25; i++ {
		if _, err := env.chat.SendMessage(ctx, conversation.ID, trainer.UserID, "coaching note"); err != nil {
			t.Fatalf("trainer send %d: %v", i, err)
		}
	}

	quota, err := env.chatRepo.GetQuotaByConversation(ctx, conversation.ID)
	if err != nil {
		t.Fatalf("load quota: %v", err)
	}
	if quota.UsedCount != 0 {
		t.Fatalf("trainer sends must not consume the quota, used=%d", quota.UsedCount)
	}
}

func TestContractLiftsQuota(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	client := env.createClient(t)
	trainer := env.createTrainer(t)

	conversation, err := env.chat.GetOrCreateConversation(ctx, client.ID, trainer.ID)
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}

	// Only the conversation's trainer may mark the contract.
	other := env.createTrainer(t)
	if _, err := env.chat.MarkContract(ctx, conversation.ID, other.ID, time.Now().Add(time.Hour)); !errors.Is(err, service.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant for foreign trainer, got %v", err)
	}

	// A past valid-until is rejected.
	if _, err := env.chat.MarkContract(ctx, conversation.ID, trainer.ID, time.Now().Add(-time.Minute)); !errors.Is(err, service.ErrContractValidUntilPast) {
		t.Fatalf("expected ErrContractValidUntilPast, got %v", err)
	}

	contracted, err := env.chat.MarkContract(ctx, conversation.ID, trainer.ID, time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("mark contract: %v", err)
	}
	if contracted.Status != model.ConversationStatusContracted {
		t.Fatalf("expected CONTRACTED, got %s", contracted.Status)
	}

	// Well past the free limit without any quota consumption.
	for i := 0; i < 30; i++ {
		if _, err := env.chat.SendMessage(ctx, conversation.ID, client.UserID, "under contract"); err != nil {
			t.Fatalf("contracted send %d: %v", i, err)
		}
	}

	quota, err := env.chatRepo.GetQuotaByConversation(ctx, conversation.ID)
	if err != nil {
		t.Fatalf("load quota: %v", err)
	}
	if quota.UsedCount != 0 {
		t.Fatalf("contracted sends must not consume the quota, used=%d", quota.UsedCount)
	}
}

func TestConversationIsReusedPerPair(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	client := env.createClient(t)
	trainer := env.createTrainer(t)

	first, err := env.chat.GetOrCreateConversation(ctx, client.ID, trainer.ID)
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}
	second, err := env.chat.GetOrCreateConversation(ctx, client.ID, trainer.ID)
	if err != nil {
		t.Fatalf("reopen conversation: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected one conversation per pair, got %s and %s", first.ID, second.ID)
	}
}

func TestOutsiderCannotSendOrRead(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	client := env.createClient(t)
	trainer := env.createTrainer(t)
	outsider := env.createClient(t)

	conversation, err := env.chat.GetOrCreateConversation(ctx, client.ID, trainer.ID)
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}

	if _, err := env.chat.SendMessage(ctx, conversation.ID, outsider.UserID, "hi"); !errors.Is(err, service.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant on send, got %v", err)
	}
	if _, err := env.chat.ListMessages(ctx, conversation.ID, outsider.UserID, 10, nil); !errors.Is(err, service.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant on list, got %v", err)
	}
}

func TestMarkMessageRead(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	client := env.createClient(t)
	trainer := env.createTrainer(t)

	conversation, err := env.chat.GetOrCreateConversation(ctx, client.ID, trainer.ID)
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}

	message, err := env.chat.SendMessage(ctx, conversation.ID, client.UserID, "hello coach")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	// The sender cannot mark their own message read.
	if _, err := env.chat.MarkMessageRead(ctx, message.ID, client.UserID); !errors.Is(err, service.ErrNotParticipant) {
		t.Fatalf("expected self-read rejection, got %v", err)
	}

	read, err := env.chat.MarkMessageRead(ctx, message.ID, trainer.UserID)
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if read.Status != model.MessageStatusRead || read.ReadAt == nil {
		t.Fatalf("expected READ with timestamp, got %s %v", read.Status, read.ReadAt)
	}

	// Marking again is idempotent.
	again, err := env.chat.MarkMessageRead(ctx, message.ID, trainer.UserID)
	if err != nil {
		t.Fatalf("second mark read: %v", err)
	}
	if !again.ReadAt.Equal(*read.ReadAt) {
		t.Fatalf("read timestamp changed on repeat: %v vs %v", again.ReadAt, read.ReadAt)
	}
}

func TestListMessagesPaginates(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	client := env.createClient(t)
	trainer := env.createTrainer(t)

	conversation, err := env.chat.GetOrCreateConversation(ctx, client.ID, trainer.ID)
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}
	for i := 0; i < 7; i++ {
		if _, err := env.chat.SendMessage(ctx, conversation.ID, trainer.UserID, fmt.Sprintf("note %d", i)); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}

	page, err := env.chat.ListMessages(ctx, conversation.ID, client.UserID, 5, nil)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(page.Items) != 5 || page.NextCursor == "" {
		t.Fatalf("expected full first page with cursor, got %d items cursor=%q", len(page.Items), page.NextCursor)
	}

	cursor := decodeCursor(t, page.NextCursor)
	rest, err := env.chat.ListMessages(ctx, conversation.ID, client.UserID, 5, cursor)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(rest.Items) != 2 || rest.NextCursor != "" {
		t.Fatalf("expected 2 trailing items without cursor, got %d cursor=%q", len(rest.Items), rest.NextCursor)
	}

	seen := map[string]bool{}
	for _, m := range append(page.Items, rest.Items...) {
		if seen[m.ID.String()] {
			t.Fatalf("message %s returned twice", m.ID)
		}
		seen[m.ID.String()] = true
	}
}

func TestRejoinedClientCanChat(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	in := newAccountInput("client")
	original, err := env.clients.ProvisionClient(ctx, in)
	if err != nil {
		t.Fatalf("provision client: %v", err)
	}
	if err := env.clients.DeactivateClient(ctx, original.ID); err != nil {
		t.Fatalf("deactivate client: %v", err)
	}

	// Same document, so provisioning reactivates: a fresh client row for the
	// same user, with the old row left INACTIVE.
	rejoined, err := env.clients.ProvisionClient(ctx, in)
	if err != nil {
		t.Fatalf("re-provision client: %v", err)
	}
	if rejoined.ID == original.ID {
		t.Fatal("expected a fresh client row on re-join")
	}
	if rejoined.UserID != original.UserID {
		t.Fatalf("re-join changed the user: %s vs %s", rejoined.UserID, original.UserID)
	}

	resolved, err := env.clients.GetClientByUser(ctx, rejoined.UserID)
	if err != nil {
		t.Fatalf("resolve client by user: %v", err)
	}
	if resolved.ID != rejoined.ID {
		t.Fatalf("lookup resolved client %s, want the active row %s", resolved.ID, rejoined.ID)
	}

	trainer := env.createTrainer(t)
	conversation, err := env.chat.GetOrCreateConversation(ctx, rejoined.ID, trainer.ID)
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}
	if _, err := env.chat.SendMessage(ctx, conversation.ID, rejoined.UserID, "back again"); err != nil {
		t.Fatalf("rejoined client cannot send: %v", err)
	}
	if _, err := env.chat.ListMessages(ctx, conversation.ID, rejoined.UserID, 10, nil); err != nil {
		t.Fatalf("rejoined client cannot read: %v", err)
	}
}

func TestContractUnblocksExhaustedConversation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	client := env.createClient(t)
	trainer := env.createTrainer(t)

	conversation, err := env.chat.GetOrCreateConversation(ctx, client.ID, trainer.ID)
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}
	for i := 0; i < 20; i++ {
		if _, err := env.chat.SendMessage(ctx, conversation.ID, client.UserID, fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}
	if _, err := env.chat.SendMessage(ctx, conversation.ID, client.UserID, "one too many"); !errors.Is(err, service.ErrFreeMessagesExhausted) {
		t.Fatalf("expected ErrFreeMessagesExhausted, got %v", err)
	}

	// Signing a contract is the way out of BLOCKED.
	validUntil := time.Now().Add(30 * 24 * time.Hour)
	contracted, err := env.chat.MarkContract(ctx, conversation.ID, trainer.ID, validUntil)
	if err != nil {
		t.Fatalf("mark contract on blocked conversation: %v", err)
	}
	if contracted.Status != model.ConversationStatusContracted {
		t.Fatalf("expected CONTRACTED, got %s", contracted.Status)
	}

	if _, err := env.chat.SendMessage(ctx, conversation.ID, client.UserID, "back in business"); err != nil {
		t.Fatalf("contracted client cannot send: %v", err)
	}

	// Extending an existing contract just moves valid-until.
	extended := validUntil.Add(30 * 24 * time.Hour)
	contracted, err = env.chat.MarkContract(ctx, conversation.ID, trainer.ID, extended)
	if err != nil {
		t.Fatalf("extend contract: %v", err)
	}
	if contracted.ContractValidUntil == nil || !contracted.ContractValidUntil.Equal(extended) {
		t.Fatalf("valid-until not extended: %v", contracted.ContractValidUntil)
	}
}

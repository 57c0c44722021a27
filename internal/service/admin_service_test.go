package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/service"
)

func TestProvisionAdminCreatesAccountTriple(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	in := newAccountInput("admin")
	admin, err := env.admins.ProvisionAdmin(ctx, in)
	if err != nil {
		t.Fatalf("provision admin: %v", err)
	}

	if !strings.HasPrefix(admin.AdminCode, "ADM") {
		t.Fatalf("expected ADM-prefixed code, got %q", admin.AdminCode)
	}
	if admin.BranchID != nil {
		t.Fatalf("new admin must start unassigned, got branch %v", admin.BranchID)
	}

	user, err := env.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		t.Fatalf("user not created: %v", err)
	}
	roles, err := env.roleRepo.ListActiveByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}
	if !service.IsAdmin(roles) {
		t.Fatalf("expected active ADMIN role, got %+v", roles)
	}
}

func TestProvisionAdminRejectsDuplicateEmail(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	in := newAccountInput("admin")
	if _, err := env.admins.ProvisionAdmin(ctx, in); err != nil {
		t.Fatalf("first provision: %v", err)
	}

	dup := newAccountInput("admin")
	dup.Email = in.Email
	if _, err := env.admins.ProvisionAdmin(ctx, dup); !errors.Is(err, service.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestBranchHoldsOneActiveAdmin(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	branch := env.createBranch(t, "Downtown")

	first, err := env.admins.ProvisionAdmin(ctx, newAccountInput("admin"))
	if err != nil {
		t.Fatalf("provision first: %v", err)
	}
	second, err := env.admins.ProvisionAdmin(ctx, newAccountInput("admin"))
	if err != nil {
		t.Fatalf("provision second: %v", err)
	}

	if _, err := env.admins.AssignToBranch(ctx, first.ID, branch.ID); err != nil {
		t.Fatalf("assign first: %v", err)
	}

	// A second admin on the same branch is refused.
	if _, err := env.admins.AssignToBranch(ctx, second.ID, branch.ID); !errors.Is(err, service.ErrBranchAlreadyHasAdmin) {
		t.Fatalf("expected ErrBranchAlreadyHasAdmin, got %v", err)
	}

	// Re-assigning the incumbent is a no-op, not a conflict.
	if _, err := env.admins.AssignToBranch(ctx, first.ID, branch.ID); err != nil {
		t.Fatalf("re-assign incumbent: %v", err)
	}

	// After revocation the seat frees up.
	if _, err := env.admins.RevokeFromBranch(ctx, first.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := env.admins.AssignToBranch(ctx, second.ID, branch.ID); err != nil {
		t.Fatalf("assign after revoke: %v", err)
	}
}

func TestAssignRescopesAdminRole(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	branch := env.createBranch(t, "Uptown")
	admin, err := env.admins.ProvisionAdmin(ctx, newAccountInput("admin"))
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	if _, err := env.admins.AssignToBranch(ctx, admin.ID, branch.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	roles, err := env.roleRepo.ListActiveByUserID(ctx, admin.UserID)
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}
	if !service.CanManageBranch(roles, branch.ID) {
		t.Fatalf("expected branch-scoped admin role, got %+v", roles)
	}

	other := env.createBranch(t, "Suburb")
	if service.CanManageBranch(roles, other.ID) {
		t.Fatalf("branch scope must not leak to other branches")
	}
}

func TestDeactivateAdminDropsRole(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	branch := env.createBranch(t, "Harbor")
	admin, err := env.admins.ProvisionAdmin(ctx, newAccountInput("admin"))
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if _, err := env.admins.AssignToBranch(ctx, admin.ID, branch.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if err := env.admins.DeactivateAdmin(ctx, admin.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	reloaded, err := env.admins.GetAdmin(ctx, admin.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != model.StaffStatusInactive || reloaded.BranchID != nil {
		t.Fatalf("expected inactive unassigned admin, got %+v", reloaded)
	}

	roles, err := env.roleRepo.ListActiveByUserID(ctx, admin.UserID)
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}
	if service.IsAdmin(roles) {
		t.Fatalf("deactivated admin must lose the active role")
	}
}

package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/service"
)

func TestCreateCityRejectsDuplicate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	if _, err := env.branches.CreateCity(ctx, "Springfield", "IL"); err != nil {
		t.Fatalf("create city: %v", err)
	}
	if _, err := env.branches.CreateCity(ctx, "Springfield", "IL"); !errors.Is(err, service.ErrCityAlreadyExists) {
		t.Fatalf("expected ErrCityAlreadyExists, got %v", err)
	}
	// Same name in another state is a different city.
	if _, err := env.branches.CreateCity(ctx, "Springfield", "MA"); err != nil {
		t.Fatalf("create same-name city in another state: %v", err)
	}
}

func TestCreateBranchReusesExistingCity(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	env.createBranch(t, "Downtown")
	env.createBranch(t, "Uptown")

	cities, err := env.branches.ListCities(ctx)
	if err != nil {
		t.Fatalf("list cities: %v", err)
	}
	if len(cities) != 1 {
		t.Fatalf("expected the city to be reused, got %d cities", len(cities))
	}
}

func TestUpdateBranchStatus(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	branch := env.createBranch(t, "Downtown")
	if branch.Status != model.BranchStatusActive {
		t.Fatalf("new branch status = %s, want ACTIVE", branch.Status)
	}

	updated, err := env.branches.UpdateBranchStatus(ctx, branch.ID, model.BranchStatusMaintenance)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != model.BranchStatusMaintenance {
		t.Fatalf("status = %s, want MAINTENANCE", updated.Status)
	}

	got, err := env.branches.GetBranch(ctx, branch.ID)
	if err != nil {
		t.Fatalf("get branch: %v", err)
	}
	if got.Status != model.BranchStatusMaintenance {
		t.Fatalf("persisted status = %s, want MAINTENANCE", got.Status)
	}
}

func TestDeleteBranchRefusesWhileOccupied(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	branch := env.createBranch(t, "Downtown")
	if _, err := env.trainers.ProvisionTrainer(ctx, newAccountInput("trainer"), &branch.ID, nil); err != nil {
		t.Fatalf("provision trainer: %v", err)
	}

	if err := env.branches.DeleteBranch(ctx, branch.ID); !errors.Is(err, service.ErrBranchHasDependents) {
		t.Fatalf("expected ErrBranchHasDependents, got %v", err)
	}

	empty := env.createBranch(t, "Uptown")
	if err := env.branches.DeleteBranch(ctx, empty.ID); err != nil {
		t.Fatalf("delete empty branch: %v", err)
	}
	if _, err := env.branches.GetBranch(ctx, empty.ID); !errors.Is(err, service.ErrBranchNotFound) {
		t.Fatalf("expected ErrBranchNotFound after delete, got %v", err)
	}
}

func TestDeleteBranchRefusesWhileClientsLinked(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	branch := env.createBranch(t, "Downtown")
	client := env.createClient(t)
	if _, err := env.clients.LinkToBranch(ctx, client.ID, branch.ID); err != nil {
		t.Fatalf("link client: %v", err)
	}

	if err := env.branches.DeleteBranch(ctx, branch.ID); !errors.Is(err, service.ErrBranchHasDependents) {
		t.Fatalf("expected ErrBranchHasDependents, got %v", err)
	}

	if err := env.clients.UnlinkFromBranch(ctx, client.ID, branch.ID); err != nil {
		t.Fatalf("unlink client: %v", err)
	}
	if err := env.branches.DeleteBranch(ctx, branch.ID); err != nil {
		t.Fatalf("delete branch after unlink: %v", err)
	}
}

func TestListBranchesPaginatesNewestFirst(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		env.createBranch(t, fmt.Sprintf("Branch %d", i))
	}

	first, err := env.branches.ListBranches(ctx, 3, nil)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Items) != 3 || first.NextCursor == "" {
		t.Fatalf("first page: %d items, cursor=%q", len(first.Items), first.NextCursor)
	}

	second, err := env.branches.ListBranches(ctx, 3, decodeCursor(t, first.NextCursor))
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Items) != 2 || second.NextCursor != "" {
		t.Fatalf("second page: %d items, cursor=%q", len(second.Items), second.NextCursor)
	}

	seen := map[string]bool{}
	for _, b := range append(first.Items, second.Items...) {
		if seen[b.ID.String()] {
			t.Fatalf("branch %s appeared on both pages", b.ID)
		}
		seen[b.ID.String()] = true
	}
}

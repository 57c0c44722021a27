package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/repository"
	"fitchain/gymhub/internal/service"
	"fitchain/gymhub/pkg/pagination"
)

// testEnv wires every service against a fresh in-memory database.
type testEnv struct {
	db *gorm.DB

	userRepo         repository.UserRepository
	roleRepo         repository.RoleAssignmentRepository
	adminRepo        repository.AdminRepository
	clientRepo       repository.ClientRepository
	clientBranchRepo repository.ClientBranchRepository
	chatRepo         repository.ChatRepository

	authz       service.AuthzService
	branches    service.BranchService
	admins      service.AdminService
	trainers    service.TrainerService
	clients     service.ClientService
	invitations service.InvitationService
	chat        service.ChatService
	posts       service.PostService
	profiles    service.ProfileService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	logger := zap.NewNop()

	userRepo := repository.NewPGUserRepository(db)
	personRepo := repository.NewPGPersonRepository(db)
	roleRepo := repository.NewPGRoleAssignmentRepository(db)
	cityRepo := repository.NewPGCityRepository(db)
	addressRepo := repository.NewPGAddressRepository(db)
	branchRepo := repository.NewPGBranchRepository(db)
	adminRepo := repository.NewPGAdminRepository(db)
	trainerRepo := repository.NewPGTrainerRepository(db)
	clientRepo := repository.NewPGClientRepository(db)
	clientBranchRepo := repository.NewPGClientBranchRepository(db)
	invitationRepo := repository.NewPGInvitationRepository(db)
	chatRepo := repository.NewPGChatRepository(db)
	postRepo := repository.NewPGPostRepository(db)

	authz := service.NewAuthzService(roleRepo)

	return &testEnv{
		db:               db,
		userRepo:         userRepo,
		roleRepo:         roleRepo,
		adminRepo:        adminRepo,
		clientRepo:       clientRepo,
		clientBranchRepo: clientBranchRepo,
		chatRepo:         chatRepo,
		authz:            authz,
		branches:         service.NewBranchService(cityRepo, addressRepo, branchRepo),
		admins:           service.NewAdminService(userRepo, personRepo, roleRepo, adminRepo, branchRepo, nil, logger),
		trainers:         service.NewTrainerService(userRepo, personRepo, roleRepo, trainerRepo, branchRepo, nil, logger),
		clients:          service.NewClientService(userRepo, personRepo, roleRepo, clientRepo, clientBranchRepo, branchRepo, authz, nil, logger),
		invitations:      service.NewInvitationService(invitationRepo, clientRepo, nil, logger),
		chat:             service.NewChatService(chatRepo, clientRepo, trainerRepo, 20),
		posts:            service.NewPostService(postRepo, trainerRepo, "https://media.test"),
		profiles:         service.NewProfileService(userRepo, personRepo, roleRepo, clientRepo, clientBranchRepo, trainerRepo, adminRepo),
	}
}

var accountSeq int

// newAccountInput returns a provisioning payload with unique email and
// document per call.
func newAccountInput(prefix string) service.NewAccountInput {
	accountSeq++
	return service.NewAccountInput{
		Email:          fmt.Sprintf("%s%d@example.com", prefix, accountSeq),
		FirstName:      "Test",
		LastName:       prefix,
		DocumentType:   model.DocumentTypeNationalID,
		DocumentNumber: fmt.Sprintf("%s-%06d", prefix, accountSeq),
		Phone:          "555-0100",
	}
}

func decodeCursor(t *testing.T, token string) *pagination.Cursor {
	t.Helper()
	cursor, err := pagination.Decode(token)
	if err != nil {
		t.Fatalf("decode cursor %q: %v", token, err)
	}
	return cursor
}

func (e *testEnv) createBranch(t *testing.T, name string) *model.Branch {
	t.Helper()
	branch, err := e.branches.CreateBranch(context.Background(), service.CreateBranchInput{
		Name:      name,
		CityName:  "Springfield",
		CityState: "IL",
		Street:    "Main St",
		Number:    "100",
		Capacity:  200,
	})
	if err != nil {
		t.Fatalf("create branch %s: %v", name, err)
	}
	return branch
}

func (e *testEnv) createClient(t *testing.T) *model.Client {
	t.Helper()
	client, err := e.clients.ProvisionClient(context.Background(), newAccountInput("client"))
	if err != nil {
		t.Fatalf("provision client: %v", err)
	}
	return client
}

func (e *testEnv) createTrainer(t *testing.T) *model.Trainer {
	t.Helper()
	trainer, err := e.trainers.ProvisionTrainer(context.Background(), newAccountInput("trainer"), nil, nil)
	if err != nil {
		t.Fatalf("provision trainer: %v", err)
	}
	return trainer
}

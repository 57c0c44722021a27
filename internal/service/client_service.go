package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/repository"
	"fitchain/gymhub/pkg/pagination"
)

type ClientService interface {
	// ProvisionClient onboards a member. When the document belongs to a known
	// person (a lapsed member re-joining), the existing person is reused and
	// only a new client row is created; an active client for that person
	// fails the call.
	ProvisionClient(ctx context.Context, in NewAccountInput) (*model.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error)
	GetClientByUser(ctx context.Context, userID uuid.UUID) (*model.Client, error)
	SetPaymentActive(ctx context.Context, clientID uuid.UUID, active bool) (*model.Client, error)
	DeactivateClient(ctx context.Context, clientID uuid.UUID) error

	LinkToBranch(ctx context.Context, clientID, branchID uuid.UUID) (*model.ClientBranch, error)
	UnlinkFromBranch(ctx context.Context, clientID, branchID uuid.UUID) error
	// ListByBranch is restricted to admins assigned to that branch (or super
	// admins); callers outside that scope are rejected.
	ListByBranch(ctx context.Context, callerUserID, branchID uuid.UUID, limit int, cursor *pagination.Cursor) (*pagination.Page[model.Client], error)
}

type clientService struct {
	provisioner      accountProvisioner
	clientRepo       repository.ClientRepository
	clientBranchRepo repository.ClientBranchRepository
	personRepo       repository.PersonRepository
	branchRepo       repository.BranchRepository
	authz            AuthzService
	logger           *zap.Logger
}

func NewClientService(
	userRepo repository.UserRepository,
	personRepo repository.PersonRepository,
	roleRepo repository.RoleAssignmentRepository,
	clientRepo repository.ClientRepository,
	clientBranchRepo repository.ClientBranchRepository,
	branchRepo repository.BranchRepository,
	authz AuthzService,
	mail MailSender,
	logger *zap.Logger,
) ClientService {
	return &clientService{
		provisioner: accountProvisioner{
			userRepo:   userRepo,
			personRepo: personRepo,
			roleRepo:   roleRepo,
			mail:       mail,
			logger:     logger,
		},
		clientRepo:       clientRepo,
		clientBranchRepo: clientBranchRepo,
		personRepo:       personRepo,
		branchRepo:       branchRepo,
		authz:            authz,
		logger:           logger,
	}
}

func (s *clientService) ProvisionClient(ctx context.Context, in NewAccountInput) (*model.Client, error) {
	// Re-joining member: document already known.
	person, err := s.personRepo.GetByDocument(ctx, in.DocumentType, in.DocumentNumber)
	if err == nil {
		return s.reactivate(ctx, person)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check document: %w", err)
	}

	acct, err := s.provisioner.provision(ctx, in, model.RoleClient, nil)
	if err != nil {
		return nil, err
	}

	client := &model.Client{
		UserID:   acct.User.ID,
		PersonID: acct.Person.ID,
		Status:   model.ClientStatusActive,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		acct.Compensate(ctx, s.logger)
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.provisioner.sendWelcome(acct)
	client.Person = *acct.Person
	return client, nil
}

// reactivate creates a fresh client row for an existing person, provided no
// active client exists for them.
func (s *clientService) reactivate(ctx context.Context, person *model.Person) (*model.Client, error) {
	if _, err := s.clientRepo.GetActiveByPersonID(ctx, person.ID); err == nil {
		return nil, ErrPersonAlreadyClient
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check active client: %w", err)
	}

	client := &model.Client{
		UserID:   person.UserID,
		PersonID: person.ID,
		Status:   model.ClientStatusActive,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	client.Person = *person
	return client, nil
}

func (s *clientService) GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClientNotFound
	}
	return client, err
}

func (s *clientService) GetClientByUser(ctx context.Context, userID uuid.UUID) (*model.Client, error) {
	client, err := s.clientRepo.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClientNotFound
	}
	return client, err
}

func (s *clientService) SetPaymentActive(ctx context.Context, clientID uuid.UUID, active bool) (*model.Client, error) {
	client, err := s.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	client.IsPaymentActive = active
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return client, nil
}

func (s *clientService) DeactivateClient(ctx context.Context, clientID uuid.UUID) error {
	client, err := s.GetClient(ctx, clientID)
	if err != nil {
		return err
	}
	client.Status = model.ClientStatusInactive
	client.IsPaymentActive = false
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return fmt.Errorf("deactivate client: %w", err)
	}
	return nil
}

func (s *clientService) LinkToBranch(ctx context.Context, clientID, branchID uuid.UUID) (*model.ClientBranch, error) {
	if _, err := s.GetClient(ctx, clientID); err != nil {
		return nil, err
	}
	if _, err := s.branchRepo.GetByID(ctx, branchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("find branch: %w", err)
	}

	if _, err := s.clientBranchRepo.GetActive(ctx, clientID, branchID); err == nil {
		return nil, ErrClientAlreadyLinked
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check link: %w", err)
	}

	link := &model.ClientBranch{
		ClientID: clientID,
		BranchID: branchID,
		Active:   true,
	}
	if err := s.clientBranchRepo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	return link, nil
}

func (s *clientService) UnlinkFromBranch(ctx context.Context, clientID, branchID uuid.UUID) error {
	link, err := s.clientBranchRepo.GetActive(ctx, clientID, branchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotLinked
		}
		return fmt.Errorf("find link: %w", err)
	}
	return s.clientBranchRepo.Deactivate(ctx, link.ID)
}

func (s *clientService) ListByBranch(
	ctx context.Context, callerUserID, branchID uuid.UUID, limit int, cursor *pagination.Cursor,
) (*pagination.Page[model.Client], error) {
	if err := s.authz.RequireBranchAdmin(ctx, callerUserID, branchID); err != nil {
		return nil, err
	}

	limit = pagination.ClampLimit(limit)
	clients, err := s.clientRepo.ListByBranch(ctx, branchID, limit+1, cursor)
	if err != nil {
		return nil, fmt.Errorf("list clients by branch: %w", err)
	}
	return pagination.BuildPage(clients, limit, func(c model.Client) (time.Time, uuid.UUID) {
		return c.CreatedAt, c.ID
	}), nil
}

var _ ClientService = (*clientService)(nil)

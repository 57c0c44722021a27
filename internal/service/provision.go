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
	"fitchain/gymhub/internal/observability/metrics"
	"fitchain/gymhub/internal/repository"
	"fitchain/gymhub/pkg/crypto"
)

// NewAccountInput carries the common fields of every staff/client
// provisioning flow.
type NewAccountInput struct {
	Email          string
	FirstName      string
	LastName       string
	DocumentType   model.DocumentType
	DocumentNumber string
	Phone          string
	BirthDate      *time.Time
}

// accountProvisioner creates the user + person + role-assignment triple that
// every admin/trainer/client provisioning flow starts with. Writes are plain
// inserts; when a later step fails, the recorded compensations run in
// reverse order. Compensation failures are only logged.
type accountProvisioner struct {
	userRepo   repository.UserRepository
	personRepo repository.PersonRepository
	roleRepo   repository.RoleAssignmentRepository
	mail       MailSender
	logger     *zap.Logger
}

type provisionedAccount struct {
	User         *model.User
	Person       *model.Person
	TempPassword string

	undo []func(context.Context) error
}

// pushUndo records a compensating delete for a completed step.
func (a *provisionedAccount) pushUndo(fn func(context.Context) error) {
	a.undo = append(a.undo, fn)
}

// Compensate rolls back completed steps in reverse order.
func (a *provisionedAccount) Compensate(ctx context.Context, logger *zap.Logger) {
	for i := len(a.undo) - 1; i >= 0; i-- {
		if err := a.undo[i](ctx); err != nil {
			logger.Error("provisioning compensation failed", zap.Error(err))
		}
	}
}

func (p *accountProvisioner) provision(
	ctx context.Context, in NewAccountInput, role model.Role, branchID *uuid.UUID,
) (*provisionedAccount, error) {
	// 1. Email must be free.
	if _, err := p.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	// 2. Document must be free.
	if _, err := p.personRepo.GetByDocument(ctx, in.DocumentType, in.DocumentNumber); err == nil {
		return nil, ErrPersonDocumentTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check document: %w", err)
	}

	// 3. Create the user with a temporary password.
	tempPassword, err := crypto.GenerateTempPassword()
	if err != nil {
		return nil, fmt.Errorf("generate temp password: %w", err)
	}
	hash, err := crypto.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("hash temp password: %w", err)
	}

	acct := &provisionedAccount{TempPassword: tempPassword}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: hash,
		Status:       model.UserStatusActive,
	}
	if err := p.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	acct.User = user
	acct.pushUndo(func(ctx context.Context) error { return p.userRepo.Delete(ctx, user.ID) })

	// 4. Create the person.
	person := &model.Person{
		UserID:         user.ID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
		Phone:          in.Phone,
		BirthDate:      in.BirthDate,
	}
	if err := p.personRepo.Create(ctx, person); err != nil {
		acct.Compensate(ctx, p.logger)
		return nil, fmt.Errorf("create person: %w", err)
	}
	acct.Person = person
	acct.pushUndo(func(ctx context.Context) error { return p.personRepo.Delete(ctx, person.ID) })

	// 5. Grant the role.
	assignment := &model.RoleAssignment{
		UserID:   user.ID,
		Role:     role,
		BranchID: branchID,
		Active:   true,
	}
	if err := p.roleRepo.Create(ctx, assignment); err != nil {
		acct.Compensate(ctx, p.logger)
		return nil, fmt.Errorf("create role assignment: %w", err)
	}
	acct.pushUndo(func(ctx context.Context) error { return p.roleRepo.Delete(ctx, assignment.ID) })

	metrics.AccountsProvisionedTotal.WithLabelValues(string(role)).Inc()
	return acct, nil
}

// sendWelcome mails the temporary password, fire-and-forget.
func (p *accountProvisioner) sendWelcome(acct *provisionedAccount) {
	if p.mail == nil {
		return
	}
	go func() {
		body := fmt.Sprintf(
			"Hello %s,\n\nYour account has been created.\nTemporary password: %s\n\nPlease change it after your first sign-in.\n",
			acct.Person.FirstName, acct.TempPassword,
		)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := p.mail.Send(ctx, acct.User.Email, "Welcome to the gym", body); err != nil {
			p.logger.Error("failed to send welcome email",
				zap.String("email", acct.User.Email), zap.Error(err))
		}
	}()
}

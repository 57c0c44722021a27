package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/config"
	"fitchain/gymhub/internal/handler"
	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/observability/metrics"
	"fitchain/gymhub/internal/repository"
	"fitchain/gymhub/internal/service"
	jwtpkg "fitchain/gymhub/pkg/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	metrics.MustRegister("gymhub-test")
	os.Exit(m.Run())
}

// routerEnv wires the full HTTP surface against an in-memory database.
type routerEnv struct {
	router *gin.Engine
	jwt    *jwtpkg.Manager

	userRepo repository.UserRepository
	roleRepo repository.RoleAssignmentRepository

	admins  service.AdminService
	clients service.ClientService
}

func setupRouter(t *testing.T) *routerEnv {
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

	stateStore := repository.NewMemoryStateStore()
	jwtManager := jwtpkg.NewManager("test-signing-key", "gymhub-test", 15*time.Minute, time.Hour)

	authz := service.NewAuthzService(roleRepo)
	authService := service.NewAuthService(userRepo, stateStore, jwtManager)
	webhookService := service.NewWebhookService(config.WebhookConfig{
		SigningSecret: "hook-secret",
		ReplayWindow:  time.Hour,
	}, userRepo, stateStore)
	branchService := service.NewBranchService(cityRepo, addressRepo, branchRepo)
	adminService := service.NewAdminService(userRepo, personRepo, roleRepo, adminRepo, branchRepo, nil, logger)
	trainerService := service.NewTrainerService(userRepo, personRepo, roleRepo, trainerRepo, branchRepo, nil, logger)
	clientService := service.NewClientService(userRepo, personRepo, roleRepo, clientRepo, clientBranchRepo, branchRepo, authz, nil, logger)
	invitationService := service.NewInvitationService(invitationRepo, clientRepo, nil, logger)
	chatService := service.NewChatService(chatRepo, clientRepo, trainerRepo, 20)
	postService := service.NewPostService(postRepo, trainerRepo, "https://media.test")
	profileService := service.NewProfileService(userRepo, personRepo, roleRepo, clientRepo, clientBranchRepo, trainerRepo, adminRepo)

	cfg := &config.Config{
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		},
	}

	router := handler.SetupRouter(
		cfg, logger, jwtManager, authz,
		handler.NewAuthHandler(authService),
		handler.NewWebhookHandler(webhookService),
		handler.NewProfileHandler(profileService),
		handler.NewBranchHandler(branchService),
		handler.NewAdminHandler(adminService),
		handler.NewTrainerHandler(trainerService),
		handler.NewClientHandler(clientService),
		handler.NewInvitationHandler(invitationService, clientService),
		handler.NewChatHandler(chatService, clientService, trainerService),
		handler.NewPostHandler(postService),
	)

	return &routerEnv{
		router:   router,
		jwt:      jwtManager,
		userRepo: userRepo,
		roleRepo: roleRepo,
		admins:   adminService,
		clients:  clientService,
	}
}

func (e *routerEnv) accessToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := e.jwt.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	return token
}

// grantRole seeds a user with an active role directly, bypassing provisioning.
func (e *routerEnv) grantRole(t *testing.T, email string, role model.Role) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	user := &model.User{Email: email, PasswordHash: "x", Status: model.UserStatusActive}
	if err := e.userRepo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := e.roleRepo.Create(ctx, &model.RoleAssignment{
		UserID: user.ID,
		Role:   role,
		Active: true,
	}); err != nil {
		t.Fatalf("grant role: %v", err)
	}
	return user.ID
}

func (e *routerEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

var routerSeq int

func newTrainerPayload() map[string]any {
	routerSeq++
	return map[string]any{
		"email":           fmt.Sprintf("coach%d@example.com", routerSeq),
		"first_name":      "Coach",
		"last_name":       "Taylor",
		"document_type":   string(model.DocumentTypeNationalID),
		"document_number": fmt.Sprintf("RT-%06d", routerSeq),
	}
}

func TestTrainerProvisioningIsAdminScoped(t *testing.T) {
	env := setupRouter(t)

	adminID := env.grantRole(t, "admin@example.com", model.RoleAdmin)
	superID := env.grantRole(t, "root@example.com", model.RoleSuperAdmin)
	clientID := env.grantRole(t, "member@example.com", model.RoleClient)

	// Branch admins provision trainers.
	rec := env.do(t, http.MethodPost, "/api/v1/admin/trainers", env.accessToken(t, adminID), newTrainerPayload())
	if rec.Code != http.StatusOK {
		t.Fatalf("admin provisioning: status %d, body %s", rec.Code, rec.Body.String())
	}

	// Super admins pass the same gate.
	rec = env.do(t, http.MethodPost, "/api/v1/admin/trainers", env.accessToken(t, superID), newTrainerPayload())
	if rec.Code != http.StatusOK {
		t.Fatalf("super admin provisioning: status %d, body %s", rec.Code, rec.Body.String())
	}

	// Clients are rejected at the role gate.
	rec = env.do(t, http.MethodPost, "/api/v1/admin/trainers", env.accessToken(t, clientID), newTrainerPayload())
	if rec.Code != http.StatusForbidden {
		t.Fatalf("client provisioning: status %d, want 403", rec.Code)
	}

	// No token at all never reaches the role gate.
	rec = env.do(t, http.MethodPost, "/api/v1/admin/trainers", "", newTrainerPayload())
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous provisioning: status %d, want 401", rec.Code)
	}
}

func TestBranchWritesStaySuperAdminOnly(t *testing.T) {
	env := setupRouter(t)

	adminID := env.grantRole(t, "admin@example.com", model.RoleAdmin)
	superID := env.grantRole(t, "root@example.com", model.RoleSuperAdmin)

	payload := map[string]any{
		"name":       "Downtown",
		"city_name":  "Springfield",
		"city_state": "IL",
		"street":     "Main St",
		"number":     "100",
		"capacity":   200,
	}

	rec := env.do(t, http.MethodPost, "/api/v1/super/branches", env.accessToken(t, adminID), payload)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("admin branch create: status %d, want 403", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/super/branches", env.accessToken(t, superID), payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("super branch create: status %d, body %s", rec.Code, rec.Body.String())
	}
}

package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rasoilink/rasoilink-backend/internal/users"
	"github.com/rasoilink/rasoilink-backend/pkg/config"
	pkgmodels "github.com/rasoilink/rasoilink-backend/pkg/db/models"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubRegisterUserRepo struct {
	data      map[string]*pkgmodels.User
	created   *pkgmodels.User
	createErr error
}

func newStubRegisterUserRepo() *stubRegisterUserRepo {
	return &stubRegisterUserRepo{data: map[string]*pkgmodels.User{}}
}

func (s *stubRegisterUserRepo) FindByEmail(ctx context.Context, email string) (*pkgmodels.User, error) {
	if user, ok := s.data[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRegisterUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*pkgmodels.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	s.data[dto.Email] = user
	s.created = user
	return user, nil
}

func newRegisterTestService(t *testing.T) (RegisterService, *stubRegisterUserRepo) {
	t.Helper()
	userRepo := newStubRegisterUserRepo()
	svc, err := NewRegisterService(RegisterServiceParams{
		TxRunner: stubTxRunner{},
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return userRepo
		},
		PasswordConfig: config.PasswordConfig{MinLength: 6},
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	return svc, userRepo
}

func sampleRegisterRequest(email string, role enums.UserRole) RegisterRequest {
	return RegisterRequest{
		Name:         "Asha Devi",
		Email:        email,
		Password:     "Secret123!",
		Role:         role,
		BusinessName: "Asha Chaat Corner",
		Location:     "Mumbai",
	}
}

func TestRegisterCreatesVendor(t *testing.T) {
	svc, userRepo := newRegisterTestService(t)
	req := sampleRegisterRequest("new@example.com", enums.UserRoleVendor)

	dto, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if userRepo.created == nil {
		t.Fatalf("expected user to be created")
	}
	if userRepo.created.Role != enums.UserRoleVendor {
		t.Fatalf("expected vendor role, got %s", userRepo.created.Role)
	}
	if userRepo.created.PasswordHash == req.Password {
		t.Fatalf("password stored in plain text")
	}
	if dto == nil || dto.Email != "new@example.com" {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if dto.Rating != 0 || dto.TotalReviews != 0 {
		t.Fatalf("new account should start with an empty rating accumulator")
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, userRepo := newRegisterTestService(t)
	req := sampleRegisterRequest("  Mixed@Example.COM ", enums.UserRoleSupplier)
	req.Specialties = []string{"Vegetables", "Spices"}

	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if userRepo.created.Email != "mixed@example.com" {
		t.Fatalf("expected lowercased email, got %q", userRepo.created.Email)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, userRepo := newRegisterTestService(t)
	userRepo.data["taken@example.com"] = &pkgmodels.User{ID: uuid.New(), Email: "taken@example.com"}

	_, err := svc.Register(context.Background(), sampleRegisterRequest("taken@example.com", enums.UserRoleVendor))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _ := newRegisterTestService(t)
	req := sampleRegisterRequest("weak@example.com", enums.UserRoleVendor)
	req.Password = "abc"

	_, err := svc.Register(context.Background(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterRejectsVendorSpecialties(t *testing.T) {
	svc, _ := newRegisterTestService(t)
	req := sampleRegisterRequest("veg@example.com", enums.UserRoleVendor)
	req.Specialties = []string{"Vegetables"}

	_, err := svc.Register(context.Background(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	svc, _ := newRegisterTestService(t)
	req := sampleRegisterRequest("role@example.com", "admin")

	_, err := svc.Register(context.Background(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

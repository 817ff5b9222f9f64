package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"luma-service/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mockUserRepo struct {
	CreateFn        func(ctx context.Context, u *models.User) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailFn func(ctx context.Context, email string) (bool, error)
	UpdateRoleFn    func(ctx context.Context, id uuid.UUID, role models.Role) error
	ListFn          func(ctx context.Context, limit, offset int) ([]*models.User, int64, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFn != nil {
		return m.ExistsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(ctx, id, role)
	}
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]*models.User, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

type mockEmployeeRepo struct {
	CreateFn      func(ctx context.Context, e *models.Employee) error
	GetByUserIDFn func(ctx context.Context, userID uuid.UUID) (*models.Employee, error)
}

func (m *mockEmployeeRepo) Create(ctx context.Context, e *models.Employee) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *mockEmployeeRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Employee, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, nil
}

type mockHasher struct{}

func (mockHasher) Hash(password string) (string, error) { return "hash:" + password, nil }
func (mockHasher) Compare(hash, password string) bool   { return hash == "hash:"+password }

type mockTokens struct {
	SignAccessFn func(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error)
}

func (m *mockTokens) SignAccess(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error) {
	if m.SignAccessFn != nil {
		return m.SignAccessFn(ctx, sub, role, ttl)
	}
	return "token", time.Now().Add(ttl), nil
}

func (m *mockTokens) ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error) {
	return nil, errors.New("not implemented")
}

func newAuthService(users *mockUserRepo, employees *mockEmployeeRepo) *AuthService {
	return NewAuthService(users, employees, mockHasher{}, &mockTokens{}, 30*time.Minute, zap.NewNop())
}

func adminCtx() context.Context {
	return WithRole(WithUserID(context.Background(), uuid.New()), models.RoleAdmin)
}

func TestRegister(t *testing.T) {
	var created *models.User
	users := &mockUserRepo{
		CreateFn: func(_ context.Context, u *models.User) error {
			created = u
			return nil
		},
	}
	svc := newAuthService(users, &mockEmployeeRepo{})

	u, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != models.RoleClient {
		t.Errorf("role = %s, self-registration must yield client", u.Role)
	}
	if u.PasswordHash == "secret123" {
		t.Error("password must be hashed")
	}
	if !u.Active {
		t.Error("new accounts must be active")
	}
	if created == nil || created.ID != u.ID {
		t.Error("user was not persisted")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		ExistsByEmailFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
	}
	svc := newAuthService(users, &mockEmployeeRepo{})

	if _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret123"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("err = %v, want email exists", err)
	}
}

func TestLogin(t *testing.T) {
	userID := uuid.New()
	active := &models.User{
		ID:           userID,
		Email:        "ana@example.com",
		PasswordHash: "hash:secret123",
		Role:         models.RoleClient,
		Active:       true,
	}

	cases := []struct {
		name     string
		user     *models.User
		password string
		wantErr  error
	}{
		{"success", active, "secret123", nil},
		{"wrong password", active, "nope", ErrInvalidCredentials},
		{"unknown email", nil, "secret123", ErrInvalidCredentials},
		{"inactive account", &models.User{ID: userID, PasswordHash: "hash:secret123", Active: false}, "secret123", ErrInvalidCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := &mockUserRepo{
				GetByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return tc.user, nil },
			}
			svc := newAuthService(users, &mockEmployeeRepo{})

			token, exp, u, err := svc.Login(context.Background(), "ana@example.com", tc.password)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("login: %v", err)
			}
			if token == "" || exp.IsZero() {
				t.Error("expected a signed token with expiry")
			}
			if u == nil || u.ID != userID {
				t.Error("login must return the user")
			}
		})
	}
}

func TestCreateUser(t *testing.T) {
	var createdEmp *models.Employee
	employees := &mockEmployeeRepo{
		CreateFn: func(_ context.Context, e *models.Employee) error {
			createdEmp = e
			return nil
		},
	}
	svc := newAuthService(&mockUserRepo{}, employees)

	position := "welder"
	u, err := svc.CreateUser(adminCtx(), CreateUserInput{
		Name:     "Boris",
		Email:    "boris@example.com",
		Password: "secret123",
		Role:     models.RoleEmployee,
		Position: &position,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Role != models.RoleEmployee {
		t.Errorf("role = %s, want employee", u.Role)
	}
	if createdEmp == nil {
		t.Fatal("employee accounts must get a profile")
	}
	if createdEmp.UserID != u.ID {
		t.Error("profile must reference the new user")
	}
	if createdEmp.Position == nil || *createdEmp.Position != position {
		t.Error("profile must carry the position")
	}
}

func TestCreateUserRejections(t *testing.T) {
	clientCaller := WithRole(WithUserID(context.Background(), uuid.New()), models.RoleClient)
	employeeCaller := WithRole(WithUserID(context.Background(), uuid.New()), models.RoleEmployee)

	in := CreateUserInput{Name: "X", Email: "x@example.com", Password: "secret123", Role: models.RoleEmployee}

	cases := []struct {
		name string
		ctx  context.Context
		in   CreateUserInput
		want error
	}{
		{"anonymous", context.Background(), in, ErrUnauthorized},
		{"client caller", clientCaller, in, ErrForbidden},
		{"employee caller", employeeCaller, in, ErrForbidden},
		{"invalid role", adminCtx(), CreateUserInput{Name: "X", Email: "x@example.com", Password: "p", Role: "ROLE_GOD"}, ErrInvalidRole},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newAuthService(&mockUserRepo{}, &mockEmployeeRepo{})
			if _, err := svc.CreateUser(tc.ctx, tc.in); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUpdateUserRole(t *testing.T) {
	userID := uuid.New()
	var roleWritten models.Role
	var createdEmp *models.Employee

	users := &mockUserRepo{
		GetByIDFn: func(_ context.Context, id uuid.UUID) (*models.User, error) {
			if id != userID {
				return nil, nil
			}
			return &models.User{ID: userID, Role: models.RoleClient, Active: true}, nil
		},
		UpdateRoleFn: func(_ context.Context, _ uuid.UUID, role models.Role) error {
			roleWritten = role
			return nil
		},
	}
	employees := &mockEmployeeRepo{
		CreateFn: func(_ context.Context, e *models.Employee) error {
			createdEmp = e
			return nil
		},
	}
	svc := newAuthService(users, employees)

	u, err := svc.UpdateUserRole(adminCtx(), userID, models.RoleEmployee)
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if u.Role != models.RoleEmployee || roleWritten != models.RoleEmployee {
		t.Error("role must be updated")
	}
	if createdEmp == nil || createdEmp.UserID != userID {
		t.Error("promotion to employee must create the missing profile")
	}

	if _, err := svc.UpdateUserRole(adminCtx(), uuid.New(), models.RoleAdmin); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing user err = %v, want not found", err)
	}
	if _, err := svc.UpdateUserRole(adminCtx(), userID, "ROLE_GOD"); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("invalid role err = %v, want invalid role", err)
	}
}

func TestListUsersAdminOnly(t *testing.T) {
	users := &mockUserRepo{
		ListFn: func(_ context.Context, _, _ int) ([]*models.User, int64, error) {
			return []*models.User{{ID: uuid.New()}}, 1, nil
		},
	}
	svc := newAuthService(users, &mockEmployeeRepo{})

	list, total, err := svc.ListUsers(adminCtx(), 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Errorf("total=%d len=%d, want 1/1", total, len(list))
	}

	employeeCaller := WithRole(WithUserID(context.Background(), uuid.New()), models.RoleEmployee)
	if _, _, err := svc.ListUsers(employeeCaller, 10, 0); !errors.Is(err, ErrForbidden) {
		t.Errorf("employee err = %v, want forbidden", err)
	}
}

// A profile that already exists must not be recreated on a repeat promotion.
func TestUpdateUserRoleKeepsExistingProfile(t *testing.T) {
	userID := uuid.New()
	users := &mockUserRepo{
		GetByIDFn: func(_ context.Context, _ uuid.UUID) (*models.User, error) {
			return &models.User{ID: userID, Role: models.RoleEmployee, Active: true}, nil
		},
	}
	employees := &mockEmployeeRepo{
		GetByUserIDFn: func(_ context.Context, _ uuid.UUID) (*models.Employee, error) {
			return &models.Employee{ID: uuid.New(), UserID: userID}, nil
		},
		CreateFn: func(_ context.Context, _ *models.Employee) error {
			return errors.New("must not create a second profile")
		},
	}
	svc := newAuthService(users, employees)

	if _, err := svc.UpdateUserRole(adminCtx(), userID, models.RoleEmployee); err != nil {
		t.Fatalf("update role: %v", err)
	}
}

package service

import (
	"context"
	"time"

	"luma-service/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService struct {
	users     UserRepo
	employees EmployeeRepo
	hasher    PasswordHasher
	tokens    TokenProvider

	accessTTL time.Duration
	now       func() time.Time

	log *zap.Logger
}

type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error
	List(ctx context.Context, limit, offset int) ([]*models.User, int64, error)
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *models.Employee) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Employee, error)
}

func NewAuthService(users UserRepo, employees EmployeeRepo, hasher PasswordHasher, tokens TokenProvider, accessTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		employees: employees,
		hasher:    hasher,
		tokens:    tokens,
		accessTTL: accessTTL,
		now:       time.Now,
		log:       log,
	}
}

// Register creates a self-service account. Self-registration always yields
// the client role; staff accounts go through CreateUser.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleClient,
		Active:       true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", u.ID.String()))
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	if user == nil || !user.Active || !s.hasher.Compare(user.PasswordHash, password) {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	access, exp, err := s.tokens.SignAccess(ctx, user.ID, string(user.Role), s.accessTTL)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	return access, exp, user, nil
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
	Position *string
}

// CreateUser is the admin path for provisioning employees and other admins.
// Employee accounts get an employee profile so ledger entries can be
// attributed to them.
func (s *AuthService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if _, role, err := requireAuth(ctx); err != nil {
		return nil, err
	} else if role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	if !models.ValidRole(in.Role) {
		return nil, ErrInvalidRole
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Active:       true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	if in.Role == models.RoleEmployee {
		emp := &models.Employee{
			ID:        uuid.New(),
			UserID:    u.ID,
			Position:  in.Position,
			CreatedAt: s.now(),
		}
		if err := s.employees.Create(ctx, emp); err != nil {
			return nil, err
		}
	}

	s.log.Info("user created", zap.String("user_id", u.ID.String()), zap.String("role", string(in.Role)))
	return u, nil
}

func (s *AuthService) UpdateUserRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	if _, callerRole, err := requireAuth(ctx); err != nil {
		return nil, err
	} else if callerRole != models.RoleAdmin {
		return nil, ErrForbidden
	}

	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	user.Role = role

	if role == models.RoleEmployee {
		emp, err := s.employees.GetByUserID(ctx, id)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			if err := s.employees.Create(ctx, &models.Employee{
				ID:        uuid.New(),
				UserID:    id,
				CreatedAt: s.now(),
			}); err != nil {
				return nil, err
			}
		}
	}

	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, int64, error) {
	if _, role, err := requireAuth(ctx); err != nil {
		return nil, 0, err
	} else if role != models.RoleAdmin {
		return nil, 0, ErrForbidden
	}
	return s.users.List(ctx, limit, offset)
}

func (s *AuthService) ValidateAccess(ctx context.Context, token string) (*Claims, error) {
	return s.tokens.ParseAndValidateAccess(ctx, token)
}

package services

import (
	"context"
	"strings"

	"recipehub_backend/internal/auth"
	"recipehub_backend/internal/logger"
	"recipehub_backend/internal/models"
	"recipehub_backend/internal/repositories"
	"recipehub_backend/internal/services/dto"
	"recipehub_backend/pkg/apperrors"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// FirstAdmin - учетка администратора, создаваемая при старте
type FirstAdmin struct {
	Name     string
	Email    string
	Password string
}

type AuthService struct {
	users       *repositories.UserRepository
	roles       *repositories.RoleRepository
	permissions *repositories.PermissionRepository
	hasher      auth.PasswordHasher
	tokens      *auth.TokenManager
}

func NewAuthService(
	users *repositories.UserRepository,
	roles *repositories.RoleRepository,
	permissions *repositories.PermissionRepository,
	hasher auth.PasswordHasher,
	tokens *auth.TokenManager,
) *AuthService {
	return &AuthService{
		users:       users,
		roles:       roles,
		permissions: permissions,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// ============================================
// РЕГИСТРАЦИЯ И ВХОД
// ============================================

// Register создает пользователя с ролью owner и сразу выдает токен
func (s *AuthService) Register(ctx context.Context, db *gorm.DB, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	db = db.WithContext(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.users.FindByEmail(db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	user := &models.User{Name: strings.TrimSpace(req.Name), Email: email, PasswordHash: hash}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.users.Create(tx, repositories.System(), user); err != nil {
			return err
		}
		return s.assignRole(tx, user, auth.RoleOwner)
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID)
	return s.issue(db, user.ID)
}

func (s *AuthService) Login(ctx context.Context, db *gorm.DB, req dto.LoginRequest) (*dto.AuthResponse, error) {
	db = db.WithContext(ctx)

	user, err := s.users.FindByEmail(db, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Check(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "Failed login attempt", "email", req.Email)
		return nil, apperrors.ErrInvalidCredentials
	}

	logger.CtxDebug(ctx, "User logged in", "user_id", user.ID)
	return s.issue(db, user.ID)
}

// ResolveIdentity проверяет токен и собирает Identity из актуальных ролей.
// Удаленный пользователь с живым токеном считается неавторизованным.
func (s *AuthService) ResolveIdentity(ctx context.Context, db *gorm.DB, token string) (auth.Identity, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return auth.Identity{}, err
	}

	user, err := s.users.WithPermissions(db.WithContext(ctx), claims.UserID)
	if apperrors.HasCode(err, apperrors.CodeNotFound) {
		return auth.Identity{}, apperrors.ErrInvalidToken
	}
	if err != nil {
		return auth.Identity{}, err
	}
	return auth.NewIdentity(user), nil
}

// Me - текущий пользователь с ролями и разрешениями
func (s *AuthService) Me(ctx context.Context, db *gorm.DB, caller auth.Identity) (*dto.UserResponse, error) {
	user, err := s.users.WithPermissions(db.WithContext(ctx), caller.UserID)
	if err != nil {
		return nil, err
	}
	return lo.ToPtr(ToUserResponse(user)), nil
}

// ============================================
// РОЛИ И ПЕРВЫЙ АДМИНИСТРАТОР
// ============================================

// SyncRoles приводит роли и разрешения в БД к auth.DefaultRoles
func (s *AuthService) SyncRoles(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range auth.AllPermissions {
			if err := tx.Where(models.Permission{Name: string(p)}).FirstOrCreate(&models.Permission{}).Error; err != nil {
				return apperrors.DatabaseError(err)
			}
		}

		for name, perms := range auth.DefaultRoles {
			role := &models.Role{}
			if err := tx.Where(models.Role{Name: name}).FirstOrCreate(role).Error; err != nil {
				return apperrors.DatabaseError(err)
			}

			names := lo.Map(perms, func(p auth.Permission, _ int) string { return string(p) })
			rows, err := s.permissions.FindByNames(tx, names)
			if err != nil {
				return err
			}
			if err := s.roles.SyncPermissions(tx, role, rows); err != nil {
				return err
			}
		}

		logger.CtxInfo(ctx, "Roles synchronized", "roles", len(auth.DefaultRoles), "permissions", len(auth.AllPermissions))
		return nil
	})
}

// EnsureFirstAdmin создает администратора, если email задан и такого пользователя нет
func (s *AuthService) EnsureFirstAdmin(ctx context.Context, db *gorm.DB, admin FirstAdmin) error {
	if strings.TrimSpace(admin.Email) == "" {
		return nil
	}
	db = db.WithContext(ctx)

	existing, err := s.users.FindByEmail(db, admin.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	user := &models.User{
		Name:         lo.Ternary(admin.Name != "", admin.Name, "Administrator"),
		Email:        strings.ToLower(strings.TrimSpace(admin.Email)),
		PasswordHash: hash,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.users.Create(tx, repositories.System(), user); err != nil {
			return err
		}
		return s.assignRole(tx, user, auth.RoleAdmin)
	})
	if err != nil {
		return err
	}

	logger.CtxInfo(ctx, "First admin created", "user_id", user.ID)
	return nil
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ
// ============================================

func (s *AuthService) assignRole(db *gorm.DB, user *models.User, roleName string) error {
	role, err := s.roles.FindByName(db, roleName)
	if err != nil {
		return err
	}
	if role == nil {
		return apperrors.InternalError(nil).WithDetails(map[string]any{"missing_role": roleName})
	}
	return s.users.AssignRoles(db, user, []models.Role{*role})
}

func (s *AuthService) issue(db *gorm.DB, userID uint) (*dto.AuthResponse, error) {
	user, err := s.users.WithPermissions(db, userID)
	if err != nil {
		return nil, err
	}

	token, expires, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expires,
		User:      ToUserResponse(user),
	}, nil
}

// ToUserResponse ожидает загруженные Roles.Permissions
func ToUserResponse(user *models.User) dto.UserResponse {
	perms := auth.ResolvePermissions(user.Roles).List()
	return dto.UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Roles:       user.RoleNames(),
		Permissions: lo.Map(perms, func(p auth.Permission, _ int) string { return string(p) }),
		CreatedAt:   user.CreatedAt,
	}
}

package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/fieldmask"
	"undangan.link/pkg/queryparams"
	"undangan.link/repositories"
)

// UserServiceError is the typed error set for user operations.
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUserNotFound       UserServiceError = "user not found"
	ErrUsernameTaken      UserServiceError = "username already exists"
	ErrEmailTaken         UserServiceError = "email already exists"
	ErrInvalidRole        UserServiceError = "invalid user role"
	ErrUserCreationFailed UserServiceError = "user could not be created"
	ErrUserUpdateFailed   UserServiceError = "user could not be updated"
	ErrHashingFailed      UserServiceError = "password could not be hashed"
	ErrMaskingFailed      UserServiceError = "field masking failed"
)

// CreateUserInput is the registration payload.
type CreateUserInput struct {
	Name     string
	Username string
	Email    string
	Phone    *string
	Password string
	Role     models.UserRole
}

// UpdateUserInput is a partial profile update; nil fields stay untouched.
type UpdateUserInput struct {
	ID       uint
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

// IUserService is the user operations interface.
type IUserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error)
	// AuthenticateUser returns (nil, nil) on unknown username or wrong
	// password; both outcomes append a login-log row. Account status is
	// deliberately not enforced here.
	AuthenticateUser(ctx context.Context, username, password, ip, userAgent string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUsers(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetUsersPendingApproval(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (*models.User, error)
	ApproveUser(ctx context.Context, userID, approverID uint) (*models.User, error)
}

// UserService implements IUserService.
type UserService struct {
	repo   repositories.IUserRepository
	masker fieldmask.Masker
}

// NewUserService builds the service with the default repository and the
// configured masker.
func NewUserService() IUserService {
	return &UserService{
		repo:   repositories.NewUserRepository(),
		masker: configs.Masker(),
	}
}

// maskUser obscures the PII columns in place. Email masks
// deterministically so its unique index keeps rejecting duplicates.
func (s *UserService) maskUser(user *models.User) error {
	masked, err := s.masker.Mask(user.Name)
	if err != nil {
		return err
	}
	user.Name = masked

	masked, err = s.masker.MaskDeterministic(user.Email)
	if err != nil {
		return err
	}
	user.Email = masked

	if user.Phone != nil && *user.Phone != "" {
		masked, err = s.masker.Mask(*user.Phone)
		if err != nil {
			return err
		}
		user.Phone = &masked
	}
	return nil
}

// unmaskUser restores the PII columns for presentation.
func (s *UserService) unmaskUser(user *models.User) {
	if plain, err := s.masker.Unmask(user.Name); err == nil {
		user.Name = plain
	}
	if plain, err := s.masker.Unmask(user.Email); err == nil {
		user.Email = plain
	}
	if user.Phone != nil {
		if plain, err := s.masker.Unmask(*user.Phone); err == nil {
			user.Phone = &plain
		}
	}
}

func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	// Duplicate checks before the insert; the unique indexes are the
	// backstop for races.
	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	maskedEmail, err := s.masker.MaskDeterministic(input.Email)
	if err != nil {
		return nil, ErrMaskingFailed
	}
	if _, err := s.repo.FindByEmail(ctx, maskedEmail); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := models.User{
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Role:         input.Role,
		Status:       input.Role.InitialStatus(),
	}
	if err := s.maskUser(&user); err != nil {
		return nil, ErrMaskingFailed
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		configslog.Log.Error("CreateUser: insert failed", zap.String("username", input.Username), zap.Error(err))
		return nil, ErrUserCreationFailed
	}

	// Return the row with the plain fields for immediate display.
	user.Name = input.Name
	user.Email = input.Email
	user.Phone = input.Phone
	configslog.SLog.Infof("user created: id=%d username=%s role=%s status=%s",
		user.ID, user.Username, user.Role, user.Status)
	return &user, nil
}

func (s *UserService) AuthenticateUser(ctx context.Context, username, password, ip, userAgent string) (*models.User, error) {
	now := time.Now().UTC()
	logAttempt := func(userID uint, success bool) {
		entry := models.LoginLog{
			UserID:    userID,
			LoginTime: now,
			IPAddress: ip,
			UserAgent: userAgent,
			Success:   success,
		}
		if err := s.repo.CreateLoginLog(ctx, &entry); err != nil {
			configslog.Log.Error("AuthenticateUser: login log insert failed", zap.Error(err))
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logAttempt(0, false)
			return nil, nil
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		logAttempt(user.ID, false)
		return nil, nil
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		configslog.Log.Error("AuthenticateUser: last_login update failed", zap.Uint("userID", user.ID), zap.Error(err))
	}
	logAttempt(user.ID, true)

	user.LastLogin = &now
	s.unmaskUser(user)
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.unmaskUser(user)
	return user, nil
}

func (s *UserService) GetUsers(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	users, total, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	for i := range users {
		s.unmaskUser(&users[i])
	}
	return &queryparams.PaginatedResult{
		Data: users,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  total,
			TotalPages:  queryparams.CalculateTotalPages(total, params.PerPage),
		},
	}, nil
}

func (s *UserService) GetUsersPendingApproval(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.FindByStatus(ctx, models.UserStatusPending)
	if err != nil {
		return nil, err
	}
	for i := range users {
		s.unmaskUser(&users[i])
	}
	return users, nil
}

func (s *UserService) UpdateUser(ctx context.Context, input UpdateUserInput) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		masked, err := s.masker.Mask(*input.Name)
		if err != nil {
			return nil, ErrMaskingFailed
		}
		user.Name = masked
	}
	if input.Email != nil {
		masked, err := s.masker.MaskDeterministic(*input.Email)
		if err != nil {
			return nil, ErrMaskingFailed
		}
		if existing, err := s.repo.FindByEmail(ctx, masked); err == nil && existing.ID != user.ID {
			return nil, ErrEmailTaken
		}
		user.Email = masked
	}
	if input.Phone != nil {
		masked, err := s.masker.Mask(*input.Phone)
		if err != nil {
			return nil, ErrMaskingFailed
		}
		user.Phone = &masked
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashingFailed
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		configslog.Log.Error("UpdateUser: save failed", zap.Uint("id", input.ID), zap.Error(err))
		return nil, ErrUserUpdateFailed
	}
	s.unmaskUser(user)
	return user, nil
}

func (s *UserService) ApproveUser(ctx context.Context, userID, approverID uint) (*models.User, error) {
	if _, err := s.repo.FindByID(ctx, approverID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.repo.Approve(ctx, userID, approverID, time.Now().UTC()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	configslog.SLog.Infof("user approved: id=%d approver=%d", userID, approverID)
	return s.GetUserByID(ctx, userID)
}

var _ IUserService = (*UserService)(nil)

package repositories

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/queryparams"
)

// RoleCount is one row of the users-by-role aggregate.
type RoleCount struct {
	Role  models.UserRole `json:"role"`
	Count int64           `json:"count"`
}

// IUserRepository handles user and login-log persistence.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.User, int64, error)
	FindByStatus(ctx context.Context, status models.UserStatus) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Approve(ctx context.Context, id, approverID uint, at time.Time) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	CreateLoginLog(ctx context.Context, log *models.LoginLog) error
	CountByRole(ctx context.Context) ([]RoleCount, error)
	CountByStatus(ctx context.Context, status models.UserStatus) (int64, error)
}

// UserRepository implements IUserRepository.
type UserRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.User]
}

// NewUserRepository builds a repository on the global DB handle.
func NewUserRepository() IUserRepository {
	return NewUserRepositoryTx(configs.GetDB())
}

// NewUserRepositoryTx builds a repository bound to an open transaction.
func NewUserRepositoryTx(tx *gorm.DB) IUserRepository {
	base := NewBaseRepository[models.User](tx)
	base.SetAllowedSortColumns([]string{"id", "created_at", "username", "status"})
	return &UserRepository{db: tx, base: base}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.getDB(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return r.base.FindByID(ctx, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, ErrNotFound
	}
	var user models.User
	err := r.getDB(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByUsername: DB error", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, ErrNotFound
	}
	var user models.User
	err := r.getDB(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByEmail: DB error", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// FindAllPaginated lists users one page at a time. Unknown sort columns
// fall back to created_at, the status filter is optional.
func (r *UserRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.User, int64, error) {
	params.Validate()

	sortBy := params.SortBy
	if !r.base.SortColumnAllowed(sortBy) {
		sortBy = "created_at"
	}

	query := r.getDB(ctx).Model(&models.User{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		configslog.Log.Error("UserRepository.FindAllPaginated: count error", zap.Error(err))
		return nil, 0, err
	}

	var users []models.User
	err := query.
		Order(sortBy + " " + params.OrderBy).
		Offset(params.CalculateOffset()).
		Limit(params.PerPage).
		Find(&users).Error
	if err != nil {
		configslog.Log.Error("UserRepository.FindAllPaginated: DB error", zap.Error(err))
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) FindByStatus(ctx context.Context, status models.UserStatus) ([]models.User, error) {
	var users []models.User
	err := r.getDB(ctx).Where("status = ?", status).Order("created_at desc").Find(&users).Error
	if err != nil {
		configslog.Log.Error("UserRepository.FindByStatus: DB error", zap.String("status", string(status)), zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == 0 {
		return errors.New("invalid user for update")
	}
	return r.getDB(ctx).Save(user).Error
}

// Approve flips the status and stamps the approval columns in one update.
func (r *UserRepository) Approve(ctx context.Context, id, approverID uint, at time.Time) error {
	result := r.getDB(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      models.UserStatusActive,
		"approved_by": approverID,
		"approved_at": at,
	})
	if result.Error != nil {
		configslog.Log.Error("UserRepository.Approve: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.getDB(ctx).Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("last_login", at).Error
}

func (r *UserRepository) CreateLoginLog(ctx context.Context, log *models.LoginLog) error {
	return r.getDB(ctx).Create(log).Error
}

func (r *UserRepository) CountByRole(ctx context.Context) ([]RoleCount, error) {
	var rows []RoleCount
	err := r.getDB(ctx).Model(&models.User{}).
		Select("role, count(*) as count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("UserRepository.CountByRole: DB error", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (r *UserRepository) CountByStatus(ctx context.Context, status models.UserStatus) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.User{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

var _ IUserRepository = (*UserRepository)(nil)

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/infrastructure/persistence/mappers"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/db"
	apperrors "github.com/estatery/estatery/internal/shared/errors"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := mappers.UserToModel(u)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	u.SetID(model.ID)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := mappers.UserToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":             model.Name,
			"phone":            model.Phone,
			"avatar_url":       model.AvatarURL,
			"password_hash":    model.PasswordHash,
			"google_id":        model.GoogleID,
			"reset_token_hash": model.ResetTokenHash,
			"reset_expires_at": model.ResetExpiresAt,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}

	// Roles only grow, so inserting the missing pairs is enough.
	for i := range model.Roles {
		role := model.Roles[i]
		role.UserID = model.ID
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&role).Error; err != nil {
			return fmt.Errorf("failed to attach role %s: %w", role.Role, err)
		}
	}
	return nil
}

func (r *UserRepository) first(ctx context.Context, query string, args ...any) (*user.User, error) {
	var model models.UserModel

	err := db.GetTxFromContext(ctx, r.db).
		Preload("Roles").
		Where(query, args...).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return mappers.UserToDomain(&model)
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*user.User, error) {
	return r.first(ctx, "google_id = ?", googleID)
}

func (r *UserRepository) GetByResetTokenHash(ctx context.Context, hash string) (*user.User, error) {
	return r.first(ctx, "reset_token_hash = ?", hash)
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*user.User, error) {
	out := make(map[uint]*user.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).
		Preload("Roles").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	for i := range rows {
		u, err := mappers.UserToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out[u.ID()] = u
	}
	return out, nil
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.UserModel{})

	if filter.Role != "" {
		sub := tx.Model(&models.UserRoleModel{}).Select("user_id").Where("role = ?", filter.Role.String())
		query = query.Where("id IN (?)", sub)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var rows []models.UserModel
	if err := query.Preload("Roles").
		Order("id ASC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := mapUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role authorization.Role) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserRoleModel{}).
		Where("role = ?", role.String()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}

func mapUsers(rows []models.UserModel) ([]*user.User, error) {
	users := make([]*user.User, 0, len(rows))
	for i := range rows {
		u, err := mappers.UserToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

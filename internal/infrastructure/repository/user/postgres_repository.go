package user

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "chat-server/internal/domain/user"
	"chat-server/internal/infrastructure/database/entities"
	"chat-server/internal/utils/platformerrors"
)

// PostgresRepository persists user accounts.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository builds a user repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the user record. Duplicate username or email yields a
// conflict error.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	entity := entities.NewSchemaUser(u)

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"username or email already taken",
				err,
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create user",
			err,
		)
	}

	u.CreatedAt = entity.CreatedAt
	return nil
}

// FindByEmail fetches a user by email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var entity entities.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"user not found",
				nil,
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch user",
			err,
		)
	}

	return entity.EtoD(), nil
}

// FindByID fetches a user by public identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var entity entities.User
	if err := r.db.WithContext(ctx).
		Where("public_id = ?", id).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("user not found: %s", id),
				nil,
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch user",
			err,
		)
	}

	return entity.EtoD(), nil
}

// ListOthers returns every user except selfID, oldest account first.
func (r *PostgresRepository) ListOthers(ctx context.Context, selfID string) ([]*domain.User, error) {
	var records []entities.User
	if err := r.db.WithContext(ctx).
		Where("public_id <> ?", selfID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list users",
			err,
		)
	}

	result := make([]*domain.User, len(records))
	for i := range records {
		result[i] = records[i].EtoD()
	}
	return result, nil
}

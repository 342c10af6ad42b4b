package message

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "chat-server/internal/domain/message"
	"chat-server/internal/infrastructure/database/entities"
	"chat-server/internal/utils/platformerrors"
)

// PostgresRepository persists messages.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository builds a message repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the message record, assigning its public identifier and
// persistence timestamp.
func (r *PostgresRepository) Create(ctx context.Context, senderID, receiverID, content string, timestamp time.Time) (*domain.Message, error) {
	entity := entities.Message{
		PublicID:   uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  timestamp,
	}

	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create message",
			err,
		)
	}

	return entity.EtoD(), nil
}

// FindConversation fetches every message between the two users, in either
// direction, ordered by timestamp ascending.
func (r *PostgresRepository) FindConversation(ctx context.Context, userA, userB string) ([]*domain.Message, error) {
	var records []entities.Message
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("timestamp ASC").
		Find(&records).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch conversation",
			err,
		)
	}

	result := make([]*domain.Message, len(records))
	for i := range records {
		result[i] = records[i].EtoD()
	}
	return result, nil
}

// FindLastMessage fetches the most recent message between the two users, or
// nil when the conversation is empty.
func (r *PostgresRepository) FindLastMessage(ctx context.Context, userA, userB string) (*domain.Message, error) {
	var entity entities.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("timestamp DESC").
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch last message",
			err,
		)
	}

	return entity.EtoD(), nil
}

// MarkRead flips every unread message from otherUserID to selfUserID to read.
// Calls after the first update zero rows.
func (r *PostgresRepository) MarkRead(ctx context.Context, otherUserID, selfUserID string) error {
	if err := r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", otherUserID, selfUserID, false).
		Update("read", true).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to mark conversation read",
			err,
		)
	}
	return nil
}

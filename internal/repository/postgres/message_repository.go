package postgres

import (
	"context"
	"errors"
	"fmt"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{
		DB: db,
	}
}

func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id uint64) (domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return domain.Message{}, fmt.Errorf("context error: %w", err)
	}

	var message domain.Message

	err := r.DB.WithContext(ctx).Where("message_id = ?", id).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Message{}, apperror.New(apperror.CodeMessageNotFound, "message not found").
				WithDetail("messageId", id)
		}
		return domain.Message{}, fmt.Errorf("failed to find message: %w", err)
	}

	return message, nil
}

func (r *MessageRepository) FindAll(ctx context.Context, userID uint, msgType domain.MessageType, campaignID uint64, limit, offset int) ([]domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var messages []domain.Message

	q := r.DB.WithContext(ctx).Order("created_at DESC")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if msgType != "" {
		q = q.Where("type = ?", msgType)
	}
	if campaignID != 0 {
		q = q.Where("campaign_id = ?", campaignID)
	}
	if err := q.Limit(limit).Offset(offset).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to find messages: %w", err)
	}

	return messages, nil
}

func (r *MessageRepository) Count(ctx context.Context, userID uint, msgType domain.MessageType, campaignID uint64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64

	q := r.DB.WithContext(ctx).Model(&domain.Message{})
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if msgType != "" {
		q = q.Where("type = ?", msgType)
	}
	if campaignID != 0 {
		q = q.Where("campaign_id = ?", campaignID)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}

	return count, nil
}

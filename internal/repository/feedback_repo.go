package repository

import (
	"context"

	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(ctx context.Context, fb *model.Feedback) error
	FindByID(ctx context.Context, id uint) (*model.Feedback, error)
	FindAll(ctx context.Context) ([]*model.Feedback, error)
	Update(ctx context.Context, fb *model.Feedback) error
	Delete(ctx context.Context, id uint) error
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *model.Feedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *feedbackRepository) FindByID(ctx context.Context, id uint) (*model.Feedback, error) {
	var fb model.Feedback
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&fb, id).Error; err != nil {
		return nil, err
	}

	return &fb, nil
}

func (r *feedbackRepository) FindAll(ctx context.Context) ([]*model.Feedback, error) {
	var items []*model.Feedback
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *feedbackRepository) Update(ctx context.Context, fb *model.Feedback) error {
	return r.db.WithContext(ctx).Save(fb).Error
}

func (r *feedbackRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Feedback{}, id).Error
}

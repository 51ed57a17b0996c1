package repository

import (
	"context"

	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
	"gorm.io/gorm"
)

type InformationRepository interface {
	Create(ctx context.Context, info *model.Information) error
	FindByID(ctx context.Context, id uint) (*model.Information, error)
	// FindAll returns newest first; limit <= 0 means no limit.
	FindAll(ctx context.Context, limit int) ([]*model.Information, error)
	Update(ctx context.Context, info *model.Information) error
	Delete(ctx context.Context, id uint) error
}

type informationRepository struct {
	db *gorm.DB
}

func NewInformationRepository(db *gorm.DB) InformationRepository {
	return &informationRepository{db: db}
}

func (r *informationRepository) Create(ctx context.Context, info *model.Information) error {
	return r.db.WithContext(ctx).Create(info).Error
}

func (r *informationRepository) FindByID(ctx context.Context, id uint) (*model.Information, error) {
	var info model.Information
	if err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("UpdatedBy").
		First(&info, id).Error; err != nil {
		return nil, err
	}

	return &info, nil
}

func (r *informationRepository) FindAll(ctx context.Context, limit int) ([]*model.Information, error) {
	query := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("UpdatedBy").
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []*model.Information
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *informationRepository) Update(ctx context.Context, info *model.Information) error {
	return r.db.WithContext(ctx).Save(info).Error
}

func (r *informationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Information{}, id).Error
}

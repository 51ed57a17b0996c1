package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
	"gorm.io/gorm"
)

type KosaKataRepository interface {
	Create(ctx context.Context, item *model.KosaKata) error
	FindByID(ctx context.Context, id uint) (*model.KosaKata, error)
	FindByText(ctx context.Context, text string) (*model.KosaKata, error)
	// MatchText performs the detection-bridge lookup: case-insensitive
	// exact match first, partial match as fallback.
	MatchText(ctx context.Context, text string) (*model.KosaKata, error)
	FindAll(ctx context.Context) ([]*model.KosaKata, error)
	Update(ctx context.Context, item *model.KosaKata) error
	Delete(ctx context.Context, id uint) error
}

type kosaKataRepository struct {
	db *gorm.DB
}

func NewKosaKataRepository(db *gorm.DB) KosaKataRepository {
	return &kosaKataRepository{db: db}
}

func (r *kosaKataRepository) Create(ctx context.Context, item *model.KosaKata) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *kosaKataRepository) FindByID(ctx context.Context, id uint) (*model.KosaKata, error) {
	var item model.KosaKata
	if err := r.db.WithContext(ctx).
		Preload("AddedBy").
		First(&item, id).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *kosaKataRepository) FindByText(ctx context.Context, text string) (*model.KosaKata, error) {
	var item model.KosaKata
	if err := r.db.WithContext(ctx).
		Where("text = ?", text).
		First(&item).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *kosaKataRepository) MatchText(ctx context.Context, text string) (*model.KosaKata, error) {
	lowered := strings.ToLower(text)

	var item model.KosaKata
	err := r.db.WithContext(ctx).
		Preload("AddedBy").
		Where("LOWER(text) = ?", lowered).
		First(&item).Error
	if err == nil {
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Preload("AddedBy").
		Where("LOWER(text) LIKE ?", "%"+lowered+"%").
		First(&item).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *kosaKataRepository) FindAll(ctx context.Context) ([]*model.KosaKata, error) {
	var items []*model.KosaKata
	if err := r.db.WithContext(ctx).
		Preload("AddedBy").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *kosaKataRepository) Update(ctx context.Context, item *model.KosaKata) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *kosaKataRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.KosaKata{}, id).Error
}

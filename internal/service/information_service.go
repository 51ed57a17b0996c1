package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/SyaefulEffendi/bahasaku-server/internal/dto"
	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
	"github.com/SyaefulEffendi/bahasaku-server/internal/policy"
	"github.com/SyaefulEffendi/bahasaku-server/internal/repository"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/apperror"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InformationService interface {
	GetAll(ctx context.Context, limit int) ([]*dto.InformationDetail, error)
	GetByID(ctx context.Context, id uint) (*dto.InformationDetail, error)
	Create(ctx context.Context, callerID uint, input dto.CreateInformationInput, image *dto.FileUpload) (*dto.InformationDetail, error)
	Update(ctx context.Context, callerID, id uint, input dto.UpdateInformationInput, image *dto.FileUpload) (*dto.InformationDetail, error)
	Delete(ctx context.Context, callerID, id uint) error
}

type informationService struct {
	repo     repository.InformationRepository
	userRepo repository.UserRepository
	media    storage.MediaStorage
	log      *zap.Logger
}

func NewInformationService(repo repository.InformationRepository, userRepo repository.UserRepository, media storage.MediaStorage, log *zap.Logger) InformationService {
	return &informationService{
		repo:     repo,
		userRepo: userRepo,
		media:    media,
		log:      log,
	}
}

func (s *informationService) GetAll(ctx context.Context, limit int) ([]*dto.InformationDetail, error) {
	items, err := s.repo.FindAll(ctx, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewInformationDetails(items), nil
}

func (s *informationService) GetByID(ctx context.Context, id uint) (*dto.InformationDetail, error) {
	info, err := s.findInfo(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInformationDetail(info), nil
}

func (s *informationService) Create(ctx context.Context, callerID uint, input dto.CreateInformationInput, image *dto.FileUpload) (*dto.InformationDetail, error) {
	caller, err := resolveCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(caller, policy.InformationManage, 0); err != nil {
		return nil, err
	}

	var imageURL *string
	if image != nil && image.Reader != nil {
		key := uuid.NewString()[:8]
		url, err := s.media.Save(ctx, storage.NamespaceInfoImages, key, image.FileName, storage.ImageExtensions, image.Reader)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	createdBy := caller.ID
	info := &model.Information{
		Title:       input.Title,
		Content:     input.Content,
		ImageURL:    imageURL,
		CreatedByID: &createdBy,
	}

	if err := s.repo.Create(ctx, info); err != nil {
		if imageURL != nil {
			if delErr := s.media.Delete(ctx, storage.NamespaceInfoImages, *imageURL); delErr != nil {
				s.log.Warn("failed to roll back uploaded image", zap.String("url", *imageURL), zap.Error(delErr))
			}
		}
		return nil, err
	}

	created, err := s.findInfo(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewInformationDetail(created), nil
}

func (s *informationService) Update(ctx context.Context, callerID, id uint, input dto.UpdateInformationInput, image *dto.FileUpload) (*dto.InformationDetail, error) {
	caller, err := resolveCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(caller, policy.InformationManage, 0); err != nil {
		return nil, err
	}

	info, err := s.findInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil && *input.Title != "" {
		info.Title = *input.Title
	}
	if input.Content != nil && *input.Content != "" {
		info.Content = *input.Content
	}

	oldImageURL := ""
	newImageURL := ""
	if image != nil && image.Reader != nil {
		key := uuid.NewString()[:8]
		url, err := s.media.Save(ctx, storage.NamespaceInfoImages, key, image.FileName, storage.ImageExtensions, image.Reader)
		if err != nil {
			return nil, err
		}
		if info.ImageURL != nil {
			oldImageURL = *info.ImageURL
		}
		newImageURL = url
		info.ImageURL = &newImageURL
	}

	// The editor reference is overwritten on every mutation.
	updatedBy := caller.ID
	info.UpdatedByID = &updatedBy

	if err := s.repo.Update(ctx, info); err != nil {
		if newImageURL != "" {
			if delErr := s.media.Delete(ctx, storage.NamespaceInfoImages, newImageURL); delErr != nil {
				s.log.Warn("failed to roll back uploaded image", zap.String("url", newImageURL), zap.Error(delErr))
			}
		}
		return nil, err
	}

	if oldImageURL != "" {
		if err := s.media.Delete(ctx, storage.NamespaceInfoImages, oldImageURL); err != nil {
			s.log.Warn("failed to delete superseded image", zap.String("url", oldImageURL), zap.Error(err))
		}
	}

	updated, err := s.findInfo(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInformationDetail(updated), nil
}

func (s *informationService) Delete(ctx context.Context, callerID, id uint) error {
	caller, err := resolveCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(caller, policy.InformationManage, 0); err != nil {
		return err
	}

	info, err := s.findInfo(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if info.ImageURL != nil {
		if err := s.media.Delete(ctx, storage.NamespaceInfoImages, *info.ImageURL); err != nil {
			s.log.Warn("failed to delete image of removed article", zap.String("url", *info.ImageURL), zap.Error(err))
		}
	}

	return nil
}

func (s *informationService) findInfo(ctx context.Context, id uint) (*model.Information, error) {
	info, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: information %d does not exist", apperror.ErrNotFound, id)
		}
		return nil, err
	}
	return info, nil
}

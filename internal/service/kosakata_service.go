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

type KosaKataService interface {
	GetAll(ctx context.Context) ([]*dto.KosaKataDetail, error)
	GetByID(ctx context.Context, id uint) (*dto.KosaKataDetail, error)
	Create(ctx context.Context, callerID uint, input dto.CreateKosaKataInput, video *dto.FileUpload) (*dto.KosaKataDetail, error)
	Update(ctx context.Context, callerID, id uint, input dto.UpdateKosaKataInput, video *dto.FileUpload) (*dto.KosaKataDetail, error)
	Delete(ctx context.Context, callerID, id uint) error
}

type kosaKataService struct {
	repo     repository.KosaKataRepository
	userRepo repository.UserRepository
	media    storage.MediaStorage
	log      *zap.Logger
}

func NewKosaKataService(repo repository.KosaKataRepository, userRepo repository.UserRepository, media storage.MediaStorage, log *zap.Logger) KosaKataService {
	return &kosaKataService{
		repo:     repo,
		userRepo: userRepo,
		media:    media,
		log:      log,
	}
}

func (s *kosaKataService) GetAll(ctx context.Context) ([]*dto.KosaKataDetail, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewKosaKataDetails(items), nil
}

func (s *kosaKataService) GetByID(ctx context.Context, id uint) (*dto.KosaKataDetail, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewKosaKataDetail(item), nil
}

func (s *kosaKataService) Create(ctx context.Context, callerID uint, input dto.CreateKosaKataInput, video *dto.FileUpload) (*dto.KosaKataDetail, error) {
	caller, err := resolveCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(caller, policy.VocabularyManage, 0); err != nil {
		return nil, err
	}

	if video == nil || video.Reader == nil {
		return nil, fmt.Errorf("%w: video file is missing", apperror.ErrInvalidInput)
	}

	if _, err := s.repo.FindByText(ctx, input.Text); err == nil {
		return nil, fmt.Errorf("%w: text must be unique", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := input.Category
	if category == "" {
		category = model.DefaultCategory
	}

	// The entry has no id yet, so the file key is a random prefix.
	key := uuid.NewString()[:8]
	videoURL, err := s.media.Save(ctx, storage.NamespaceVocabularyVideos, key, video.FileName, storage.VideoExtensions, video.Reader)
	if err != nil {
		return nil, err
	}

	addedBy := caller.ID
	item := &model.KosaKata{
		Text:      input.Text,
		VideoURL:  videoURL,
		Category:  category,
		AddedByID: &addedBy,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if delErr := s.media.Delete(ctx, storage.NamespaceVocabularyVideos, videoURL); delErr != nil {
			s.log.Warn("failed to roll back uploaded video", zap.String("url", videoURL), zap.Error(delErr))
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: text must be unique", apperror.ErrConflict)
		}
		return nil, err
	}

	created, err := s.findItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewKosaKataDetail(created), nil
}

func (s *kosaKataService) Update(ctx context.Context, callerID, id uint, input dto.UpdateKosaKataInput, video *dto.FileUpload) (*dto.KosaKataDetail, error) {
	caller, err := resolveCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(caller, policy.VocabularyManage, 0); err != nil {
		return nil, err
	}

	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Text != nil && *input.Text != "" && *input.Text != item.Text {
		if _, err := s.repo.FindByText(ctx, *input.Text); err == nil {
			return nil, fmt.Errorf("%w: text must be unique", apperror.ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		item.Text = *input.Text
	}
	if input.Category != nil && *input.Category != "" {
		item.Category = *input.Category
	}

	oldVideoURL := ""
	if video != nil && video.Reader != nil {
		key := uuid.NewString()[:8]
		newURL, err := s.media.Save(ctx, storage.NamespaceVocabularyVideos, key, video.FileName, storage.VideoExtensions, video.Reader)
		if err != nil {
			return nil, err
		}
		oldVideoURL = item.VideoURL
		item.VideoURL = newURL
	}

	if err := s.repo.Update(ctx, item); err != nil {
		// A failed commit keeps the old file referenced; only the new
		// upload is cleaned up.
		if oldVideoURL != "" {
			if delErr := s.media.Delete(ctx, storage.NamespaceVocabularyVideos, item.VideoURL); delErr != nil {
				s.log.Warn("failed to roll back uploaded video", zap.String("url", item.VideoURL), zap.Error(delErr))
			}
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: text must be unique", apperror.ErrConflict)
		}
		return nil, err
	}

	// The old file is deleted only after the new reference is durable.
	if oldVideoURL != "" {
		if err := s.media.Delete(ctx, storage.NamespaceVocabularyVideos, oldVideoURL); err != nil {
			s.log.Warn("failed to delete superseded video", zap.String("url", oldVideoURL), zap.Error(err))
		}
	}

	updated, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewKosaKataDetail(updated), nil
}

func (s *kosaKataService) Delete(ctx context.Context, callerID, id uint) error {
	caller, err := resolveCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(caller, policy.VocabularyManage, 0); err != nil {
		return err
	}

	item, err := s.findItem(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.media.Delete(ctx, storage.NamespaceVocabularyVideos, item.VideoURL); err != nil {
		s.log.Warn("failed to delete video of removed entry", zap.String("url", item.VideoURL), zap.Error(err))
	}

	return nil
}

func (s *kosaKataService) findItem(ctx context.Context, id uint) (*model.KosaKata, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vocabulary entry %d does not exist", apperror.ErrNotFound, id)
		}
		return nil, err
	}
	return item, nil
}

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
	"gorm.io/gorm"
)

type FeedbackService interface {
	GetAll(ctx context.Context) ([]*dto.FeedbackDetail, error)
	GetByID(ctx context.Context, id uint) (*dto.FeedbackDetail, error)
	Create(ctx context.Context, callerID uint, input dto.CreateFeedbackInput) (*dto.FeedbackDetail, error)
	UpdateStatus(ctx context.Context, callerID, id uint, input dto.UpdateFeedbackInput) (*dto.FeedbackDetail, error)
	Delete(ctx context.Context, callerID, id uint) error
}

type feedbackService struct {
	repo     repository.FeedbackRepository
	userRepo repository.UserRepository
}

func NewFeedbackService(repo repository.FeedbackRepository, userRepo repository.UserRepository) FeedbackService {
	return &feedbackService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *feedbackService) GetAll(ctx context.Context) ([]*dto.FeedbackDetail, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewFeedbackDetails(items), nil
}

func (s *feedbackService) GetByID(ctx context.Context, id uint) (*dto.FeedbackDetail, error) {
	fb, err := s.findFeedback(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewFeedbackDetail(fb), nil
}

func (s *feedbackService) Create(ctx context.Context, callerID uint, input dto.CreateFeedbackInput) (*dto.FeedbackDetail, error) {
	caller, err := resolveCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(caller, policy.FeedbackCreate, 0); err != nil {
		return nil, err
	}

	// The user reference always comes from the token; a user_id in the
	// payload is ignored.
	fb := &model.Feedback{
		UserID:  caller.ID,
		Message: input.Message,
		Status:  model.FeedbackStatusNew,
	}

	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}

	created, err := s.findFeedback(ctx, fb.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewFeedbackDetail(created), nil
}

func (s *feedbackService) UpdateStatus(ctx context.Context, callerID, id uint, input dto.UpdateFeedbackInput) (*dto.FeedbackDetail, error) {
	caller, err := resolveCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(caller, policy.FeedbackModerate, 0); err != nil {
		return nil, err
	}

	if !model.ValidFeedbackStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", apperror.ErrInvalidInput, input.Status)
	}

	fb, err := s.findFeedback(ctx, id)
	if err != nil {
		return nil, err
	}

	fb.Status = input.Status
	if err := s.repo.Update(ctx, fb); err != nil {
		return nil, err
	}

	return dto.NewFeedbackDetail(fb), nil
}

func (s *feedbackService) Delete(ctx context.Context, callerID, id uint) error {
	caller, err := resolveCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(caller, policy.FeedbackModerate, 0); err != nil {
		return err
	}

	if _, err := s.findFeedback(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *feedbackService) findFeedback(ctx context.Context, id uint) (*model.Feedback, error) {
	fb, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: feedback %d does not exist", apperror.ErrNotFound, id)
		}
		return nil, err
	}
	return fb, nil
}

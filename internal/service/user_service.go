package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SyaefulEffendi/bahasaku-server/internal/dto"
	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
	"github.com/SyaefulEffendi/bahasaku-server/internal/policy"
	"github.com/SyaefulEffendi/bahasaku-server/internal/repository"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/apperror"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/storage"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	GetAll(ctx context.Context, callerID uint) ([]*model.User, error)
	GetByID(ctx context.Context, callerID, id uint) (*model.User, error)
	Update(ctx context.Context, callerID, id uint, input dto.UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, callerID, id uint) error
	UploadPhoto(ctx context.Context, callerID, id uint, photo *dto.FileUpload) (*model.User, error)
	ChangePassword(ctx context.Context, callerID, id uint, input dto.ChangePasswordInput) error
}

type userService struct {
	repo  repository.UserRepository
	media storage.MediaStorage
	log   *zap.Logger
}

func NewUserService(repo repository.UserRepository, media storage.MediaStorage, log *zap.Logger) UserService {
	return &userService{
		repo:  repo,
		media: media,
		log:   log,
	}
}

func (s *userService) GetAll(ctx context.Context, callerID uint) ([]*model.User, error) {
	caller, err := resolveCaller(ctx, s.repo, callerID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(caller, policy.UserList, 0); err != nil {
		return nil, err
	}

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, callerID, id uint) (*model.User, error) {
	caller, err := resolveCaller(ctx, s.repo, callerID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(caller, policy.UserRead, id); err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Update(ctx context.Context, callerID, id uint, input dto.UpdateUserInput) (*model.User, error) {
	caller, err := resolveCaller(ctx, s.repo, callerID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(caller, policy.UserUpdate, id); err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil && *input.FullName != "" {
		user.FullName = *input.FullName
	}
	if input.Location != nil {
		user.Location = normalizeOptional(input.Location)
	}
	if input.BirthDate != nil {
		if *input.BirthDate == "" {
			user.BirthDate = nil
		} else {
			birthDate, err := parseBirthDate(input.BirthDate)
			if err != nil {
				return nil, err
			}
			user.BirthDate = birthDate
		}
	}
	if input.UserType != nil && *input.UserType != "" {
		if !model.ValidUserType(*input.UserType) {
			return nil, fmt.Errorf("%w: unknown user type %q", apperror.ErrInvalidInput, *input.UserType)
		}
		user.UserType = *input.UserType
	}

	// Protected fields are silently skipped for non-admin callers, matching
	// the server-trusts-nothing handling of the rest of the payload.
	if caller.IsAdmin() {
		if input.Role != nil && model.ValidRole(*input.Role) {
			user.Role = *input.Role
		}
		if input.Email != nil && *input.Email != "" && *input.Email != user.Email {
			if _, err := s.repo.FindByEmail(ctx, *input.Email); err == nil {
				return nil, fmt.Errorf("%w: email is already registered", apperror.ErrConflict)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user.Email = *input.Email
		}
	}

	if input.Password != nil && *input.Password != "" && (caller.IsAdmin() || caller.ID == user.ID) {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email is already registered", apperror.ErrConflict)
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Delete(ctx context.Context, callerID, id uint) error {
	caller, err := resolveCaller(ctx, s.repo, callerID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(caller, policy.UserDelete, id); err != nil {
		return err
	}

	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}

	// No cascade: feedback, vocabulary and articles authored by this user
	// keep their reference.
	return s.repo.Delete(ctx, id)
}

func (s *userService) UploadPhoto(ctx context.Context, callerID, id uint, photo *dto.FileUpload) (*model.User, error) {
	caller, err := resolveCaller(ctx, s.repo, callerID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(caller, policy.UserPhoto, id); err != nil {
		return nil, err
	}

	if photo == nil || photo.Reader == nil {
		return nil, fmt.Errorf("%w: photo file is missing", apperror.ErrInvalidInput)
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	key := strconv.FormatUint(uint64(id), 10)
	newURL, err := s.media.Save(ctx, storage.NamespaceProfilePhotos, key, photo.FileName, storage.ImageExtensions, photo.Reader)
	if err != nil {
		return nil, err
	}

	oldURL := user.ProfilePicURL
	user.ProfilePicURL = newURL
	if err := s.repo.Update(ctx, user); err != nil {
		// The record is the source of truth; roll the new file back so a
		// failed commit leaves no orphan.
		if delErr := s.media.Delete(ctx, storage.NamespaceProfilePhotos, newURL); delErr != nil {
			s.log.Warn("failed to roll back uploaded photo", zap.String("url", newURL), zap.Error(delErr))
		}
		return nil, err
	}

	if oldURL != "" && oldURL != model.DefaultProfilePicURL {
		if err := s.media.Delete(ctx, storage.NamespaceProfilePhotos, oldURL); err != nil {
			s.log.Warn("failed to delete previous profile photo", zap.String("url", oldURL), zap.Error(err))
		}
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, callerID, id uint, input dto.ChangePasswordInput) error {
	caller, err := resolveCaller(ctx, s.repo, callerID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(caller, policy.UserChangePassword, id); err != nil {
		return err
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		return fmt.Errorf("%w: old password is incorrect", apperror.ErrBadRequest)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hashed)
	return s.repo.Update(ctx, user)
}

func (s *userService) findUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d does not exist", apperror.ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

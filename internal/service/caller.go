package service

import (
	"context"
	"errors"

	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
	"github.com/SyaefulEffendi/bahasaku-server/internal/repository"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/apperror"
	"gorm.io/gorm"
)

// resolveCaller loads the authenticated user behind a token subject. The
// role is read from storage here, never from the token, so role changes
// apply without a new login.
func resolveCaller(ctx context.Context, repo repository.UserRepository, callerID uint) (*model.User, error) {
	caller, err := repo.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}
	return caller, nil
}

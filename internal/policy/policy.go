package policy

import (
	"fmt"

	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/apperror"
)

// Action names one guarded operation. Every controller goes through
// Authorize with one of these instead of doing its own role checks.
type Action string

const (
	UserList            Action = "user.list"
	UserRead            Action = "user.read"
	UserUpdate          Action = "user.update"
	UserUpdateProtected Action = "user.update-protected"
	UserDelete          Action = "user.delete"
	UserPhoto           Action = "user.photo"
	UserChangePassword  Action = "user.change-password"
	VocabularyManage    Action = "vocabulary.manage"
	FeedbackCreate      Action = "feedback.create"
	FeedbackModerate    Action = "feedback.moderate"
	InformationManage   Action = "information.manage"
)

// Authorize evaluates the access rule for action. targetUserID is the user a
// user-scoped action applies to and is ignored for collection-scoped actions.
// Public reads never reach this function.
func Authorize(caller *model.User, action Action, targetUserID uint) error {
	if caller == nil {
		return apperror.ErrUnauthorized
	}

	switch action {
	case FeedbackCreate:
		return nil

	case UserRead, UserUpdate:
		if caller.ID == targetUserID || caller.IsAdmin() {
			return nil
		}
		return fmt.Errorf("%w: you may only access your own profile", apperror.ErrForbidden)

	case UserPhoto, UserChangePassword:
		if caller.ID == targetUserID {
			return nil
		}
		return fmt.Errorf("%w: you may only modify your own account", apperror.ErrForbidden)

	case UserDelete:
		if !caller.IsAdmin() {
			return fmt.Errorf("%w: admin access required", apperror.ErrForbidden)
		}
		if caller.ID == targetUserID {
			return fmt.Errorf("%w: an admin cannot delete their own account through this route", apperror.ErrBadRequest)
		}
		return nil

	case UserList, UserUpdateProtected, VocabularyManage, FeedbackModerate, InformationManage:
		if caller.IsAdmin() {
			return nil
		}
		return fmt.Errorf("%w: admin access required", apperror.ErrForbidden)
	}

	return fmt.Errorf("%w: unknown action %q", apperror.ErrForbidden, action)
}

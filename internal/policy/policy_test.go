package policy_test

import (
	"testing"

	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
	"github.com/SyaefulEffendi/bahasaku-server/internal/policy"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func regularUser(id uint) *model.User {
	return &model.User{ID: id, Role: model.RoleUser}
}

func adminUser(id uint) *model.User {
	return &model.User{ID: id, Role: model.RoleAdmin}
}

func TestAuthorizeMatrix(t *testing.T) {
	testCases := []struct {
		name     string
		caller   *model.User
		action   policy.Action
		targetID uint
		wantErr  error
	}{
		{"nil caller is unauthorized", nil, policy.UserRead, 1, apperror.ErrUnauthorized},

		{"any user may create feedback", regularUser(3), policy.FeedbackCreate, 0, nil},

		{"owner may read own profile", regularUser(5), policy.UserRead, 5, nil},
		{"admin may read any profile", adminUser(1), policy.UserRead, 5, nil},
		{"user may not read another profile", regularUser(5), policy.UserRead, 6, apperror.ErrForbidden},

		{"owner may update own profile", regularUser(5), policy.UserUpdate, 5, nil},
		{"admin may update any profile", adminUser(1), policy.UserUpdate, 5, nil},
		{"user may not update another profile", regularUser(5), policy.UserUpdate, 6, apperror.ErrForbidden},

		{"photo is owner only", regularUser(5), policy.UserPhoto, 5, nil},
		{"admin may not change another user photo", adminUser(1), policy.UserPhoto, 5, apperror.ErrForbidden},
		{"password change is owner only", regularUser(5), policy.UserChangePassword, 5, nil},
		{"admin may not change another user password", adminUser(1), policy.UserChangePassword, 5, apperror.ErrForbidden},

		{"admin may delete a user", adminUser(1), policy.UserDelete, 5, nil},
		{"user may not delete accounts", regularUser(5), policy.UserDelete, 6, apperror.ErrForbidden},
		{"admin self-delete is rejected", adminUser(1), policy.UserDelete, 1, apperror.ErrBadRequest},

		{"admin may list users", adminUser(1), policy.UserList, 0, nil},
		{"user may not list users", regularUser(5), policy.UserList, 0, apperror.ErrForbidden},

		{"admin may manage vocabulary", adminUser(1), policy.VocabularyManage, 0, nil},
		{"user may not manage vocabulary", regularUser(5), policy.VocabularyManage, 0, apperror.ErrForbidden},

		{"admin may moderate feedback", adminUser(1), policy.FeedbackModerate, 0, nil},
		{"user may not moderate feedback", regularUser(5), policy.FeedbackModerate, 0, apperror.ErrForbidden},

		{"admin may manage information", adminUser(1), policy.InformationManage, 0, nil},
		{"user may not manage information", regularUser(5), policy.InformationManage, 0, apperror.ErrForbidden},

		{"admin may set protected fields", adminUser(1), policy.UserUpdateProtected, 5, nil},
		{"user may not set protected fields", regularUser(5), policy.UserUpdateProtected, 5, apperror.ErrForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Authorize(tc.caller, tc.action, tc.targetID)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestAuthorizeUnknownAction(t *testing.T) {
	err := policy.Authorize(adminUser(1), policy.Action("bogus"), 0)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

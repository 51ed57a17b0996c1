package dto

import (
	"io"

	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
)

// FileUpload carries an uploaded multipart file into the service layer.
type FileUpload struct {
	Reader   io.Reader
	FileName string
}

// UserSummary is the short user reference embedded in other projections.
type UserSummary struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func NewUserSummary(u *model.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
	}
}

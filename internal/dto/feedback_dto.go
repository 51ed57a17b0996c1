package dto

import (
	"time"

	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
)

type CreateFeedbackInput struct {
	Message string `json:"message" binding:"required,min=1"`
	// UserID is accepted but ignored: the record always references the
	// authenticated caller.
	UserID *uint `json:"user_id"`
}

type UpdateFeedbackInput struct {
	Status string `json:"status" binding:"required,oneof=New Reviewed Done"`
}

// FeedbackDetail is the canonical projection of a feedback entry.
type FeedbackDetail struct {
	ID        uint         `json:"id"`
	UserID    uint         `json:"user_id"`
	Message   string       `json:"message"`
	Status    string       `json:"status"`
	User      *UserSummary `json:"user,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewFeedbackDetail(f *model.Feedback) *FeedbackDetail {
	return &FeedbackDetail{
		ID:        f.ID,
		UserID:    f.UserID,
		Message:   f.Message,
		Status:    f.Status,
		User:      NewUserSummary(f.User),
		CreatedAt: f.CreatedAt,
	}
}

func NewFeedbackDetails(items []*model.Feedback) []*FeedbackDetail {
	details := make([]*FeedbackDetail, 0, len(items))
	for _, f := range items {
		details = append(details, NewFeedbackDetail(f))
	}
	return details
}

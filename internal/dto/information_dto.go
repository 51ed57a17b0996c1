package dto

import (
	"time"

	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
)

type CreateInformationInput struct {
	Title   string `form:"title" binding:"required,max=255"`
	Content string `form:"content" binding:"required"`
}

type UpdateInformationInput struct {
	Title   *string `form:"title"`
	Content *string `form:"content"`
}

// InformationDetail is the canonical projection of an article. The creator
// and editor collapse to display names, falling back when the referenced
// user no longer exists.
type InformationDetail struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  *string   `json:"image_url"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewInformationDetail(info *model.Information) *InformationDetail {
	createdBy := "Admin"
	if info.CreatedBy != nil {
		createdBy = info.CreatedBy.FullName
	}

	updatedBy := "-"
	if info.UpdatedBy != nil {
		updatedBy = info.UpdatedBy.FullName
	}

	return &InformationDetail{
		ID:        info.ID,
		Title:     info.Title,
		Content:   info.Content,
		ImageURL:  info.ImageURL,
		CreatedBy: createdBy,
		UpdatedBy: updatedBy,
		CreatedAt: info.CreatedAt,
		UpdatedAt: info.UpdatedAt,
	}
}

func NewInformationDetails(items []*model.Information) []*InformationDetail {
	details := make([]*InformationDetail, 0, len(items))
	for _, info := range items {
		details = append(details, NewInformationDetail(info))
	}
	return details
}

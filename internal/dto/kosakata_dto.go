package dto

import (
	"time"

	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
)

type CreateKosaKataInput struct {
	Text     string `form:"text" binding:"required,max=50"`
	Category string `form:"category"`
}

type UpdateKosaKataInput struct {
	Text     *string `form:"text"`
	Category *string `form:"category"`
}

// KosaKataDetail is the canonical projection of a vocabulary entry.
type KosaKataDetail struct {
	ID        uint         `json:"id"`
	Text      string       `json:"text"`
	VideoURL  string       `json:"video_url"`
	Category  string       `json:"category"`
	AddedByID *uint        `json:"added_by_id"`
	AddedBy   *UserSummary `json:"added_by,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewKosaKataDetail(k *model.KosaKata) *KosaKataDetail {
	return &KosaKataDetail{
		ID:        k.ID,
		Text:      k.Text,
		VideoURL:  k.VideoURL,
		Category:  k.Category,
		AddedByID: k.AddedByID,
		AddedBy:   NewUserSummary(k.AddedBy),
		CreatedAt: k.CreatedAt,
	}
}

func NewKosaKataDetails(items []*model.KosaKata) []*KosaKataDetail {
	details := make([]*KosaKataDetail, 0, len(items))
	for _, k := range items {
		details = append(details, NewKosaKataDetail(k))
	}
	return details
}

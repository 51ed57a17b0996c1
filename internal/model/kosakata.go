package model

import "time"

// DefaultCategory is applied when a vocabulary entry is created without one.
const DefaultCategory = "Other"

// KosaKata is one sign-language term with its demonstration video.
type KosaKata struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:50;uniqueIndex;not null" json:"text"`
	VideoURL  string    `gorm:"size:255;not null" json:"video_url"`
	Category  string    `gorm:"size:50;not null;default:'Other'" json:"category"`
	AddedByID *uint     `json:"added_by_id,omitempty"`
	AddedBy   *User     `gorm:"foreignKey:AddedByID;constraint:OnDelete:NO ACTION" json:"added_by,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (KosaKata) TableName() string {
	return "kosa_kata"
}

package model

import "time"

// Information is a published article shown on the application dashboard.
type Information struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	ImageURL    *string    `gorm:"size:255" json:"image_url,omitempty"`
	CreatedByID *uint      `json:"created_by_id,omitempty"`
	CreatedBy   *User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:NO ACTION" json:"created_by,omitempty"`
	UpdatedByID *uint      `json:"updated_by_id,omitempty"`
	UpdatedBy   *User      `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:NO ACTION" json:"updated_by,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Information) TableName() string {
	return "information"
}

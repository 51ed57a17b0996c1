package model

import "time"

// Feedback status values.
const (
	FeedbackStatusNew      = "New"
	FeedbackStatusReviewed = "Reviewed"
	FeedbackStatusDone     = "Done"
)

type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:NO ACTION" json:"user,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Status    string    `gorm:"size:20;not null;default:'New'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ValidFeedbackStatus reports whether s is part of the fixed status set.
func ValidFeedbackStatus(s string) bool {
	return s == FeedbackStatusNew || s == FeedbackStatusReviewed || s == FeedbackStatusDone
}

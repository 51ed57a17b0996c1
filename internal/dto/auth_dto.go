package dto

import "github.com/SyaefulEffendi/bahasaku-server/internal/model"

type RegisterInput struct {
	FullName    string  `json:"full_name" form:"full_name" binding:"required,max=100"`
	Email       string  `json:"email" form:"email" binding:"required,email"`
	Password    string  `json:"password" form:"password" binding:"required,min=8"`
	UserType    string  `json:"user_type" form:"user_type" binding:"required,oneof=Deaf Hearing General"`
	PhoneNumber *string `json:"phone_number" form:"phone_number"`
	Location    *string `json:"location" form:"location"`
	BirthDate   *string `json:"birth_date" form:"birth_date"`
	// Role is honored only when the caller presents a valid Admin token.
	Role *string `json:"role" form:"role"`
}

type LoginInput struct {
	// Identifier matches either the email or the phone number.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

type AuthResponse struct {
	Message     string      `json:"message"`
	AccessToken string      `json:"access_token"`
	User        *model.User `json:"user"`
}

package dto

type UpdateUserInput struct {
	FullName  *string `json:"full_name"`
	Location  *string `json:"location"`
	BirthDate *string `json:"birth_date"`
	UserType  *string `json:"user_type"`

	// Protected fields, applied only when the caller is an Admin.
	Role  *string `json:"role"`
	Email *string `json:"email"`

	// Password may be changed by the owner or an Admin through this route.
	Password *string `json:"password"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

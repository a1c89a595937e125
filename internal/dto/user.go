package dto

// CreateUserRequest is the registration payload.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required,min=8,max=16" example:"s3cretpass"`
	FullName string `json:"full_name" binding:"required" example:"Jane Doe"`
}

// UpdateUserRequest defines the data allowed for updating the current user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	FullName           *string `json:"full_name" binding:"omitempty,min=1,max=255"`
	AvatarURL          *string `json:"avatar_url" binding:"omitempty,url"`
	GlobalInstructions *string `json:"global_instructions" binding:"omitempty,max=4000"`
	Password           *string `json:"password" binding:"omitempty,min=8,max=16"`
}

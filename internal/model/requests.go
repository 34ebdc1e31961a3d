package model

type SignupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	FullName        string `json:"fullName" validate:"required,min=2,max=100"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	AvatarURL       string `json:"avatarUrl" validate:"omitempty,url"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SendMessageRequest struct {
	RecipientID string `json:"recipientId" validate:"required,uuid4"`
	Content     string `json:"content" validate:"required,max=4000"`
}

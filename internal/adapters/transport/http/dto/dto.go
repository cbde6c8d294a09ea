package dto

type RegisterDTO struct {
	Username string `json:"username" validate:"required,alphanum,min=4,max=25"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,strongpwd"`
	FullName string `json:"fullName" validate:"required,min=1,max=100"`
}

// LoginDTO accepts the username or the email in a single identity field. The
// password is always required.
type LoginDTO struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strongpwd"`
}

type UpdateProfileDTO struct {
	FullName string `json:"fullName" validate:"omitempty,min=1,max=100"`
	Email    string `json:"email"    validate:"omitempty,email"`
}

type CreatePostDTO struct {
	Content string `json:"content" validate:"required,max=280"`
}

type UpdatePostDTO struct {
	Content string `json:"content" validate:"required,max=280"`
}

type PublishVideoDTO struct {
	Title       string `form:"title"       validate:"required,min=1,max=120"`
	Description string `form:"description" validate:"required"`
}

type UpdateVideoDTO struct {
	Title       string `form:"title"       validate:"required,min=1,max=120"`
	Description string `form:"description" validate:"required"`
}

type ListVideosQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Query    string `form:"query"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
	UserID   string `form:"userId"`
}

package dto

// RegistrationRequest - форма регистрации нового пользователя
type RegistrationRequest struct {
	Email      string                 `json:"email" validate:"required,email,max=100"`
	Name       string                 `json:"name" validate:"required,min=2,max=30,personname"`
	BirthDate  string                 `json:"birth_date" validate:"required,datetime=2006-01-02,adult"`
	Height     int                    `json:"height" validate:"required,min=100,max=250"`
	BodyType   string                 `json:"body_type" validate:"required,oneof=average slim athletic full muscular"`
	Gender     string                 `json:"gender" validate:"required,oneof=male female"`
	CityID     uint                   `json:"city_id" validate:"required"`
	DeviceInfo map[string]interface{} `json:"device_info"`
}

type RegistrationResponse struct {
	Success bool   `json:"success"`
	UserID  uint   `json:"user_id"`
	Message string `json:"message"`
}

// LoginRequest - форма логина (выдача bearer-токена)
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Success bool   `json:"success"`
	UserID  uint   `json:"user_id"`
	Token   string `json:"token"`
}

type ChangePasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,nefield=OldPassword"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// MessageResponse - общий конверт успешного мутирующего запроса
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

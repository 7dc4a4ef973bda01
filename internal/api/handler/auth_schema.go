package handler

type registerRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=50"`
	Surname     string `json:"surname"     validate:"required,min=2,max=50"`
	PhoneNumber string `json:"phoneNumber" validate:"required,len=12"`
	Password    string `json:"password"    validate:"required,min=6,max=72"`
	Email       string `json:"email"       validate:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=2,max=50"`
	Surname     *string `json:"surname"     validate:"omitempty,min=2,max=50"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,len=12"`
	Email       *string `json:"email"       validate:"omitempty,email"`
}

type authResponse struct {
	UserID  int64  `json:"userId"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Token   string `json:"token"`
}

type userResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

type successResponse struct {
	Success bool `json:"success"`
}

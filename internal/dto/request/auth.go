package request

type RegisterRequest struct {
	Username string `json:"username" validate:"required,notblank,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

package user

import "context"

type User struct {
	ID    string `json:"id"`
	Login string `json:"login"`
}

type IUserUsecase interface {
	Register(ctx context.Context, request RegisterRequest) (User, error)
	Login(ctx context.Context, request LoginRequest) (LoginResponse, error)
	List(ctx context.Context) ([]User, error)
}

type RegisterRequest struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

type LoginRequest struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

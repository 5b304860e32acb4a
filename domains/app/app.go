package app

import (
	"context"
	"time"
)

// IAppUsecase handles the WhatsApp session lifecycle: QR pairing, phone
// pairing, reconnects and logout. The dispatch core never depends on it.
type IAppUsecase interface {
	Login(ctx context.Context) (LoginResponse, error)
	LoginWithCode(ctx context.Context, phoneNumber string) (string, error)
	Logout(ctx context.Context) error
	Reconnect(ctx context.Context) error
	Status(ctx context.Context) StatusResponse
	Devices(ctx context.Context) ([]DevicesResponse, error)
}

type LoginResponse struct {
	ImagePath string        `json:"image_path"`
	Duration  time.Duration `json:"duration"`
	Code      string        `json:"code"`
}

type StatusResponse struct {
	IsConnected bool `json:"is_connected"`
	IsLoggedIn  bool `json:"is_logged_in"`
}

type DevicesResponse struct {
	Name   string `json:"name"`
	Device string `json:"device"`
}

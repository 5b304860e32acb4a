package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	fiberUtils "github.com/gofiber/fiber/v2/utils"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	waLog "go.mau.fi/whatsmeow/util/log"

	"github.com/AzielCF/az-cast/config"
	domainApp "github.com/AzielCF/az-cast/domains/app"
	domainChannel "github.com/AzielCF/az-cast/domains/channel"
	"github.com/AzielCF/az-cast/infrastructure/whatsapp"
	pkgError "github.com/AzielCF/az-cast/pkg/error"
	"github.com/AzielCF/az-cast/validations"
)

type serviceApp struct {
	channelService domainChannel.IChannelUsecase
}

func NewAppService(channelService domainChannel.IChannelUsecase) domainApp.IAppUsecase {
	return &serviceApp{
		channelService: channelService,
	}
}

func (service *serviceApp) Login(_ context.Context) (response domainApp.LoginResponse, err error) {
	client := whatsapp.GetClient()
	currentDB := whatsapp.GetDB()
	if client == nil {
		if currentDB == nil {
			return response, pkgError.ErrWaCLI
		}
		device := currentDB.NewDevice()
		client = whatsmeow.NewClient(device, waLog.Stdout("Client", config.WhatsappLogLevel, true))
		client.EnableAutoReconnect = true
		client.AutoTrustIdentity = true
	}

	// Disconnect for reconnecting
	client.Disconnect()

	chImage := make(chan string)

	ch, err := client.GetQRChannel(context.Background())
	if err != nil {
		logrus.Error(err.Error())
		// This error means that we're already logged in, so ignore it.
		if errors.Is(err, whatsmeow.ErrQRStoreContainsID) {
			_ = client.Connect() // just connect to websocket
			if client.IsLoggedIn() {
				return response, pkgError.ErrAlreadyLoggedIn
			}
			return response, pkgError.ErrSessionSaved
		}
		return response, pkgError.ErrQrChannel
	}

	go func() {
		for evt := range ch {
			response.Code = evt.Code
			response.Duration = evt.Timeout / time.Second / 2
			if evt.Event == "code" {
				qrPath := fmt.Sprintf("%s/scan-qr-%s.png", config.PathQrCode, fiberUtils.UUIDv4())
				err = qrcode.WriteFile(evt.Code, qrcode.Medium, 512, qrPath)
				if err != nil {
					logrus.Error("Error when write qr code to file: ", err)
				}
				go func() {
					time.Sleep(response.Duration * time.Second)
					err := os.Remove(qrPath)
					if err != nil && !os.IsNotExist(err) {
						logrus.Error("error when remove qrImage file", err.Error())
					}
				}()
				chImage <- qrPath
			} else {
				logrus.Error("error when get qrCode", evt.Event, evt.Error)
			}
		}
	}()

	err = client.Connect()
	if err != nil {
		logrus.Error("Error when connect to whatsapp: ", err)
		return response, pkgError.ErrReconnect
	}
	response.ImagePath = <-chImage

	whatsapp.UpdateGlobalClient(client, currentDB)

	return response, nil
}

func (service *serviceApp) LoginWithCode(ctx context.Context, phoneNumber string) (loginCode string, err error) {
	if err = validations.ValidateLoginWithCode(ctx, phoneNumber); err != nil {
		logrus.Errorf("Error when validate login with code: %s", err.Error())
		return loginCode, err
	}

	client := whatsapp.GetClient()
	if client == nil {
		return loginCode, pkgError.ErrWaCLI
	}
	// detect is already logged in
	if client.Store.ID != nil || client.IsLoggedIn() {
		logrus.Warn("User is already logged in")
		return loginCode, pkgError.ErrAlreadyLoggedIn
	}

	// reconnect first
	if err = service.Reconnect(ctx); err != nil {
		logrus.Errorf("Error when reconnecting before login with code: %s", err.Error())
		return loginCode, err
	}

	client = whatsapp.GetClient()
	if client.IsLoggedIn() || client.Store.ID != nil {
		logrus.Warn("User is already logged in after reconnect")
		return loginCode, pkgError.ErrAlreadyLoggedIn
	}

	loginCode, err = client.PairPhone(ctx, phoneNumber, true, whatsmeow.PairClientChrome, "Chrome (Linux)")
	if err != nil {
		logrus.Errorf("Error when pairing phone: %s", err.Error())
		return loginCode, err
	}

	logrus.Infof("Successfully paired phone with code: %s", loginCode)
	return loginCode, nil
}

func (service *serviceApp) Logout(ctx context.Context) (err error) {
	client := whatsapp.GetClient()
	if client == nil {
		return pkgError.ErrWaCLI
	}

	if err = client.Logout(ctx); err != nil {
		logrus.Errorf("WhatsApp logout failed: %v", err)
	}

	newDB, newCli, err := whatsapp.PerformCleanupAndUpdateGlobals(ctx, "MANUAL_LOGOUT", service.channelService)
	if err != nil {
		return err
	}

	whatsapp.UpdateGlobalClient(newCli, newDB)
	return nil
}

func (service *serviceApp) Reconnect(_ context.Context) (err error) {
	client := whatsapp.GetClient()
	if client == nil {
		return pkgError.ErrWaCLI
	}
	client.Disconnect()
	if err = client.Connect(); err != nil {
		logrus.Errorf("Reconnect failed: %v", err)
		return pkgError.ErrReconnect
	}
	return nil
}

func (service *serviceApp) Status(_ context.Context) domainApp.StatusResponse {
	isConnected, isLoggedIn, _ := whatsapp.GetConnectionStatus()
	return domainApp.StatusResponse{
		IsConnected: isConnected,
		IsLoggedIn:  isLoggedIn,
	}
}

func (service *serviceApp) Devices(ctx context.Context) (response []domainApp.DevicesResponse, err error) {
	currentDB := whatsapp.GetDB()
	if currentDB == nil {
		return nil, pkgError.ErrWaCLI
	}

	devices, err := currentDB.GetAllDevices(ctx)
	if err != nil {
		return nil, err
	}

	for _, device := range devices {
		var d domainApp.DevicesResponse
		d.Device = device.ID.String()
		if device.PushName != "" {
			d.Name = device.PushName
		} else {
			d.Name = device.BusinessName
		}
		response = append(response, d)
	}

	return response, nil
}

package config

import (
	"os"
	"strconv"
	"strings"

	"go.mau.fi/whatsmeow/proto/waCompanionReg"
)

var (
	AppVersion             = "v1.2.0"
	AppPort                = "3040"
	AppDebug               = false
	AppOs                  = "AzielCf"
	AppPlatform            = waCompanionReg.DeviceProps_PlatformType(1)
	AppBasicAuthCredential []string
	AppBasePath            = ""
	AppTrustedProxies      []string

	PathQrCode   = "statics/qrcode"
	PathMedia    = "statics/media"
	PathStorages = "storages"

	DBURI = "file:storages/azcast.db?_journal_mode=WAL&_foreign_keys=on"

	WhatsappDBURI     = "file:storages/whatsapp.db?_foreign_keys=on"
	WhatsappLogLevel  = "ERROR"
	WhatsappTypeGroup = "@g.us"

	// Maximum accepted upload size for announcement media.
	MediaMaxImageSize int64 = 20000000 // 20MB

	// Media extensions resolved at read time, first match wins.
	MediaExtensionPreference = []string{".jpg", ".png"}

	// Cron expression driving the dispatch scheduler, one tick per hour boundary.
	SchedulerCronSpec = "0 * * * *"
)

func init() {
	if v := strings.TrimSpace(os.Getenv("APP_PORT")); v != "" {
		AppPort = v
	}
	if v := strings.TrimSpace(os.Getenv("APP_DEBUG")); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			AppDebug = true
		case "0", "false", "no", "off":
			AppDebug = false
		}
	}
	if v := strings.TrimSpace(os.Getenv("DB_URI")); v != "" {
		DBURI = v
	}
	if v := strings.TrimSpace(os.Getenv("WHATSAPP_DB_URI")); v != "" {
		WhatsappDBURI = v
	}
	if v := strings.TrimSpace(os.Getenv("WHATSAPP_LOG_LEVEL")); v != "" {
		WhatsappLogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("MEDIA_MAX_IMAGE_SIZE")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			MediaMaxImageSize = n
		}
	}
	if v := os.Getenv("APP_BASIC_AUTH"); v != "" {
		AppBasicAuthCredential = strings.Split(v, ",")
	}
}

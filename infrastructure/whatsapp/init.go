package whatsapp

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"

	"github.com/AzielCF/az-cast/config"
	domainChannel "github.com/AzielCF/az-cast/domains/channel"
	pkgError "github.com/AzielCF/az-cast/pkg/error"
)

var (
	globalStateMu sync.RWMutex
	cli           *whatsmeow.Client
	db            *sqlstore.Container
	log           waLog.Logger
)

func InitWaDB(ctx context.Context, dbURI string) *sqlstore.Container {
	log = waLog.Stdout("Main", config.WhatsappLogLevel, true)
	container, err := sqlstore.New(ctx, "sqlite3", dbURI, waLog.Stdout("Database", config.WhatsappLogLevel, true))
	if err != nil {
		panic(pkgError.InternalServerError(fmt.Sprintf("Database initialization error: %v", err)))
	}
	return container
}

// InitWaCLI builds the singleton client and hooks channel discovery into its
// event stream. The registry learns about group channels passively: any group
// event carrying a JID is recorded, duplicates are ignored by exact ID.
func InitWaCLI(ctx context.Context, storeContainer *sqlstore.Container, registry domainChannel.IChannelUsecase) *whatsmeow.Client {
	device, err := storeContainer.GetFirstDevice(ctx)
	if err != nil {
		panic(err)
	}
	if device == nil {
		panic("No device found")
	}

	configureDeviceProps()

	client := whatsmeow.NewClient(device, waLog.Stdout("Client", config.WhatsappLogLevel, true))
	client.EnableAutoReconnect = true
	client.AutoTrustIdentity = true
	client.AddEventHandler(func(rawEvt interface{}) { handler(ctx, rawEvt, registry) })

	globalStateMu.Lock()
	cli = client
	db = storeContainer
	globalStateMu.Unlock()

	return client
}

func UpdateGlobalClient(newCli *whatsmeow.Client, newDB *sqlstore.Container) {
	globalStateMu.Lock()
	cli = newCli
	db = newDB
	globalStateMu.Unlock()
	log.Infof("Global WhatsApp client updated successfully")
}

func GetClient() *whatsmeow.Client {
	globalStateMu.RLock()
	defer globalStateMu.RUnlock()
	return cli
}

func GetDB() *sqlstore.Container {
	globalStateMu.RLock()
	defer globalStateMu.RUnlock()
	return db
}

func GetConnectionStatus() (isConnected bool, isLoggedIn bool, deviceID string) {
	client := GetClient()
	if client == nil {
		return false, false, ""
	}
	if client.Store != nil && client.Store.ID != nil {
		deviceID = client.Store.ID.String()
	}
	return client.IsConnected(), client.IsLoggedIn(), deviceID
}

func configureDeviceProps() {
	osName := fmt.Sprintf("%s %s", config.AppOs, config.AppVersion)
	store.DeviceProps.PlatformType = &config.AppPlatform
	store.DeviceProps.Os = &osName
}

func CleanupDatabase() error {
	globalStateMu.RLock()
	currentDB := db
	globalStateMu.RUnlock()

	logrus.Info("[CLEANUP] SQLite: closing and removing files")
	if currentDB != nil {
		currentDB.Close()
	}
	removeFileIfExists(config.WhatsappDBURI)
	removeFileIfExists(config.WhatsappDBURI + "-wal")
	removeFileIfExists(config.WhatsappDBURI + "-shm")
	return nil
}

func removeFileIfExists(uri string) {
	uri = strings.TrimPrefix(uri, "file:")
	path := strings.Split(uri, "?")[0]
	if path == "" || strings.HasPrefix(path, ":memory:") {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logrus.Errorf("[CLEANUP] Failed to remove %s: %v", path, err)
	}
}

// PerformCleanupAndUpdateGlobals tears down the current session and rebuilds
// a fresh client ready for a new QR login.
func PerformCleanupAndUpdateGlobals(ctx context.Context, logPrefix string, registry domainChannel.IChannelUsecase) (*sqlstore.Container, *whatsmeow.Client, error) {
	logrus.Infof("[%s] Starting cleanup...", logPrefix)
	if c := GetClient(); c != nil {
		c.Disconnect()
	}
	if err := CleanupDatabase(); err != nil {
		return nil, nil, err
	}

	newDB := InitWaDB(ctx, config.WhatsappDBURI)
	newCli := InitWaCLI(ctx, newDB, registry)
	UpdateGlobalClient(newCli, newDB)

	logrus.Infof("[%s] Cleanup finished, ready for login.", logPrefix)
	return newDB, newCli, nil
}

func handler(ctx context.Context, rawEvt any, registry domainChannel.IChannelUsecase) {
	switch evt := rawEvt.(type) {
	case *events.Connected, *events.PushNameSetting:
		if client := GetClient(); client != nil && len(client.Store.PushName) > 0 {
			client.SendPresence(context.Background(), types.PresenceAvailable)
		}
		logrus.Info("[WHATSAPP] Connected")
		go syncJoinedGroups(ctx, registry)
	case *events.Disconnected:
		logrus.Warn("[WHATSAPP] Disconnected")
	case *events.LoggedOut:
		logrus.Info("[REMOTE_LOGOUT] User logged out, cleaning up...")
		PerformCleanupAndUpdateGlobals(ctx, "REMOTE_LOGOUT", registry)
	case *events.StreamReplaced:
		os.Exit(0)
	case *events.JoinedGroup:
		recordChannel(ctx, registry, evt.JID, evt.GroupName.Name)
	case *events.GroupInfo:
		if evt.Name != nil {
			recordChannel(ctx, registry, evt.JID, evt.Name.Name)
		}
	case *events.Message:
		if evt.Info.Chat.Server == types.GroupServer {
			recordChannelFromMessage(ctx, registry, evt.Info.Chat)
		}
	}
}

// syncJoinedGroups seeds the registry with every group the account already
// belongs to, so discovery does not depend on fresh traffic after a restart.
func syncJoinedGroups(ctx context.Context, registry domainChannel.IChannelUsecase) {
	client := GetClient()
	if client == nil || registry == nil {
		return
	}
	groups, err := client.GetJoinedGroups(ctx)
	if err != nil {
		logrus.WithError(err).Warn("[WHATSAPP] Failed to list joined groups")
		return
	}
	for _, group := range groups {
		recordChannel(ctx, registry, group.JID, group.Name)
	}
}

func recordChannel(ctx context.Context, registry domainChannel.IChannelUsecase, jid types.JID, name string) {
	if registry == nil || jid.IsEmpty() {
		return
	}
	if err := registry.RecordDiscovered(ctx, domainChannel.Channel{ID: jid.String(), Name: name}); err != nil {
		logrus.WithError(err).Warnf("[WHATSAPP] Failed to record channel %s", jid.String())
	}
}

func recordChannelFromMessage(ctx context.Context, registry domainChannel.IChannelUsecase, chat types.JID) {
	if registry == nil {
		return
	}
	name := ""
	if client := GetClient(); client != nil {
		if info, err := client.GetGroupInfo(ctx, chat); err == nil {
			name = info.Name
		}
	}
	recordChannel(ctx, registry, chat, name)
}

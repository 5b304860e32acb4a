package cmd

import (
	"context"
	"database/sql"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mau.fi/whatsmeow"

	globalConfig "github.com/AzielCF/az-cast/config"
	coreDB "github.com/AzielCF/az-cast/core/database"
	domainAnnouncement "github.com/AzielCF/az-cast/domains/announcement"
	domainApp "github.com/AzielCF/az-cast/domains/app"
	domainBroadcast "github.com/AzielCF/az-cast/domains/broadcast"
	domainChannel "github.com/AzielCF/az-cast/domains/channel"
	domainSchedule "github.com/AzielCF/az-cast/domains/schedule"
	domainUser "github.com/AzielCF/az-cast/domains/user"
	"github.com/AzielCF/az-cast/infrastructure/whatsapp"
	"github.com/AzielCF/az-cast/pkg/utils"
	"github.com/AzielCF/az-cast/scheduler"
	"github.com/AzielCF/az-cast/usecase"
)

var (
	// Whatsapp
	whatsappCli *whatsmeow.Client

	// Storage
	appDB *sql.DB

	// Usecase
	announcementUsecase domainAnnouncement.IAnnouncementUsecase
	scheduleUsecase     domainSchedule.IScheduleUsecase
	channelUsecase      domainChannel.IChannelUsecase
	broadcastUsecase    domainBroadcast.IBroadcastUsecase
	appUsecase          domainApp.IAppUsecase
	userUsecase         domainUser.IUserUsecase

	dispatchScheduler *scheduler.Scheduler
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Short: "Recurring WhatsApp announcement broadcaster",
	Long: `az-cast sends a configured caption and image to approved WhatsApp
group channels at scheduled hours, once per weekday and hour slot.`,
}

func init() {
	// Load environment variables first
	utils.LoadConfig(".")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initEnvConfig, initApp)
}

// initEnvConfig loads configuration from environment variables
func initEnvConfig() {
	if envPort := viper.GetString("app_port"); envPort != "" {
		globalConfig.AppPort = envPort
	}
	if envDebug := viper.GetBool("app_debug"); envDebug {
		globalConfig.AppDebug = envDebug
	}
	if envOs := viper.GetString("app_os"); envOs != "" {
		globalConfig.AppOs = envOs
	}
	envBasicAuth := viper.GetString("app_basic_auth")
	if envBasicAuth == "" {
		envBasicAuth = os.Getenv("APP_BASIC_AUTH")
	}
	if envBasicAuth != "" {
		globalConfig.AppBasicAuthCredential = strings.Split(envBasicAuth, ",")
	}
	if envBasePath := viper.GetString("app_base_path"); envBasePath != "" {
		globalConfig.AppBasePath = envBasePath
	}
	if envTrustedProxies := viper.GetString("app_trusted_proxies"); envTrustedProxies != "" {
		globalConfig.AppTrustedProxies = strings.Split(envTrustedProxies, ",")
	}

	if envDBURI := viper.GetString("db_uri"); envDBURI != "" {
		globalConfig.DBURI = envDBURI
	}
	if envWaDBURI := viper.GetString("whatsapp_db_uri"); envWaDBURI != "" {
		globalConfig.WhatsappDBURI = envWaDBURI
	}
}

func initFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.AppPort,
		"port", "p",
		globalConfig.AppPort,
		"change port number with --port <number> | example: --port=8080",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&globalConfig.AppDebug,
		"debug", "d",
		globalConfig.AppDebug,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.AppOs,
		"os", "",
		globalConfig.AppOs,
		`os name --os <string> | example: --os="Chrome"`,
	)
	rootCmd.PersistentFlags().StringSliceVarP(
		&globalConfig.AppBasicAuthCredential,
		"basic-auth", "b",
		globalConfig.AppBasicAuthCredential,
		"basic auth credential | -b=yourUsername:yourPassword",
	)
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.AppBasePath,
		"base-path", "",
		globalConfig.AppBasePath,
		`base path for subpath deployment --base-path <string> | example: --base-path="/azcast"`,
	)
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.DBURI,
		"db-uri", "",
		globalConfig.DBURI,
		`the application database uri --db-uri <string> | example: --db-uri="file:storages/azcast.db?_foreign_keys=on"`,
	)
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.WhatsappDBURI,
		"whatsapp-db-uri", "",
		globalConfig.WhatsappDBURI,
		`the whatsapp session database uri --whatsapp-db-uri <string> | example: --whatsapp-db-uri="file:storages/whatsapp.db?_foreign_keys=on"`,
	)
}

func initApp() {
	if globalConfig.AppDebug {
		globalConfig.WhatsappLogLevel = "DEBUG"
		logrus.SetLevel(logrus.DebugLevel)
	}

	// preparing folder if not exist
	err := utils.CreateFolder(globalConfig.PathQrCode, globalConfig.PathMedia, globalConfig.PathStorages)
	if err != nil {
		logrus.Errorln(err)
	}

	ctx := context.Background()

	appDB, err = coreDB.NewDatabase(globalConfig.DBURI)
	if err != nil {
		logrus.Fatalf("failed to open application db: %v", err)
	}

	announcementUsecase, err = usecase.NewAnnouncementService(appDB, globalConfig.PathMedia)
	if err != nil {
		logrus.Fatalf("failed to init announcement service: %v", err)
	}
	scheduleUsecase, err = usecase.NewScheduleService(appDB)
	if err != nil {
		logrus.Fatalf("failed to init schedule service: %v", err)
	}
	channelUsecase, err = usecase.NewChannelService(appDB)
	if err != nil {
		logrus.Fatalf("failed to init channel service: %v", err)
	}
	userUsecase, err = usecase.NewUserService(appDB)
	if err != nil {
		logrus.Fatalf("failed to init user service: %v", err)
	}

	whatsappDB := whatsapp.InitWaDB(ctx, globalConfig.WhatsappDBURI)
	whatsappCli = whatsapp.InitWaCLI(ctx, whatsappDB, channelUsecase)

	appUsecase = usecase.NewAppService(channelUsecase)
	broadcastUsecase = usecase.NewBroadcastService(whatsapp.NewSender())

	dispatchScheduler = scheduler.NewScheduler(
		announcementUsecase,
		scheduleUsecase,
		channelUsecase,
		broadcastUsecase,
	)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// StopApp performs a clean shutdown of all database connections and services.
func StopApp() {
	logrus.Info("[APP] Stopping application...")

	if whatsappCli != nil {
		whatsappCli.Disconnect()
	}
	if appDB != nil {
		appDB.Close()
	}

	logrus.Info("[APP] Application stopped cleanly.")
}

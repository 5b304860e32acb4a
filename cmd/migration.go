package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	globalConfig "github.com/AzielCF/az-cast/config"
	domainAnnouncement "github.com/AzielCF/az-cast/domains/announcement"
	domainChannel "github.com/AzielCF/az-cast/domains/channel"
	domainSchedule "github.com/AzielCF/az-cast/domains/schedule"
	"github.com/AzielCF/az-cast/pkg/legacystore"
)

var legacyDir string

var importLegacyCmd = &cobra.Command{
	Use:   "import-legacy",
	Short: "Import captions, hours and channel lists from the old flat-file layout",
	Long: `Reads data.txt, horarios.txt, grupos_scan.txt and grupos_check.txt plus
the assets/ media directory from an old deployment and loads everything into
the database. Existing captions and media are overwritten, schedule hours and
the approved list are replaced wholesale.`,
	Run: runImportLegacy,
}

func init() {
	importLegacyCmd.Flags().StringVar(&legacyDir, "from", ".", "directory holding the legacy flat files")
	rootCmd.AddCommand(importLegacyCmd)
}

func runImportLegacy(_ *cobra.Command, _ []string) {
	ctx := context.Background()
	logrus.Infof("[MIGRATION] Importing legacy files from %s", legacyDir)

	if err := importLegacyCaptions(ctx); err != nil {
		logrus.Fatalf("[MIGRATION] Caption import failed: %v", err)
	}
	if err := importLegacyMedia(ctx); err != nil {
		logrus.Fatalf("[MIGRATION] Media import failed: %v", err)
	}
	if err := importLegacyHours(ctx); err != nil {
		logrus.Fatalf("[MIGRATION] Schedule import failed: %v", err)
	}
	if err := importLegacyChannels(ctx); err != nil {
		logrus.Fatalf("[MIGRATION] Channel import failed: %v", err)
	}

	logrus.Info("[MIGRATION] Legacy import completed.")
}

func importLegacyCaptions(ctx context.Context) error {
	content, err := readLegacyFile("data.txt")
	if err != nil {
		return err
	}
	if content == "" {
		logrus.Info("[MIGRATION] No captions file found, skipping")
		return nil
	}

	captions := legacystore.ParseCaptions(content)
	for _, weekday := range domainAnnouncement.AllWeekdays {
		caption, ok := captions[weekday]
		if !ok {
			continue
		}
		err := announcementUsecase.Save(ctx, domainAnnouncement.SaveRequest{Weekday: weekday, Caption: caption})
		if err != nil {
			return fmt.Errorf("save caption for %s: %w", weekday, err)
		}
	}
	logrus.Infof("[MIGRATION] Imported %d captions", len(captions))
	return nil
}

func importLegacyMedia(ctx context.Context) error {
	assetsDir := filepath.Join(legacyDir, "assets")
	if _, err := os.Stat(assetsDir); os.IsNotExist(err) {
		logrus.Info("[MIGRATION] No assets directory found, skipping")
		return nil
	}

	imported := 0
	for basename, weekday := range legacystore.LegacyMediaBasenames() {
		for _, ext := range globalConfig.MediaExtensionPreference {
			path := filepath.Join(assetsDir, basename+ext)
			data, err := os.ReadFile(path)
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			_, err = announcementUsecase.SaveMedia(ctx, domainAnnouncement.SaveMediaRequest{
				Weekday:          weekday,
				Data:             data,
				OriginalFilename: basename + ext,
			})
			if err != nil {
				return fmt.Errorf("import media %s: %w", path, err)
			}
			imported++
			break
		}
	}
	logrus.Infof("[MIGRATION] Imported %d media assets", imported)
	return nil
}

func importLegacyHours(ctx context.Context) error {
	content, err := readLegacyFile("horarios.txt")
	if err != nil {
		return err
	}
	if content == "" {
		logrus.Info("[MIGRATION] No hours file found, skipping")
		return nil
	}

	hours := legacystore.ParseHours(content)
	if len(hours) == 0 {
		logrus.Info("[MIGRATION] Hours file empty after parsing, skipping")
		return nil
	}
	if _, err := scheduleUsecase.Replace(ctx, domainSchedule.ReplaceRequest{Hours: hours}); err != nil {
		return fmt.Errorf("replace schedule: %w", err)
	}
	logrus.Infof("[MIGRATION] Imported schedule hours %v", hours)
	return nil
}

func importLegacyChannels(ctx context.Context) error {
	if content, err := readLegacyFile("grupos_scan.txt"); err != nil {
		return err
	} else if content != "" {
		discovered := legacystore.ParseDiscovered(content)
		for _, ch := range discovered {
			if err := channelUsecase.RecordDiscovered(ctx, ch); err != nil {
				return fmt.Errorf("record discovered channel %s: %w", ch.ID, err)
			}
		}
		logrus.Infof("[MIGRATION] Imported %d discovered channels", len(discovered))
	}

	if content, err := readLegacyFile("grupos_check.txt"); err != nil {
		return err
	} else if content != "" {
		approved := legacystore.ParseApproved(content)
		if err := channelUsecase.ReplaceApproved(ctx, domainChannel.ReplaceApprovedRequest{Channels: approved}); err != nil {
			return fmt.Errorf("replace approved channels: %w", err)
		}
		logrus.Infof("[MIGRATION] Imported %d approved channels", len(approved))
	}

	return nil
}

func readLegacyFile(name string) (string, error) {
	path := filepath.Join(legacyDir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

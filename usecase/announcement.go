package usecase

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/AzielCF/az-cast/config"
	domainAnnouncement "github.com/AzielCF/az-cast/domains/announcement"
	pkgError "github.com/AzielCF/az-cast/pkg/error"
	"github.com/AzielCF/az-cast/validations"
)

type serviceAnnouncement struct {
	db       *sql.DB
	mediaDir string
}

func NewAnnouncementService(db *sql.DB, mediaDir string) (domainAnnouncement.IAnnouncementUsecase, error) {
	createTable := `
		CREATE TABLE IF NOT EXISTS announcements (
			weekday TEXT PRIMARY KEY,
			caption TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(createTable); err != nil {
		return nil, fmt.Errorf("failed to init announcements table: %w", err)
	}

	if err := os.MkdirAll(mediaDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}

	return &serviceAnnouncement{db: db, mediaDir: mediaDir}, nil
}

// resolveMediaPath locates a weekday's asset following the fixed extension
// preference order. Empty result means no asset exists.
func (service *serviceAnnouncement) resolveMediaPath(weekday domainAnnouncement.Weekday) (path string, size int64) {
	for _, ext := range config.MediaExtensionPreference {
		candidate := filepath.Join(service.mediaDir, weekday.MediaBasename()+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, info.Size()
		}
	}
	return "", 0
}

func (service *serviceAnnouncement) Get(ctx context.Context, weekday domainAnnouncement.Weekday) (domainAnnouncement.Announcement, error) {
	if !weekday.Valid() {
		return domainAnnouncement.Announcement{}, pkgError.ValidationError(fmt.Sprintf("weekday: %q is not a valid key", weekday))
	}

	var caption string
	err := service.db.QueryRowContext(ctx, `SELECT caption FROM announcements WHERE weekday = ?`, string(weekday)).Scan(&caption)
	if err == sql.ErrNoRows {
		return domainAnnouncement.Announcement{}, pkgError.NotFoundError(fmt.Sprintf("no announcement stored for %s", weekday))
	}
	if err != nil {
		return domainAnnouncement.Announcement{}, fmt.Errorf("failed to read announcement: %w", err)
	}

	mediaPath, mediaSize := service.resolveMediaPath(weekday)
	return domainAnnouncement.Announcement{
		Weekday:   weekday,
		Caption:   caption,
		MediaPath: mediaPath,
		MediaSize: mediaSize,
	}, nil
}

func (service *serviceAnnouncement) Save(ctx context.Context, request domainAnnouncement.SaveRequest) error {
	if err := validations.ValidateSaveAnnouncement(ctx, request); err != nil {
		return err
	}

	_, err := service.db.ExecContext(ctx, `
		INSERT INTO announcements (weekday, caption) VALUES (?, ?)
		ON CONFLICT(weekday) DO UPDATE SET caption = excluded.caption, updated_at = CURRENT_TIMESTAMP
	`, string(request.Weekday), request.Caption)
	if err != nil {
		return fmt.Errorf("failed to save announcement: %w", err)
	}

	logrus.Infof("[CONTENT] Saved caption for %s (%d bytes)", request.Weekday, len(request.Caption))
	return nil
}

func (service *serviceAnnouncement) SaveMedia(ctx context.Context, request domainAnnouncement.SaveMediaRequest) (string, error) {
	if !request.Weekday.Valid() {
		return "", pkgError.ValidationError(fmt.Sprintf("weekday: %q is not a valid key", request.Weekday))
	}
	if len(request.Data) == 0 {
		return "", pkgError.ValidationError("media: no file content received")
	}

	ext := strings.ToLower(filepath.Ext(request.OriginalFilename))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	if !isAllowedMediaExtension(ext) {
		return "", pkgError.ValidationError(fmt.Sprintf("media: unsupported extension %q, expected one of %s", ext, strings.Join(config.MediaExtensionPreference, ", ")))
	}

	// Reject files that only pretend to be images.
	if _, err := imaging.Decode(bytes.NewReader(request.Data)); err != nil {
		return "", pkgError.ValidationError("media: file is not a decodable image")
	}

	fileName := request.Weekday.MediaBasename() + ext
	finalPath := filepath.Join(service.mediaDir, fileName)
	if err := os.WriteFile(finalPath, request.Data, 0644); err != nil {
		return "", pkgError.InternalServerError(fmt.Sprintf("failed to store media asset: %v", err))
	}

	logrus.Infof("[CONTENT] Stored media %s (%s)", fileName, humanize.Bytes(uint64(len(request.Data))))
	return fileName, nil
}

func (service *serviceAnnouncement) Copy(ctx context.Context, request domainAnnouncement.CopyRequest) error {
	if err := validations.ValidateCopyAnnouncement(ctx, request); err != nil {
		return err
	}

	var caption string
	err := service.db.QueryRowContext(ctx, `SELECT caption FROM announcements WHERE weekday = ?`, string(request.Source)).Scan(&caption)
	if err == sql.ErrNoRows {
		return pkgError.NotFoundError(fmt.Sprintf("source %s has no caption", request.Source))
	}
	if err != nil {
		return fmt.Errorf("failed to read source caption: %w", err)
	}

	sourcePath, _ := service.resolveMediaPath(request.Source)
	if sourcePath == "" {
		return pkgError.NotFoundError(fmt.Sprintf("source %s has no media asset", request.Source))
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source media: %w", err)
	}
	ext := filepath.Ext(sourcePath)

	// Media files first. A failure partway leaves earlier destinations
	// already written; the caption half below commits in one transaction.
	for _, destination := range request.Destinations {
		destPath := filepath.Join(service.mediaDir, destination.MediaBasename()+ext)
		if err := os.WriteFile(destPath, data, 0644); err != nil {
			return pkgError.InternalServerError(fmt.Sprintf("failed to copy media to %s: %v", destination, err))
		}
	}

	tx, err := service.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin caption copy: %w", err)
	}
	defer tx.Rollback()

	for _, destination := range request.Destinations {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO announcements (weekday, caption) VALUES (?, ?)
			ON CONFLICT(weekday) DO UPDATE SET caption = excluded.caption, updated_at = CURRENT_TIMESTAMP
		`, string(destination), caption); err != nil {
			return fmt.Errorf("failed to copy caption to %s: %w", destination, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit caption copy: %w", err)
	}

	logrus.Infof("[CONTENT] Copied %s announcement to %d weekday(s)", request.Source, len(request.Destinations))
	return nil
}

func (service *serviceAnnouncement) Delete(ctx context.Context, weekday domainAnnouncement.Weekday) error {
	if !weekday.Valid() {
		return pkgError.ValidationError(fmt.Sprintf("weekday: %q is not a valid key", weekday))
	}

	for _, ext := range config.MediaExtensionPreference {
		path := filepath.Join(service.mediaDir, weekday.MediaBasename()+ext)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return pkgError.InternalServerError(fmt.Sprintf("failed to remove media asset: %v", err))
		}
	}

	if _, err := service.db.ExecContext(ctx, `DELETE FROM announcements WHERE weekday = ?`, string(weekday)); err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}

	logrus.Infof("[CONTENT] Deleted announcement for %s", weekday)
	return nil
}

func (service *serviceAnnouncement) DeleteAll(ctx context.Context) error {
	for _, weekday := range domainAnnouncement.AllWeekdays {
		for _, ext := range config.MediaExtensionPreference {
			path := filepath.Join(service.mediaDir, weekday.MediaBasename()+ext)
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return pkgError.InternalServerError(fmt.Sprintf("failed to remove media asset: %v", err))
			}
		}
	}

	if _, err := service.db.ExecContext(ctx, `DELETE FROM announcements`); err != nil {
		return fmt.Errorf("failed to truncate announcements: %w", err)
	}

	logrus.Info("[CONTENT] Deleted every announcement and media asset")
	return nil
}

func (service *serviceAnnouncement) Preview(ctx context.Context, weekday domainAnnouncement.Weekday) (domainAnnouncement.PreviewResponse, error) {
	if !weekday.Valid() {
		return domainAnnouncement.PreviewResponse{}, pkgError.ValidationError(fmt.Sprintf("weekday: %q is not a valid key", weekday))
	}

	response := domainAnnouncement.PreviewResponse{Weekday: weekday}

	var caption string
	err := service.db.QueryRowContext(ctx, `SELECT caption FROM announcements WHERE weekday = ?`, string(weekday)).Scan(&caption)
	if err != nil && err != sql.ErrNoRows {
		return response, fmt.Errorf("failed to read caption: %w", err)
	}
	response.Caption = caption

	mediaPath, _ := service.resolveMediaPath(weekday)
	if mediaPath == "" {
		return response, nil
	}

	data, err := os.ReadFile(mediaPath)
	if err != nil {
		return response, fmt.Errorf("failed to read media: %w", err)
	}
	response.MediaBase64 = fmt.Sprintf("data:%s;base64,%s", MimeTypeForExtension(filepath.Ext(mediaPath)), base64.StdEncoding.EncodeToString(data))

	if img, err := imaging.Decode(bytes.NewReader(data)); err == nil {
		thumb := imaging.Fit(img, 320, 320, imaging.Lanczos)
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err == nil {
			response.ThumbBase64 = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
		}
	}

	return response, nil
}

func isAllowedMediaExtension(ext string) bool {
	for _, allowed := range config.MediaExtensionPreference {
		if ext == allowed {
			return true
		}
	}
	return false
}

// MimeTypeForExtension maps the known media extensions to their MIME type.
func MimeTypeForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

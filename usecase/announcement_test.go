package usecase

import (
	"bytes"
	"context"
	"database/sql"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	domainAnnouncement "github.com/AzielCF/az-cast/domains/announcement"
	pkgError "github.com/AzielCF/az-cast/pkg/error"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file:"+filepath.Join(t.TempDir(), "test.db")+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestAnnouncementService(t *testing.T) (domainAnnouncement.IAnnouncementUsecase, string) {
	t.Helper()

	mediaDir := filepath.Join(t.TempDir(), "media")
	svc, err := NewAnnouncementService(newTestDB(t), mediaDir)
	if err != nil {
		t.Fatalf("NewAnnouncementService() unexpected error: %v", err)
	}
	return svc, mediaDir
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil); err != nil {
		t.Fatalf("failed to encode test jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestAnnouncementService_SaveAndGet(t *testing.T) {
	svc, _ := newTestAnnouncementService(t)
	ctx := context.Background()

	caption := "Bom dia!\nSegunda linha\n\nFim"
	err := svc.Save(ctx, domainAnnouncement.SaveRequest{Weekday: domainAnnouncement.Tuesday, Caption: caption})
	if err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	got, err := svc.Get(ctx, domainAnnouncement.Tuesday)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.Caption != caption {
		t.Fatalf("Get() caption = %q, want %q", got.Caption, caption)
	}
	if got.MediaPath != "" {
		t.Fatalf("Get() expected no media yet, got %q", got.MediaPath)
	}

	// Overwrite keeps a single row per weekday.
	if err := svc.Save(ctx, domainAnnouncement.SaveRequest{Weekday: domainAnnouncement.Tuesday, Caption: "updated"}); err != nil {
		t.Fatalf("Save() overwrite unexpected error: %v", err)
	}
	got, err = svc.Get(ctx, domainAnnouncement.Tuesday)
	if err != nil {
		t.Fatalf("Get() after overwrite unexpected error: %v", err)
	}
	if got.Caption != "updated" {
		t.Fatalf("Get() caption after overwrite = %q, want %q", got.Caption, "updated")
	}
}

func TestAnnouncementService_GetMissingIsNotFound(t *testing.T) {
	svc, _ := newTestAnnouncementService(t)

	_, err := svc.Get(context.Background(), domainAnnouncement.Friday)
	if err == nil {
		t.Fatalf("Get() expected error for missing weekday")
	}
	genericErr, ok := err.(pkgError.GenericError)
	if !ok {
		t.Fatalf("Get() error is %T, want GenericError", err)
	}
	if genericErr.StatusCode() != 404 {
		t.Fatalf("Get() status = %d, want 404", genericErr.StatusCode())
	}
}

func TestAnnouncementService_SaveRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestAnnouncementService(t)
	ctx := context.Background()

	if err := svc.Save(ctx, domainAnnouncement.SaveRequest{Weekday: "sunday", Caption: "x"}); err == nil {
		t.Fatalf("Save() expected error for sunday")
	}
	if err := svc.Save(ctx, domainAnnouncement.SaveRequest{Weekday: domainAnnouncement.Monday}); err == nil {
		t.Fatalf("Save() expected error for empty caption")
	}
}

func TestAnnouncementService_SaveMedia(t *testing.T) {
	svc, mediaDir := newTestAnnouncementService(t)
	ctx := context.Background()

	fileName, err := svc.SaveMedia(ctx, domainAnnouncement.SaveMediaRequest{
		Weekday:          domainAnnouncement.Monday,
		Data:             pngBytes(t),
		OriginalFilename: "upload.png",
	})
	if err != nil {
		t.Fatalf("SaveMedia() unexpected error: %v", err)
	}
	if fileName != "day-1.png" {
		t.Fatalf("SaveMedia() stored name = %q, want %q", fileName, "day-1.png")
	}
	if _, err := os.Stat(filepath.Join(mediaDir, fileName)); err != nil {
		t.Fatalf("SaveMedia() file missing on disk: %v", err)
	}

	// .jpeg uploads are normalized to .jpg.
	fileName, err = svc.SaveMedia(ctx, domainAnnouncement.SaveMediaRequest{
		Weekday:          domainAnnouncement.Saturday,
		Data:             jpegBytes(t),
		OriginalFilename: "photo.JPEG",
	})
	if err != nil {
		t.Fatalf("SaveMedia() jpeg unexpected error: %v", err)
	}
	if fileName != "day-6.jpg" {
		t.Fatalf("SaveMedia() stored name = %q, want %q", fileName, "day-6.jpg")
	}
}

func TestAnnouncementService_SaveMediaRejections(t *testing.T) {
	svc, _ := newTestAnnouncementService(t)
	ctx := context.Background()

	_, err := svc.SaveMedia(ctx, domainAnnouncement.SaveMediaRequest{
		Weekday:          domainAnnouncement.Monday,
		Data:             pngBytes(t),
		OriginalFilename: "anim.gif",
	})
	if err == nil {
		t.Fatalf("SaveMedia() expected error for unsupported extension")
	}

	_, err = svc.SaveMedia(ctx, domainAnnouncement.SaveMediaRequest{
		Weekday:          domainAnnouncement.Monday,
		Data:             []byte("definitely not an image"),
		OriginalFilename: "fake.jpg",
	})
	if err == nil {
		t.Fatalf("SaveMedia() expected error for undecodable image")
	}
}

func TestAnnouncementService_ExtensionPreference(t *testing.T) {
	svc, mediaDir := newTestAnnouncementService(t)
	ctx := context.Background()

	// Both extensions present: .jpg wins.
	if err := os.WriteFile(filepath.Join(mediaDir, "day-3.png"), pngBytes(t), 0644); err != nil {
		t.Fatalf("failed to seed png: %v", err)
	}
	if err := os.WriteFile(filepath.Join(mediaDir, "day-3.jpg"), jpegBytes(t), 0644); err != nil {
		t.Fatalf("failed to seed jpg: %v", err)
	}
	if err := svc.Save(ctx, domainAnnouncement.SaveRequest{Weekday: domainAnnouncement.Wednesday, Caption: "c"}); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	got, err := svc.Get(ctx, domainAnnouncement.Wednesday)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if filepath.Ext(got.MediaPath) != ".jpg" {
		t.Fatalf("Get() media path = %q, want .jpg preferred", got.MediaPath)
	}
}

func TestAnnouncementService_Copy(t *testing.T) {
	svc, mediaDir := newTestAnnouncementService(t)
	ctx := context.Background()

	if err := svc.Save(ctx, domainAnnouncement.SaveRequest{Weekday: domainAnnouncement.Monday, Caption: "shared"}); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if _, err := svc.SaveMedia(ctx, domainAnnouncement.SaveMediaRequest{
		Weekday:          domainAnnouncement.Monday,
		Data:             jpegBytes(t),
		OriginalFilename: "a.jpg",
	}); err != nil {
		t.Fatalf("SaveMedia() unexpected error: %v", err)
	}

	err := svc.Copy(ctx, domainAnnouncement.CopyRequest{
		Source:       domainAnnouncement.Monday,
		Destinations: []domainAnnouncement.Weekday{domainAnnouncement.Thursday, domainAnnouncement.Friday},
	})
	if err != nil {
		t.Fatalf("Copy() unexpected error: %v", err)
	}

	for _, weekday := range []domainAnnouncement.Weekday{domainAnnouncement.Thursday, domainAnnouncement.Friday} {
		got, err := svc.Get(ctx, weekday)
		if err != nil {
			t.Fatalf("Get(%s) unexpected error: %v", weekday, err)
		}
		if got.Caption != "shared" {
			t.Fatalf("Get(%s) caption = %q, want %q", weekday, got.Caption, "shared")
		}
		if _, err := os.Stat(filepath.Join(mediaDir, weekday.MediaBasename()+".jpg")); err != nil {
			t.Fatalf("Copy() media missing for %s: %v", weekday, err)
		}
	}
}

func TestAnnouncementService_CopyWithoutMediaIsNotFound(t *testing.T) {
	svc, _ := newTestAnnouncementService(t)
	ctx := context.Background()

	if err := svc.Save(ctx, domainAnnouncement.SaveRequest{Weekday: domainAnnouncement.Monday, Caption: "only text"}); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	err := svc.Copy(ctx, domainAnnouncement.CopyRequest{
		Source:       domainAnnouncement.Monday,
		Destinations: []domainAnnouncement.Weekday{domainAnnouncement.Tuesday},
	})
	if err == nil {
		t.Fatalf("Copy() expected error when source has no media")
	}
	genericErr, ok := err.(pkgError.GenericError)
	if !ok || genericErr.StatusCode() != 404 {
		t.Fatalf("Copy() error = %v, want 404 GenericError", err)
	}
}

func TestAnnouncementService_DeleteAll(t *testing.T) {
	svc, mediaDir := newTestAnnouncementService(t)
	ctx := context.Background()

	for _, weekday := range domainAnnouncement.AllWeekdays {
		if err := svc.Save(ctx, domainAnnouncement.SaveRequest{Weekday: weekday, Caption: "c"}); err != nil {
			t.Fatalf("Save(%s) unexpected error: %v", weekday, err)
		}
		if _, err := svc.SaveMedia(ctx, domainAnnouncement.SaveMediaRequest{
			Weekday:          weekday,
			Data:             pngBytes(t),
			OriginalFilename: "x.png",
		}); err != nil {
			t.Fatalf("SaveMedia(%s) unexpected error: %v", weekday, err)
		}
	}

	if err := svc.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll() unexpected error: %v", err)
	}

	entries, err := os.ReadDir(mediaDir)
	if err != nil {
		t.Fatalf("failed to read media dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("DeleteAll() left %d files in media dir", len(entries))
	}
	for _, weekday := range domainAnnouncement.AllWeekdays {
		if _, err := svc.Get(ctx, weekday); err == nil {
			t.Fatalf("Get(%s) expected error after DeleteAll", weekday)
		}
	}
}

func TestAnnouncementService_Preview(t *testing.T) {
	svc, _ := newTestAnnouncementService(t)
	ctx := context.Background()

	if err := svc.Save(ctx, domainAnnouncement.SaveRequest{Weekday: domainAnnouncement.Monday, Caption: "preview me"}); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if _, err := svc.SaveMedia(ctx, domainAnnouncement.SaveMediaRequest{
		Weekday:          domainAnnouncement.Monday,
		Data:             pngBytes(t),
		OriginalFilename: "x.png",
	}); err != nil {
		t.Fatalf("SaveMedia() unexpected error: %v", err)
	}

	preview, err := svc.Preview(ctx, domainAnnouncement.Monday)
	if err != nil {
		t.Fatalf("Preview() unexpected error: %v", err)
	}
	if preview.Caption != "preview me" {
		t.Fatalf("Preview() caption = %q, want %q", preview.Caption, "preview me")
	}
	if !strings.HasPrefix(preview.MediaBase64, "data:image/png;base64,") {
		t.Fatalf("Preview() media base64 prefix wrong: %q", preview.MediaBase64[:32])
	}
	if !strings.HasPrefix(preview.ThumbBase64, "data:image/jpeg;base64,") {
		t.Fatalf("Preview() thumb base64 prefix wrong: %q", preview.ThumbBase64[:32])
	}
}

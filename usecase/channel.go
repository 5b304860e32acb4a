package usecase

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	domainChannel "github.com/AzielCF/az-cast/domains/channel"
	"github.com/AzielCF/az-cast/validations"
)

type serviceChannel struct {
	db *sql.DB
}

func NewChannelService(db *sql.DB) (domainChannel.IChannelUsecase, error) {
	createTables := `
		CREATE TABLE IF NOT EXISTS discovered_channels (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			discovered_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS approved_channels (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			position INTEGER NOT NULL
		);
	`
	if _, err := db.Exec(createTables); err != nil {
		return nil, fmt.Errorf("failed to init channel tables: %w", err)
	}
	return &serviceChannel{db: db}, nil
}

func (service *serviceChannel) RecordDiscovered(ctx context.Context, ch domainChannel.Channel) error {
	if ch.ID == "" {
		return nil
	}

	// Dedup keys on the exact channel ID, so two IDs can never shadow each
	// other the way a substring check would allow.
	result, err := service.db.ExecContext(ctx, `
		INSERT INTO discovered_channels (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO NOTHING
	`, ch.ID, ch.Name)
	if err != nil {
		return fmt.Errorf("failed to record discovered channel: %w", err)
	}

	if inserted, _ := result.RowsAffected(); inserted > 0 {
		logrus.Infof("[CHANNEL] Discovered group %s (%s)", ch.Name, ch.ID)
	}
	return nil
}

func (service *serviceChannel) ListDiscovered(ctx context.Context) ([]domainChannel.Channel, error) {
	return service.listChannels(ctx, `SELECT id, name FROM discovered_channels ORDER BY discovered_at ASC`)
}

func (service *serviceChannel) ListApproved(ctx context.Context) ([]domainChannel.Channel, error) {
	return service.listChannels(ctx, `SELECT id, name FROM approved_channels ORDER BY position ASC`)
}

func (service *serviceChannel) listChannels(ctx context.Context, query string) ([]domainChannel.Channel, error) {
	rows, err := service.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	channels := make([]domainChannel.Channel, 0)
	for rows.Next() {
		var ch domainChannel.Channel
		if err := rows.Scan(&ch.ID, &ch.Name); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

func (service *serviceChannel) ReplaceApproved(ctx context.Context, request domainChannel.ReplaceApprovedRequest) error {
	if err := validations.ValidateReplaceApproved(ctx, request); err != nil {
		return err
	}

	tx, err := service.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin approved replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM approved_channels`); err != nil {
		return fmt.Errorf("failed to clear approved channels: %w", err)
	}
	for position, ch := range request.Channels {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO approved_channels (id, name, position) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name, position = excluded.position
		`, ch.ID, ch.Name, position); err != nil {
			return fmt.Errorf("failed to store approved channel %s: %w", ch.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit approved replace: %w", err)
	}

	logrus.Infof("[CHANNEL] Approved destination list replaced (%d channel(s))", len(request.Channels))
	return nil
}

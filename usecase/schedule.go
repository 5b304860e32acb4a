package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	domainSchedule "github.com/AzielCF/az-cast/domains/schedule"
	"github.com/AzielCF/az-cast/validations"
)

type serviceSchedule struct {
	db *sql.DB
}

func NewScheduleService(db *sql.DB) (domainSchedule.IScheduleUsecase, error) {
	createTable := `
		CREATE TABLE IF NOT EXISTS schedule_hours (
			hour INTEGER PRIMARY KEY CHECK (hour BETWEEN 0 AND 23)
		);
	`
	if _, err := db.Exec(createTable); err != nil {
		return nil, fmt.Errorf("failed to init schedule table: %w", err)
	}
	return &serviceSchedule{db: db}, nil
}

func (service *serviceSchedule) Hours(ctx context.Context) ([]int, error) {
	rows, err := service.db.QueryContext(ctx, `SELECT hour FROM schedule_hours ORDER BY hour ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule: %w", err)
	}
	defer rows.Close()

	hours := make([]int, 0, 24)
	for rows.Next() {
		var hour int
		if err := rows.Scan(&hour); err != nil {
			return nil, fmt.Errorf("failed to scan schedule hour: %w", err)
		}
		hours = append(hours, hour)
	}
	return hours, rows.Err()
}

func (service *serviceSchedule) Replace(ctx context.Context, request domainSchedule.ReplaceRequest) ([]int, error) {
	if err := validations.ValidateReplaceSchedule(ctx, request); err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(request.Hours))
	canonical := make([]int, 0, len(request.Hours))
	for _, hour := range request.Hours {
		if _, dup := seen[hour]; dup {
			continue
		}
		seen[hour] = struct{}{}
		canonical = append(canonical, hour)
	}
	sort.Ints(canonical)

	tx, err := service.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin schedule replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_hours`); err != nil {
		return nil, fmt.Errorf("failed to clear schedule: %w", err)
	}
	for _, hour := range canonical {
		if _, err := tx.ExecContext(ctx, `INSERT INTO schedule_hours (hour) VALUES (?)`, hour); err != nil {
			return nil, fmt.Errorf("failed to store schedule hour %d: %w", hour, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit schedule replace: %w", err)
	}

	logrus.Infof("[SCHEDULE] Replaced send hours: %v", canonical)
	return canonical, nil
}

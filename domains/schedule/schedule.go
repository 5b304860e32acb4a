package schedule

import "context"

type IScheduleUsecase interface {
	// Hours returns the configured send hours in ascending order.
	// A missing store yields an empty slice, never an error.
	Hours(ctx context.Context) ([]int, error)
	// Replace overwrites the whole hour set. The input is deduplicated and
	// sorted; the canonical result is returned so callers can reconcile
	// displayed state with stored state.
	Replace(ctx context.Context, request ReplaceRequest) ([]int, error)
}

type ReplaceRequest struct {
	Hours []int `json:"hours" form:"hours"`
}

package channel

import "context"

// Channel is one destination group chat as seen by the messaging client.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IChannelUsecase owns the two destination pools: every group the WhatsApp
// client has ever observed (discovered) and the curated subset registered
// to receive broadcasts (approved). The approved list is independently
// writable; it is not validated against the discovered pool.
type IChannelUsecase interface {
	// RecordDiscovered registers a newly observed group. Repeated calls for
	// the same ID are no-ops.
	RecordDiscovered(ctx context.Context, ch Channel) error
	ListDiscovered(ctx context.Context) ([]Channel, error)
	ListApproved(ctx context.Context) ([]Channel, error)
	// ReplaceApproved overwrites the approved set wholesale; callers submit
	// the complete desired list each time.
	ReplaceApproved(ctx context.Context, request ReplaceApprovedRequest) error
}

type ReplaceApprovedRequest struct {
	Channels []Channel `json:"channels" form:"channels"`
}

package broadcast

import (
	"context"

	domainChannel "github.com/AzielCF/az-cast/domains/channel"
)

// Media is a fully resolved image asset ready to be sent.
type Media struct {
	Data     []byte
	MimeType string
	FileName string
}

// IBroadcastUsecase is a best-effort fan-out: one destination's failure is
// logged and never aborts the remaining destinations. No delivery receipts
// are kept; the outcome lives only in the logs.
type IBroadcastUsecase interface {
	Dispatch(ctx context.Context, caption string, media Media, destinations []domainChannel.Channel)
}

package usecase

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	domainBroadcast "github.com/AzielCF/az-cast/domains/broadcast"
	domainChannel "github.com/AzielCF/az-cast/domains/channel"
)

// ImageSender is the single operation the dispatcher needs from the
// messaging client.
type ImageSender interface {
	SendImage(ctx context.Context, toID string, data []byte, mimeType, caption string) error
}

type serviceBroadcast struct {
	sender ImageSender
}

func NewBroadcastService(sender ImageSender) domainBroadcast.IBroadcastUsecase {
	return &serviceBroadcast{sender: sender}
}

// Dispatch fans out sequentially: the WhatsApp socket is one shared
// connection, so destinations are not sent in parallel. A failing
// destination is logged and the loop continues.
func (service *serviceBroadcast) Dispatch(ctx context.Context, caption string, media domainBroadcast.Media, destinations []domainChannel.Channel) {
	if len(destinations) == 0 {
		logrus.Warn("[BROADCAST] No approved destinations, nothing to send")
		return
	}

	logrus.Infof("[BROADCAST] Sending %s (%s) to %d destination(s)",
		media.FileName, humanize.Bytes(uint64(len(media.Data))), len(destinations))

	for _, destination := range destinations {
		if err := service.sender.SendImage(ctx, destination.ID, media.Data, media.MimeType, caption); err != nil {
			logrus.WithError(err).Errorf("[BROADCAST] Failed to send to %s (%s)", destination.Name, destination.ID)
			continue
		}
		logrus.Infof("[BROADCAST] Sent to %s (%s)", destination.Name, destination.ID)
	}
}

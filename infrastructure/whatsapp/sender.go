package whatsapp

import (
	"context"
	"fmt"
	"strings"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"google.golang.org/protobuf/proto"

	"github.com/AzielCF/az-cast/config"
	pkgError "github.com/AzielCF/az-cast/pkg/error"
)

// Sender delivers caption+image payloads through the singleton client.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) SendImage(ctx context.Context, toID string, data []byte, mimeType, caption string) error {
	client := GetClient()
	if client == nil {
		return pkgError.ErrWaCLI
	}
	if !client.IsConnected() {
		return pkgError.ErrNotConnected
	}

	// Bare numeric IDs from legacy imports lack the server suffix.
	if !strings.ContainsRune(toID, '@') {
		toID += config.WhatsappTypeGroup
	}

	jid, err := types.ParseJID(toID)
	if err != nil {
		return fmt.Errorf("invalid JID %q: %w", toID, err)
	}

	uploaded, err := client.Upload(ctx, data, whatsmeow.MediaImage)
	if err != nil {
		return fmt.Errorf("failed to upload media: %w", err)
	}

	msg := &waE2E.Message{
		ImageMessage: &waE2E.ImageMessage{
			URL:           proto.String(uploaded.URL),
			DirectPath:    proto.String(uploaded.DirectPath),
			MediaKey:      uploaded.MediaKey,
			Mimetype:      proto.String(mimeType),
			FileEncSHA256: uploaded.FileEncSHA256,
			FileSHA256:    uploaded.FileSHA256,
			FileLength:    proto.Uint64(uploaded.FileLength),
			Caption:       proto.String(caption),
		},
	}

	if _, err := client.SendMessage(ctx, jid, msg); err != nil {
		return err
	}
	return nil
}

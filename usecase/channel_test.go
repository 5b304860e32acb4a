package usecase

import (
	"context"
	"testing"

	domainChannel "github.com/AzielCF/az-cast/domains/channel"
)

func newTestChannelService(t *testing.T) domainChannel.IChannelUsecase {
	t.Helper()

	svc, err := NewChannelService(newTestDB(t))
	if err != nil {
		t.Fatalf("NewChannelService() unexpected error: %v", err)
	}
	return svc
}

func TestChannelService_RecordDiscoveredDedupsByID(t *testing.T) {
	svc := newTestChannelService(t)
	ctx := context.Background()

	first := domainChannel.Channel{ID: "123@g.us", Name: "Equipe"}
	if err := svc.RecordDiscovered(ctx, first); err != nil {
		t.Fatalf("RecordDiscovered() unexpected error: %v", err)
	}
	// Same ID again, renamed group: the original record wins.
	if err := svc.RecordDiscovered(ctx, domainChannel.Channel{ID: "123@g.us", Name: "Equipe Renamed"}); err != nil {
		t.Fatalf("RecordDiscovered() duplicate unexpected error: %v", err)
	}
	// A different ID that happens to contain the first as substring must
	// still be recorded.
	if err := svc.RecordDiscovered(ctx, domainChannel.Channel{ID: "123@g.us-extra", Name: "Other"}); err != nil {
		t.Fatalf("RecordDiscovered() superstring unexpected error: %v", err)
	}

	discovered, err := svc.ListDiscovered(ctx)
	if err != nil {
		t.Fatalf("ListDiscovered() unexpected error: %v", err)
	}
	if len(discovered) != 2 {
		t.Fatalf("ListDiscovered() returned %d channels, want 2", len(discovered))
	}
	if discovered[0].Name != "Equipe" {
		t.Fatalf("ListDiscovered()[0].Name = %q, want original name kept", discovered[0].Name)
	}
}

func TestChannelService_RecordDiscoveredIgnoresEmptyID(t *testing.T) {
	svc := newTestChannelService(t)
	ctx := context.Background()

	if err := svc.RecordDiscovered(ctx, domainChannel.Channel{Name: "no id"}); err != nil {
		t.Fatalf("RecordDiscovered() unexpected error: %v", err)
	}
	discovered, err := svc.ListDiscovered(ctx)
	if err != nil {
		t.Fatalf("ListDiscovered() unexpected error: %v", err)
	}
	if len(discovered) != 0 {
		t.Fatalf("ListDiscovered() = %v, want empty", discovered)
	}
}

func TestChannelService_ReplaceApproved(t *testing.T) {
	svc := newTestChannelService(t)
	ctx := context.Background()

	err := svc.ReplaceApproved(ctx, domainChannel.ReplaceApprovedRequest{Channels: []domainChannel.Channel{
		{ID: "b@g.us", Name: "B"},
		{ID: "a@g.us", Name: "A"},
	}})
	if err != nil {
		t.Fatalf("ReplaceApproved() unexpected error: %v", err)
	}

	approved, err := svc.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved() unexpected error: %v", err)
	}
	if len(approved) != 2 {
		t.Fatalf("ListApproved() returned %d channels, want 2", len(approved))
	}
	// Submission order is preserved, not alphabetized.
	if approved[0].ID != "b@g.us" || approved[1].ID != "a@g.us" {
		t.Fatalf("ListApproved() order = %v, want submission order", approved)
	}

	// Replace wholesale: empty list clears everything.
	if err := svc.ReplaceApproved(ctx, domainChannel.ReplaceApprovedRequest{}); err != nil {
		t.Fatalf("ReplaceApproved() empty unexpected error: %v", err)
	}
	approved, err = svc.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved() unexpected error: %v", err)
	}
	if len(approved) != 0 {
		t.Fatalf("ListApproved() = %v, want empty after clearing", approved)
	}
}

func TestChannelService_ReplaceApprovedRejectsBlankID(t *testing.T) {
	svc := newTestChannelService(t)

	err := svc.ReplaceApproved(context.Background(), domainChannel.ReplaceApprovedRequest{Channels: []domainChannel.Channel{
		{ID: "", Name: "nameless"},
	}})
	if err == nil {
		t.Fatalf("ReplaceApproved() expected error for blank channel id")
	}
}

func TestChannelService_ApprovedIndependentOfDiscovered(t *testing.T) {
	svc := newTestChannelService(t)
	ctx := context.Background()

	// Approving a channel never seen by discovery is allowed.
	err := svc.ReplaceApproved(ctx, domainChannel.ReplaceApprovedRequest{Channels: []domainChannel.Channel{
		{ID: "manual@g.us", Name: "Manual"},
	}})
	if err != nil {
		t.Fatalf("ReplaceApproved() unexpected error: %v", err)
	}

	discovered, err := svc.ListDiscovered(ctx)
	if err != nil {
		t.Fatalf("ListDiscovered() unexpected error: %v", err)
	}
	if len(discovered) != 0 {
		t.Fatalf("ListDiscovered() = %v, approving must not touch discovery", discovered)
	}
}

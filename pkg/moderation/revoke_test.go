package moderation

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRevokeChannelAccess(t *testing.T) {
	store := newFakeStore()
	access := newFakeAccess()
	access.failDenyOf["ch-2"] = errors.New("missing access")
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, access)

	channels := []ChannelRef{
		{ID: "ch-1", Name: "general"},
		{ID: "ch-2", Name: "memes"},
		{ID: "ch-3", Name: "support"},
	}

	revoked := svc.RevokeChannelAccess(context.Background(), "guild-1", "troublemaker", channels)

	if len(revoked) != 2 {
		t.Fatalf("revoked %d channels, want 2", len(revoked))
	}
	if revoked[0].ID != "ch-1" || revoked[1].ID != "ch-3" {
		t.Errorf("revoked = %v, want ch-1 then ch-3", revoked)
	}

	// a summary report naming exactly the successful channels is filed
	if len(store.reports) != 1 {
		t.Fatalf("%d summary reports, want 1", len(store.reports))
	}
	desc := store.reports[0].Description
	if !strings.Contains(desc, "general") || !strings.Contains(desc, "support") {
		t.Errorf("summary %q should name the revoked channels", desc)
	}
	if strings.Contains(desc, "memes") {
		t.Errorf("summary %q should not name the failed channel", desc)
	}
}

func TestRevokeChannelAccessUnresolvedUser(t *testing.T) {
	store := newFakeStore()
	access := newFakeAccess()
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, access)

	revoked := svc.RevokeChannelAccess(context.Background(), "guild-1", "ghost", []ChannelRef{{ID: "ch-1", Name: "general"}})

	if len(revoked) != 0 {
		t.Errorf("revoked %d channels for unresolved user, want 0", len(revoked))
	}
	if len(access.denied) != 0 {
		t.Errorf("%d channel calls for unresolved user, want 0", len(access.denied))
	}
	if len(store.reports) != 0 {
		t.Errorf("%d reports filed for unresolved user, want 0", len(store.reports))
	}
}

func TestRevokeChannelAccessSummaryFailureKeepsResult(t *testing.T) {
	store := newFakeStore()
	store.failInsertReport = errors.New("write concern error")
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, newFakeAccess())

	revoked := svc.RevokeChannelAccess(context.Background(), "guild-1", "troublemaker", []ChannelRef{
		{ID: "ch-1", Name: "general"},
		{ID: "ch-2", Name: "memes"},
	})

	if len(revoked) != 2 {
		t.Errorf("revoked %d channels, want 2 even when the summary report fails", len(revoked))
	}
}

func TestRevokeChannelAccessAllFail(t *testing.T) {
	store := newFakeStore()
	access := newFakeAccess()
	access.failDenyOf["ch-1"] = errors.New("missing access")
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, access)

	revoked := svc.RevokeChannelAccess(context.Background(), "guild-1", "troublemaker", []ChannelRef{{ID: "ch-1", Name: "general"}})

	if len(revoked) != 0 {
		t.Errorf("revoked %d channels, want 0", len(revoked))
	}
	// the summary is still filed, naming no channels
	if len(store.reports) != 1 {
		t.Fatalf("%d summary reports, want 1", len(store.reports))
	}
	if !strings.Contains(store.reports[0].Description, "none") {
		t.Errorf("summary %q should state that no channels were revoked", store.reports[0].Description)
	}
}

package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PancyStudios/PancyCasesGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// seedBan inserts an active ban dated relative to the test clock
func seedBan(store *fakeStore, userID string, age time.Duration) primitive.ObjectID {
	id := primitive.NewObjectID()
	store.bans = append(store.bans, models.Ban{
		ID:      id,
		GuildID: "guild-1",
		UserID:  userID,
		Date:    testClock.Add(-age),
		Active:  true,
		Reason:  "expired test ban",
	})
	return id
}

func TestSweepLiftsExpiredBans(t *testing.T) {
	store := newFakeStore()
	access := newFakeAccess()
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, access)

	seedBan(store, "user-1", 31*24*time.Hour)
	seedBan(store, "user-2", 40*24*time.Hour)

	result, err := svc.SweepExpiredBans(context.Background(), "guild-1")
	if err != nil {
		t.Fatalf("SweepExpiredBans() returned error: %v", err)
	}
	if result.Matched != 2 {
		t.Errorf("Matched = %d, want 2", result.Matched)
	}
	if result.Lifted != 2 {
		t.Errorf("Lifted = %d, want 2", result.Lifted)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %d, want 0", len(result.Errors))
	}

	for _, b := range store.bans {
		if b.Active {
			t.Errorf("ban for %s still active after sweep", b.UserID)
		}
	}
}

func TestSweepInclusiveBoundary(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, newFakeAccess())

	// exactly at the retention boundary: included
	seedBan(store, "user-1", 30*24*time.Hour)
	// one second more recent: excluded
	seedBan(store, "user-2", 30*24*time.Hour-time.Second)

	result, err := svc.SweepExpiredBans(context.Background(), "guild-1")
	if err != nil {
		t.Fatalf("SweepExpiredBans() returned error: %v", err)
	}
	if result.Matched != 1 {
		t.Fatalf("Matched = %d, want 1", result.Matched)
	}

	for _, b := range store.bans {
		switch b.UserID {
		case "user-1":
			if b.Active {
				t.Error("boundary ban should have been lifted")
			}
		case "user-2":
			if !b.Active {
				t.Error("ban inside the retention period should stay active")
			}
		}
	}
}

func TestSweepPartialFailure(t *testing.T) {
	store := newFakeStore()
	access := newFakeAccess()
	access.failUnbanOf["user-2"] = errors.New("unknown ban")
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, access)

	seedBan(store, "user-1", 31*24*time.Hour)
	seedBan(store, "user-2", 32*24*time.Hour)
	seedBan(store, "user-3", 33*24*time.Hour)

	result, err := svc.SweepExpiredBans(context.Background(), "guild-1")
	if err != nil {
		t.Fatalf("SweepExpiredBans() returned error: %v", err)
	}
	if result.Matched != 3 {
		t.Errorf("Matched = %d, want 3", result.Matched)
	}
	if result.Lifted != 2 {
		t.Errorf("Lifted = %d, want 2", result.Lifted)
	}
	if len(result.Errors) != 1 {
		t.Errorf("Errors = %d, want 1", len(result.Errors))
	}

	// the failed unban is still marked processed so the sweep does not
	// retry it forever; this is intended behavior
	for _, b := range store.bans {
		if b.Active {
			t.Errorf("ban for %s still active; every attempted ban must be deactivated", b.UserID)
		}
	}
}

func TestSweepNothingToDo(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, newFakeAccess())

	// an active ban that is too recent to lift
	seedBan(store, "user-1", 24*time.Hour)

	result, err := svc.SweepExpiredBans(context.Background(), "guild-1")
	if err != nil {
		t.Fatalf("SweepExpiredBans() returned error: %v", err)
	}
	if !result.NothingToDo() {
		t.Error("sweep with no expired bans should report nothing to do")
	}
}

func TestSweepStoreUnavailable(t *testing.T) {
	store := newFakeStore()
	store.available = false
	access := newFakeAccess()
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, access)

	result, err := svc.SweepExpiredBans(context.Background(), "guild-1")
	if err != nil {
		t.Fatalf("SweepExpiredBans() with unavailable store returned error: %v", err)
	}
	if !result.NothingToDo() {
		t.Error("unavailable store should yield a nothing-to-do result, not an error")
	}
	if len(access.unbanned) != 0 {
		t.Errorf("%d unbans attempted with unavailable store, want 0", len(access.unbanned))
	}
}

func TestSweepQueryFailure(t *testing.T) {
	store := newFakeStore()
	store.failFind = errors.New("cursor timeout")
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, newFakeAccess())

	_, err := svc.SweepExpiredBans(context.Background(), "guild-1")
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Errorf("SweepExpiredBans() error = %v, want StoreError", err)
	}
}

func TestGuildSweepLockIsPerGuild(t *testing.T) {
	svc := newTestService(newFakeStore(), defaultDirectory(), &fakeNotifier{}, newFakeAccess())

	a := svc.guildSweepLock("guild-1")
	b := svc.guildSweepLock("guild-1")
	c := svc.guildSweepLock("guild-2")

	if a != b {
		t.Error("same guild should share one sweep lock")
	}
	if a == c {
		t.Error("different guilds should not share a sweep lock")
	}
}

package moderation

import (
	"testing"
	"time"

	"github.com/PancyStudios/PancyCasesGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeGuildLister struct {
	guilds []string
}

func (f *fakeGuildLister) GuildIDs() []string {
	return f.guilds
}

func TestSweeperRunOnceCoversAllGuilds(t *testing.T) {
	store := newFakeStore()
	access := newFakeAccess()
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, access)

	for _, guildID := range []string{"guild-1", "guild-2"} {
		store.bans = append(store.bans, models.Ban{
			ID:      primitive.NewObjectID(),
			GuildID: guildID,
			UserID:  "user-1",
			Date:    testClock.Add(-45 * 24 * time.Hour),
			Active:  true,
			Reason:  "expired test ban",
		})
	}

	sweeper := NewSweeper(svc, &fakeGuildLister{guilds: []string{"guild-1", "guild-2", "guild-3"}}, time.Hour)
	sweeper.RunOnce()

	for _, b := range store.bans {
		if b.Active {
			t.Errorf("ban in %s still active after sweep", b.GuildID)
		}
	}
	if len(access.unbanned) != 2 {
		t.Errorf("unbanned %d users, want 2", len(access.unbanned))
	}
}

func TestSweeperStopIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, newFakeAccess())

	sweeper := NewSweeper(svc, &fakeGuildLister{}, time.Hour)
	sweeper.Start()
	sweeper.Stop()
	sweeper.Stop()
}

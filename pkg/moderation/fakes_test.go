package moderation

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/PancyStudios/PancyCasesGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory Store for exercising the engine without MongoDB
type fakeStore struct {
	mu        sync.Mutex
	available bool

	reports  []models.Report
	warnings []models.Warning
	bans     []models.Ban

	failInsertReport  error
	failInsertWarning error
	failInsertBan     error
	failFind          error
	failDeactivate    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{available: true}
}

func (f *fakeStore) Available() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.available
}

func (f *fakeStore) InsertReport(_ context.Context, r *models.Report) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsertReport != nil {
		return primitive.NilObjectID, f.failInsertReport
	}
	stored := *r
	stored.ID = primitive.NewObjectID()
	f.reports = append(f.reports, stored)
	return stored.ID, nil
}

func (f *fakeStore) InsertWarning(_ context.Context, w *models.Warning) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsertWarning != nil {
		return primitive.NilObjectID, f.failInsertWarning
	}
	stored := *w
	stored.ID = primitive.NewObjectID()
	f.warnings = append(f.warnings, stored)
	return stored.ID, nil
}

func (f *fakeStore) InsertBan(_ context.Context, b *models.Ban) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsertBan != nil {
		return primitive.NilObjectID, f.failInsertBan
	}
	stored := *b
	stored.ID = primitive.NewObjectID()
	f.bans = append(f.bans, stored)
	return stored.ID, nil
}

func (f *fakeStore) RecentWarnings(_ context.Context, guildID, userID string, limit int) ([]models.Warning, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind != nil {
		return nil, f.failFind
	}
	var matched []models.Warning
	for _, w := range f.warnings {
		if w.GuildID == guildID && w.UserID == userID {
			matched = append(matched, w)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeStore) ActiveBan(_ context.Context, guildID, userID string) (*models.Ban, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind != nil {
		return nil, f.failFind
	}
	for i := range f.bans {
		b := f.bans[i]
		if b.GuildID == guildID && b.UserID == userID && b.Active {
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ExpiredActiveBans(_ context.Context, guildID string, cutoff time.Time) ([]models.Ban, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind != nil {
		return nil, f.failFind
	}
	var matched []models.Ban
	for _, b := range f.bans {
		if b.GuildID == guildID && b.Active && !b.Date.After(cutoff) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (f *fakeStore) DeactivateBans(_ context.Context, ids []primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDeactivate != nil {
		return f.failDeactivate
	}
	for _, id := range ids {
		for i := range f.bans {
			if f.bans[i].ID == id && f.bans[i].Active {
				f.bans[i].Active = false
			}
		}
	}
	return nil
}

func (f *fakeStore) CountReports(_ context.Context, guildID, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind != nil {
		return 0, f.failFind
	}
	var n int64
	for _, r := range f.reports {
		if r.GuildID == guildID && r.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CountWarnings(_ context.Context, guildID, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind != nil {
		return 0, f.failFind
	}
	var n int64
	for _, w := range f.warnings {
		if w.GuildID == guildID && w.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) LatestBan(_ context.Context, guildID, userID string) (*models.Ban, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind != nil {
		return nil, f.failFind
	}
	var latest *models.Ban
	for i := range f.bans {
		b := f.bans[i]
		if b.GuildID != guildID || b.UserID != userID {
			continue
		}
		if latest == nil || b.Date.After(latest.Date) {
			latest = &b
		}
	}
	return latest, nil
}

func (f *fakeStore) LatestWarning(_ context.Context, guildID, userID string) (*models.Warning, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind != nil {
		return nil, f.failFind
	}
	var latest *models.Warning
	for i := range f.warnings {
		w := f.warnings[i]
		if w.GuildID != guildID || w.UserID != userID {
			continue
		}
		if latest == nil || w.Date.After(latest.Date) {
			latest = &w
		}
	}
	return latest, nil
}

func (f *fakeStore) ReportByID(_ context.Context, id primitive.ObjectID) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind != nil {
		return nil, f.failFind
	}
	for i := range f.reports {
		if f.reports[i].ID == id {
			r := f.reports[i]
			return &r, nil
		}
	}
	return nil, nil
}

// fakeDirectory resolves handles from a fixed map
type fakeDirectory struct {
	users map[string]string
}

func (f *fakeDirectory) Resolve(_ context.Context, _ string, handle string) (string, error) {
	if id, ok := f.users[handle]; ok {
		return id, nil
	}
	return "", errors.New("no such member")
}

// fakeNotifier records direct messages and can be made to fail
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	fail     error
}

func (f *fakeNotifier) SendDirectMessage(_ context.Context, userID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.messages = append(f.messages, userID+": "+text)
	return nil
}

func (f *fakeNotifier) sent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

// fakeAccess records platform calls; individual operations can be failed
// per user or per channel
type fakeAccess struct {
	mu          sync.Mutex
	banned      []string
	unbanned    []string
	denied      []string
	failBan     error
	failUnbanOf map[string]error
	failDenyOf  map[string]error
}

func newFakeAccess() *fakeAccess {
	return &fakeAccess{
		failUnbanOf: make(map[string]error),
		failDenyOf:  make(map[string]error),
	}
}

func (f *fakeAccess) DenyChannelAccess(_ context.Context, _, _, channelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failDenyOf[channelID]; ok {
		return err
	}
	f.denied = append(f.denied, channelID)
	return nil
}

func (f *fakeAccess) PlatformBan(_ context.Context, _, userID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failBan != nil {
		return f.failBan
	}
	f.banned = append(f.banned, userID)
	return nil
}

func (f *fakeAccess) PlatformUnban(_ context.Context, _, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failUnbanOf[userID]; ok {
		return err
	}
	f.unbanned = append(f.unbanned, userID)
	return nil
}

// testClock is a fixed reference time for deterministic window math
var testClock = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore, dir *fakeDirectory, notifier *fakeNotifier, access *fakeAccess) *Service {
	cfg := Config{
		WarningsThresh:    3,
		WarningsRangeDays: 7,
		RetentionDays:     30,
	}
	s := NewService(cfg, store, dir, notifier, access, nil)
	s.now = func() time.Time { return testClock }
	return s
}

func defaultDirectory() *fakeDirectory {
	return &fakeDirectory{users: map[string]string{
		"troublemaker": "user-1",
		"bystander":    "user-2",
	}}
}

package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PancyStudios/PancyCasesGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildSummaryCleanUser(t *testing.T) {
	svc := newTestService(newFakeStore(), defaultDirectory(), &fakeNotifier{}, newFakeAccess())

	summary, err := svc.BuildSummary(context.Background(), "guild-1", "bystander")
	if err != nil {
		t.Fatalf("BuildSummary() returned error: %v", err)
	}

	if summary.Reports != 0 {
		t.Errorf("Reports = %d, want 0", summary.Reports)
	}
	if summary.Warnings != 0 {
		t.Errorf("Warnings = %d, want 0", summary.Warnings)
	}
	if summary.Banned {
		t.Error("clean user should not be banned")
	}
	if summary.LastWarningReport != NoLinkedReport {
		t.Errorf("LastWarningReport = %q, want %q", summary.LastWarningReport, NoLinkedReport)
	}
}

func TestBuildSummaryWithHistory(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, newFakeAccess())

	reportID := primitive.NewObjectID()
	store.reports = append(store.reports, models.Report{
		ID:          reportID,
		GuildID:     "guild-1",
		UserID:      "user-1",
		Description: "spamming invites",
		CreatedAt:   testClock.Format(time.RFC3339),
	})
	store.warnings = append(store.warnings, models.Warning{
		ID:       primitive.NewObjectID(),
		GuildID:  "guild-1",
		UserID:   "user-1",
		Date:     testClock.Add(-24 * time.Hour),
		ReportID: reportID,
	})
	store.bans = append(store.bans, models.Ban{
		ID:      primitive.NewObjectID(),
		GuildID: "guild-1",
		UserID:  "user-1",
		Date:    testClock.Add(-48 * time.Hour),
		Active:  true,
		Reason:  "escalated",
	})

	summary, err := svc.BuildSummary(context.Background(), "guild-1", "troublemaker")
	if err != nil {
		t.Fatalf("BuildSummary() returned error: %v", err)
	}

	if summary.Reports != 1 {
		t.Errorf("Reports = %d, want 1", summary.Reports)
	}
	if summary.Warnings != 1 {
		t.Errorf("Warnings = %d, want 1", summary.Warnings)
	}
	if !summary.Banned {
		t.Error("user with an active ban should be banned")
	}
	if summary.LastBan == nil || summary.LastBan.Reason != "escalated" {
		t.Errorf("LastBan = %+v, want the escalated ban", summary.LastBan)
	}
	if summary.LastWarningReport != "spamming invites" {
		t.Errorf("LastWarningReport = %q, want the linked report description", summary.LastWarningReport)
	}
}

func TestBuildSummaryMissingLinkedReport(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, newFakeAccess())

	// a warning whose report was never stored (or has been retired)
	store.warnings = append(store.warnings, models.Warning{
		ID:       primitive.NewObjectID(),
		GuildID:  "guild-1",
		UserID:   "user-1",
		Date:     testClock.Add(-24 * time.Hour),
		ReportID: primitive.NewObjectID(),
	})

	summary, err := svc.BuildSummary(context.Background(), "guild-1", "troublemaker")
	if err != nil {
		t.Fatalf("BuildSummary() returned error: %v", err)
	}
	if summary.LastWarningReport != NoLinkedReport {
		t.Errorf("LastWarningReport = %q, want placeholder %q", summary.LastWarningReport, NoLinkedReport)
	}
}

func TestBuildSummaryUnresolvedUser(t *testing.T) {
	svc := newTestService(newFakeStore(), defaultDirectory(), &fakeNotifier{}, newFakeAccess())

	_, err := svc.BuildSummary(context.Background(), "guild-1", "ghost")
	if !errors.Is(err, ErrUserNotResolved) {
		t.Errorf("BuildSummary() error = %v, want ErrUserNotResolved", err)
	}
}

func TestBuildSummarySubQueryFailureIsBestEffort(t *testing.T) {
	store := newFakeStore()
	store.failFind = errors.New("cursor timeout")
	svc := newTestService(store, defaultDirectory(), &fakeNotifier{}, newFakeAccess())

	summary, err := svc.BuildSummary(context.Background(), "guild-1", "troublemaker")
	if err != nil {
		t.Fatalf("BuildSummary() returned error: %v, sub-queries are best effort", err)
	}
	if summary.Reports != 0 || summary.Warnings != 0 || summary.Banned {
		t.Errorf("failed sub-queries should yield zero values, got %+v", summary)
	}
}

package mqtt

import (
	"context"
	"testing"
	"time"

	"github.com/PancyStudios/PancyCasesGo/pkg/models"
	"github.com/PancyStudios/PancyCasesGo/pkg/moderation"
)

type fakeSummaryBuilder struct {
	guildID string
	handle  string
	summary *moderation.Summary
	err     error
}

func (f *fakeSummaryBuilder) BuildSummary(ctx context.Context, guildID, userHandle string) (*moderation.Summary, error) {
	f.guildID = guildID
	f.handle = userHandle
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

func TestHandleSummaryQuery(t *testing.T) {
	fake := &fakeSummaryBuilder{
		summary: &moderation.Summary{
			UserID:            "42",
			Reports:           3,
			Warnings:          2,
			Banned:            true,
			LastWarningReport: "spamming invite links",
			LastBan: &models.Ban{
				Date:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				Active: true,
				Reason: "repeated warnings",
			},
		},
	}

	payload := map[string]interface{}{
		"_topic": "guilds/guild-1/summary",
		"user":   "42",
	}

	data, err := handleSummaryQuery(fake, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fake.guildID != "guild-1" {
		t.Errorf("expected guild id from topic, got %q", fake.guildID)
	}
	if fake.handle != "42" {
		t.Errorf("expected user handle from payload, got %q", fake.handle)
	}

	resp, ok := data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map response, got %T", data)
	}
	if resp["userId"] != "42" {
		t.Errorf("expected userId 42, got %v", resp["userId"])
	}
	if resp["reports"] != int64(3) {
		t.Errorf("expected 3 reports, got %v", resp["reports"])
	}
	if resp["banned"] != true {
		t.Errorf("expected banned true, got %v", resp["banned"])
	}
	if _, ok := resp["lastBan"]; !ok {
		t.Error("expected lastBan in the response")
	}
}

func TestHandleSummaryQueryNoBanHistory(t *testing.T) {
	fake := &fakeSummaryBuilder{
		summary: &moderation.Summary{
			UserID:            "7",
			LastWarningReport: moderation.NoLinkedReport,
		},
	}

	payload := map[string]interface{}{
		"_topic": "guilds/guild-1/summary",
		"user":   "7",
	}

	data, err := handleSummaryQuery(fake, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp := data.(map[string]interface{})
	if _, ok := resp["lastBan"]; ok {
		t.Error("expected no lastBan for a user with no ban history")
	}
}

func TestHandleSummaryQueryBadRequests(t *testing.T) {
	fake := &fakeSummaryBuilder{summary: &moderation.Summary{}}

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"wrong topic", map[string]interface{}{"_topic": "guilds/guild-1/other", "user": "42"}},
		{"missing topic", map[string]interface{}{"user": "42"}},
		{"missing user", map[string]interface{}{"_topic": "guilds/guild-1/summary"}},
	}

	for _, tt := range tests {
		if _, err := handleSummaryQuery(fake, tt.payload); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}

func TestHandleSummaryQueryBuilderError(t *testing.T) {
	fake := &fakeSummaryBuilder{err: moderation.ErrUserNotResolved}

	payload := map[string]interface{}{
		"_topic": "guilds/guild-1/summary",
		"user":   "nobody",
	}

	if _, err := handleSummaryQuery(fake, payload); err != moderation.ErrUserNotResolved {
		t.Errorf("expected ErrUserNotResolved, got %v", err)
	}
}

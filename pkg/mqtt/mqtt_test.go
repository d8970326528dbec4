package mqtt

import (
	"testing"
)

func TestTopicMatch(t *testing.T) {
	tests := []struct {
		pattern string
		topic   string
		want    bool
	}{
		{"pancycases/guild-1/events", "pancycases/guild-1/events", true},
		{"pancycases/+/events", "pancycases/guild-1/events", true},
		{"pancycases/+/events", "pancycases/guild-1/other", false},
		{"pancycases/#", "pancycases/guild-1/events", true},
		{"pancycases/#", "pancycases", true},
		{"pancycases/guild-1/events", "pancycases/guild-1", false},
		{"pancycases/guild-1", "pancycases/guild-1/events", false},
		{"+/+/+", "a/b/c", true},
	}

	for _, tt := range tests {
		if got := topicMatch(tt.pattern, tt.topic); got != tt.want {
			t.Errorf("topicMatch(%q, %q) = %v, want %v", tt.pattern, tt.topic, got, tt.want)
		}
	}
}

package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Report represents a recorded incident involving a user.
// Immutable once created; Warning and Ban records point back at it by id.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GuildID     string             `bson:"guildId" json:"guildId"`
	UserID      string             `bson:"userId" json:"userId"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Attachments []string           `bson:"attachments,omitempty" json:"attachments,omitempty"`
	CreatedAt   string             `bson:"createdAt" json:"createdAt"` // RFC3339, sortable
}

// HasContent reports whether the report carries a description or at least
// one attachment. A report with neither is invalid.
func (r *Report) HasContent() bool {
	return r.Description != "" || len(r.Attachments) > 0
}

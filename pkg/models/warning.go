package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Warning represents a formal caution filed against a user.
// Immutable once created. ReportID is a weak reference: the linked report
// may be queried independently and its absence does not invalidate the warning.
type Warning struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GuildID  string             `bson:"guildId" json:"guildId"`
	UserID   string             `bson:"userId" json:"userId"`
	Date     time.Time          `bson:"date" json:"date"`
	ReportID primitive.ObjectID `bson:"reportId,omitempty" json:"reportId,omitempty"`
}

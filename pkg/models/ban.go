package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ban represents a revocation of a user's platform access.
// Created with Active=true; the only permitted mutation is flipping Active
// to false, which the lifecycle sweep does through a batched update.
type Ban struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GuildID  string             `bson:"guildId" json:"guildId"`
	UserID   string             `bson:"userId" json:"userId"`
	Date     time.Time          `bson:"date" json:"date"`
	Active   bool               `bson:"active" json:"active"`
	Reason   string             `bson:"reason" json:"reason"`
	ReportID primitive.ObjectID `bson:"reportId,omitempty" json:"reportId,omitempty"`
}

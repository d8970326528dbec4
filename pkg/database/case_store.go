// Package database - CaseStore provides access to the moderation case collections.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyCasesGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names for the three case record kinds
const (
	ReportsCollection  = "reports"
	WarningsCollection = "warnings"
	BansCollection     = "bans"
)

const opTimeout = 5 * time.Second

// CaseStore provides typed access to the reports, warnings and bans collections
type CaseStore struct {
	db *Database
}

var globalCaseStore *CaseStore

// InitCaseStore initializes the global CaseStore instance
func InitCaseStore(db *Database) *CaseStore {
	globalCaseStore = NewCaseStore(db)
	return globalCaseStore
}

// GetCaseStore returns the global CaseStore instance
func GetCaseStore() *CaseStore {
	return globalCaseStore
}

// NewCaseStore creates a CaseStore backed by the given database
func NewCaseStore(db *Database) *CaseStore {
	return &CaseStore{db: db}
}

// Available reports whether the backing collections can be reached
func (s *CaseStore) Available() bool {
	return s.db != nil && s.db.Connected()
}

func (s *CaseStore) collection(name string) (*mongo.Collection, error) {
	if !s.Available() {
		return nil, fmt.Errorf("database not connected")
	}
	col := s.db.GetCollection(name)
	if col == nil {
		return nil, fmt.Errorf("collection %q not available", name)
	}
	return col, nil
}

func (s *CaseStore) insert(ctx context.Context, name string, doc interface{}) (primitive.ObjectID, error) {
	col, err := s.collection(name)
	if err != nil {
		return primitive.NilObjectID, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// InsertReport persists a report and returns its generated id
func (s *CaseStore) InsertReport(ctx context.Context, r *models.Report) (primitive.ObjectID, error) {
	return s.insert(ctx, ReportsCollection, r)
}

// InsertWarning persists a warning and returns its generated id
func (s *CaseStore) InsertWarning(ctx context.Context, w *models.Warning) (primitive.ObjectID, error) {
	return s.insert(ctx, WarningsCollection, w)
}

// InsertBan persists a ban and returns its generated id
func (s *CaseStore) InsertBan(ctx context.Context, b *models.Ban) (primitive.ObjectID, error) {
	return s.insert(ctx, BansCollection, b)
}

// RecentWarnings returns up to limit warnings for (guild, user), newest first
func (s *CaseStore) RecentWarnings(ctx context.Context, guildID, userID string, limit int) ([]models.Warning, error) {
	col, err := s.collection(WarningsCollection)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{"guildId": guildID, "userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var warnings []models.Warning
	if err := cursor.All(ctx, &warnings); err != nil {
		return nil, err
	}
	return warnings, nil
}

// ActiveBan returns the active ban for (guild, user), or nil when there is none
func (s *CaseStore) ActiveBan(ctx context.Context, guildID, userID string) (*models.Ban, error) {
	col, err := s.collection(BansCollection)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var ban models.Ban
	err = col.FindOne(ctx, bson.M{"guildId": guildID, "userId": userID, "active": true}).Decode(&ban)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &ban, nil
}

// ExpiredActiveBans returns active bans dated at or before the cutoff
func (s *CaseStore) ExpiredActiveBans(ctx context.Context, guildID string, cutoff time.Time) ([]models.Ban, error) {
	col, err := s.collection(BansCollection)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"guildId": guildID,
		"active":  true,
		"date":    bson.M{"$lte": cutoff},
	}

	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var bans []models.Ban
	if err := cursor.All(ctx, &bans); err != nil {
		return nil, err
	}
	return bans, nil
}

// DeactivateBans flips active to false for every given ban id in one batch.
// The batch is unordered: each update applies independently of the others.
func (s *CaseStore) DeactivateBans(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}

	col, err := s.collection(BansCollection)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(ids))
	for _, id := range ids {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id, "active": true}).
			SetUpdate(bson.M{"$set": bson.M{"active": false}}))
	}

	_, err = col.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return err
}

// CountReports returns the total number of reports filed for (guild, user)
func (s *CaseStore) CountReports(ctx context.Context, guildID, userID string) (int64, error) {
	return s.count(ctx, ReportsCollection, guildID, userID)
}

// CountWarnings returns the total number of warnings filed for (guild, user)
func (s *CaseStore) CountWarnings(ctx context.Context, guildID, userID string) (int64, error) {
	return s.count(ctx, WarningsCollection, guildID, userID)
}

func (s *CaseStore) count(ctx context.Context, name, guildID, userID string) (int64, error) {
	col, err := s.collection(name)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return col.CountDocuments(ctx, bson.M{"guildId": guildID, "userId": userID})
}

// LatestBan returns the most recent ban for (guild, user), or nil when there is none
func (s *CaseStore) LatestBan(ctx context.Context, guildID, userID string) (*models.Ban, error) {
	col, err := s.collection(BansCollection)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	var ban models.Ban
	err = col.FindOne(ctx, bson.M{"guildId": guildID, "userId": userID}, opts).Decode(&ban)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &ban, nil
}

// LatestWarning returns the most recent warning for (guild, user), or nil when there is none
func (s *CaseStore) LatestWarning(ctx context.Context, guildID, userID string) (*models.Warning, error) {
	col, err := s.collection(WarningsCollection)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	var warning models.Warning
	err = col.FindOne(ctx, bson.M{"guildId": guildID, "userId": userID}, opts).Decode(&warning)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &warning, nil
}

// ReportByID returns the report with the given id, or nil when it does not exist
func (s *CaseStore) ReportByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	if id.IsZero() {
		return nil, nil
	}

	col, err := s.collection(ReportsCollection)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var report models.Report
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

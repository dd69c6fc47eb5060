// Package mongodb implements the bed store on a MongoDB collection. Partial
// updates go through $set so concurrent editors follow field-level
// last-write-wins, and change streams drive the subscribe callback.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dlamayo/boardinghouse/internal/domain/models"
	"github.com/dlamayo/boardinghouse/internal/repository/bedstore"
)

const collName = "beds"

// Store implements bedstore.Store for MongoDB.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *zap.Logger

	watchCtx    context.Context
	watchCancel context.CancelFunc
}

var _ bedstore.Store = (*Store)(nil)

// Open connects to MongoDB and verifies the connection with a ping.
func Open(ctx context.Context, uri, dbName string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	return &Store{
		client:      client,
		coll:        client.Database(dbName).Collection(collName),
		logger:      logger,
		watchCtx:    watchCtx,
		watchCancel: watchCancel,
	}, nil
}

// List fetches the full collection.
func (s *Store) List(ctx context.Context) ([]models.BedRecord, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list beds: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.BedRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode beds: %w", err)
	}
	return records, nil
}

// Subscribe opens a change stream on the collection and re-lists on every
// event, pushing the fresh snapshot to fn.
func (s *Store) Subscribe(fn func([]models.BedRecord)) (func(), error) {
	stream, err := s.coll.Watch(s.watchCtx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("watch beds collection: %w", err)
	}

	ctx, cancel := context.WithCancel(s.watchCtx)
	go func() {
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			listCtx, listCancel := context.WithTimeout(ctx, 15*time.Second)
			records, err := s.List(listCtx)
			listCancel()
			if err != nil {
				s.logger.Warn("refresh after change event failed", zap.Error(err))
				continue
			}
			fn(records)
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			s.logger.Warn("change stream terminated", zap.Error(err))
		}
	}()

	return cancel, nil
}

// Create inserts a record with a generated string id.
func (s *Store) Create(ctx context.Context, rec models.BedRecord) (string, error) {
	rec.ID = uuid.NewString()
	rec.UpdatedAt = time.Now().UTC()

	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return "", fmt.Errorf("insert bed: %w", err)
	}
	return rec.ID, nil
}

// Update issues a $set with the non-nil patch fields. Clearing the trash
// marker writes a null, which readers treat the same as an absent field.
func (s *Store) Update(ctx context.Context, id string, patch bedstore.BedPatch) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.TenantName != nil {
		set["tenantName"] = *patch.TenantName
	}
	if patch.TenantPhone != nil {
		set["tenantPhone"] = *patch.TenantPhone
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	if patch.MoveInDate != nil {
		set["moveInDate"] = *patch.MoveInDate
	}
	if patch.MonthlyRent != nil {
		set["monthlyRent"] = *patch.MonthlyRent
	}
	if patch.Payments != nil {
		set["payments"] = patch.Payments
	}
	if patch.DeletedAt != nil {
		if *patch.DeletedAt == "" {
			set["deletedAt"] = nil
		} else {
			set["deletedAt"] = *patch.DeletedAt
		}
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update bed %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return bedstore.ErrNotFound
	}
	return nil
}

// Remove permanently deletes the record.
func (s *Store) Remove(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete bed %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return bedstore.ErrNotFound
	}
	return nil
}

// Close cancels outstanding subscriptions and disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	s.watchCancel()
	return s.client.Disconnect(ctx)
}

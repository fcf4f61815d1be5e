package preference

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/shipfwd/notifyd/pkg/notification"
)

// CollectionName is the MongoDB collection preference records are stored in.
const CollectionName = "notification_preferences"

// MongoStorage is the MongoDB-backed implementation of the Storage interface.
// A unique index on userId makes the one-record-per-user invariant hold under
// concurrent materialization; the losing writer gets ErrAlreadyExists.
type MongoStorage struct {
	col *mongo.Collection
}

// NewMongoStorage creates a preference storage on the given database.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{col: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique userId index the storage relies on.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *MongoStorage) Get(ctx context.Context, userID string) (*Preference, error) {
	var p Preference
	err := s.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}
	return &p, nil
}

func (s *MongoStorage) List(ctx context.Context) ([]Preference, error) {
	cursor, err := s.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "userId", Value: 1}}))
	if err != nil {
		return nil, storageErr(err)
	}

	preferences := []Preference{}
	if err := cursor.All(ctx, &preferences); err != nil {
		return nil, storageErr(err)
	}
	return preferences, nil
}

func (s *MongoStorage) Insert(ctx context.Context, p Preference) error {
	if _, err := s.col.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return storageErr(err)
	}
	return nil
}

func (s *MongoStorage) Replace(ctx context.Context, p Preference) (*Preference, error) {
	var updated Preference
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"userId": p.UserID},
		bson.M{
			"$set": bson.M{
				"preferences":  p.Preferences,
				"doNotDisturb": p.DoNotDisturb,
				"updatedAt":    p.UpdatedAt,
			},
			"$setOnInsert": bson.M{
				"_id":       p.ID,
				"userId":    p.UserID,
				"createdAt": p.CreatedAt,
			},
		},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, storageErr(err)
	}
	return &updated, nil
}

func (s *MongoStorage) SetCategory(ctx context.Context, userID string, t notification.Type, channels []notification.Channel, at time.Time) (*Preference, error) {
	return s.updateExisting(ctx, userID, bson.M{
		"preferences." + string(t): channels,
		"updatedAt":                at,
	})
}

func (s *MongoStorage) SetDoNotDisturb(ctx context.Context, userID string, dnd DoNotDisturb, at time.Time) (*Preference, error) {
	return s.updateExisting(ctx, userID, bson.M{
		"doNotDisturb": dnd,
		"updatedAt":    at,
	})
}

func (s *MongoStorage) updateExisting(ctx context.Context, userID string, set bson.M) (*Preference, error) {
	var p Preference
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}
	return &p, nil
}

func (s *MongoStorage) Delete(ctx context.Context, userID string) (*Preference, error) {
	var p Preference
	err := s.col.FindOneAndDelete(ctx, bson.M{"userId": userID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}
	return &p, nil
}

func storageErr(err error) error {
	return errors.Join(ErrStorage, err)
}

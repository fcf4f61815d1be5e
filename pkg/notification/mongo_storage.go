package notification

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CollectionName is the MongoDB collection notifications are stored in.
const CollectionName = "notifications"

// MongoStorage is the MongoDB-backed implementation of the Storage interface.
// Lifecycle invariants are enforced with atomic find-and-update filters, so
// concurrent processes cannot overwrite an existing readAt/sentAt.
type MongoStorage struct {
	col *mongo.Collection
}

// NewMongoStorage creates a notification storage on the given database.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{col: db.Collection(CollectionName)}
}

// EnsureIndexes creates the indexes the storage queries rely on.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdTimestamp", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isRead", Value: 1}}},
		{Keys: bson.D{{Key: "isSent", Value: 1}, {Key: "createdTimestamp", Value: 1}}},
		{Keys: bson.D{{Key: "entityType", Value: 1}, {Key: "entityId", Value: 1}}},
	})
	if err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *MongoStorage) Insert(ctx context.Context, n Notification) error {
	if _, err := s.col.InsertOne(ctx, n); err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *MongoStorage) Get(ctx context.Context, id string) (*Notification, error) {
	var n Notification
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}
	return &n, nil
}

func (s *MongoStorage) ListByUser(ctx context.Context, userID string, f ListFilter) ([]Notification, error) {
	filter := bson.M{"userId": userID}
	if f.IsRead != nil {
		filter["isRead"] = *f.IsRead
	}
	if f.IsSent != nil {
		filter["isSent"] = *f.IsSent
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdTimestamp", Value: -1}}).
		SetSkip(f.Skip)
	if f.Limit > 0 {
		opts = opts.SetLimit(f.Limit)
	}

	return s.findAll(ctx, filter, opts)
}

func (s *MongoStorage) CountUnread(ctx context.Context, userID string) (int64, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"userId": userID, "isRead": false})
	if err != nil {
		return 0, storageErr(err)
	}
	return count, nil
}

func (s *MongoStorage) MarkRead(ctx context.Context, id string, at time.Time) (*Notification, error) {
	return s.markOnce(ctx, id, "isRead", "readAt", at)
}

func (s *MongoStorage) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	res, err := s.col.UpdateMany(ctx,
		bson.M{"userId": userID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "readAt": at}},
	)
	if err != nil {
		return 0, storageErr(err)
	}
	return res.ModifiedCount, nil
}

func (s *MongoStorage) MarkSent(ctx context.Context, id string, at time.Time) (*Notification, error) {
	return s.markOnce(ctx, id, "isSent", "sentAt", at)
}

// markOnce flips the flag and stamps the timestamp atomically, filtering on
// the flag being false so a second call cannot overwrite the timestamp. When
// nothing matches, the record is either already marked or absent; a plain Get
// distinguishes the two.
func (s *MongoStorage) markOnce(ctx context.Context, id, flagField, timeField string, at time.Time) (*Notification, error) {
	var n Notification
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, flagField: false},
		bson.M{"$set": bson.M{flagField: true, timeField: at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err == nil {
		return &n, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return s.Get(ctx, id)
	}
	return nil, storageErr(err)
}

func (s *MongoStorage) Update(ctx context.Context, id string, fields UpdateFields) (*Notification, error) {
	set := bson.M{}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Message != nil {
		set["message"] = *fields.Message
	}
	if fields.Type != nil {
		set["type"] = *fields.Type
	}
	if fields.Channels != nil {
		set["channels"] = *fields.Channels
	}
	if fields.EntityType != nil {
		set["entityType"] = *fields.EntityType
	}
	if fields.EntityID != nil {
		set["entityId"] = *fields.EntityID
	}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	var n Notification
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}
	return &n, nil
}

func (s *MongoStorage) Delete(ctx context.Context, id string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storageErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStorage) DeleteReadBefore(ctx context.Context, userID string, cutoff time.Time) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{
		"userId":           userID,
		"isRead":           true,
		"createdTimestamp": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, storageErr(err)
	}
	return res.DeletedCount, nil
}

func (s *MongoStorage) ListPending(ctx context.Context, channel Channel, limit int64) ([]Notification, error) {
	filter := bson.M{"isSent": false}
	if channel != "" {
		filter["channels"] = channel
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdTimestamp", Value: 1}}).
		SetLimit(limit)

	return s.findAll(ctx, filter, opts)
}

func (s *MongoStorage) ListByEntity(ctx context.Context, entityType EntityType, entityID string) ([]Notification, error) {
	filter := bson.M{"entityType": entityType, "entityId": entityID}
	opts := options.Find().SetSort(bson.D{{Key: "createdTimestamp", Value: -1}})
	return s.findAll(ctx, filter, opts)
}

func (s *MongoStorage) StatsByType(ctx context.Context, userID string) (map[Type]Stats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "userId", Value: userID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$type"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "unread", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$isRead", false}}}, 1, 0,
				}},
			}}}},
		}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storageErr(err)
	}

	var rows []struct {
		Type   Type  `bson:"_id"`
		Total  int64 `bson:"total"`
		Unread int64 `bson:"unread"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, storageErr(err)
	}

	stats := make(map[Type]Stats, len(rows))
	for _, row := range rows {
		stats[row.Type] = Stats{Total: row.Total, Unread: row.Unread}
	}
	return stats, nil
}

func (s *MongoStorage) findAll(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]Notification, error) {
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr(err)
	}

	notifications := []Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, storageErr(err)
	}
	return notifications, nil
}

func storageErr(err error) error {
	return errors.Join(ErrStorage, err)
}

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"examreg/internal/registration/models"
)

// CollectionName is the MongoDB collection holding registration documents.
const CollectionName = "registrations"

const fieldCreatedAt = "createdAt"

// MongoStore stores one flat document per record: the payload fields, transactionId
// and createdAt, keyed by a generated ObjectID.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(CollectionName)}
}

func (s *MongoStore) Save(ctx context.Context, record *models.Record) (models.RecordID, error) {
	if record == nil {
		return "", ErrNilRecord
	}
	oid := primitive.NewObjectID()

	fields := record.Document()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "_id" || k == fieldCreatedAt {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := make(bson.D, 0, len(keys)+2)
	doc = append(doc, bson.E{Key: "_id", Value: oid})
	for _, k := range keys {
		doc = append(doc, bson.E{Key: k, Value: fields[k]})
	}
	doc = append(doc, bson.E{Key: fieldCreatedAt, Value: primitive.NewDateTimeFromTime(createdAt(record))})

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert registration: %w", err)
	}
	return models.RecordID(oid.Hex()), nil
}

func (s *MongoStore) FindByID(ctx context.Context, id models.RecordID) (*models.Record, error) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", id, ErrNotFound)
	}

	var raw bson.M
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("find %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return recordFromBSON(oid, raw), nil
}

func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func recordFromBSON(oid primitive.ObjectID, raw bson.M) *models.Record {
	r := &models.Record{ID: models.RecordID(oid.Hex()), Payload: models.Payload{}}
	for k, v := range raw {
		switch k {
		case "_id":
		case fieldCreatedAt:
			if dt, ok := v.(primitive.DateTime); ok {
				r.CreatedAt = dt.Time().UTC()
			}
		case models.FieldTransactionID:
			r.TransactionID, _ = v.(string)
		default:
			if s, ok := v.(string); ok {
				r.Payload[k] = s
			}
		}
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = oid.Timestamp().UTC().Truncate(time.Second)
	}
	return r
}

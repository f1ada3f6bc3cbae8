package repos

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"kidzplay/internal/domain"
)

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func OpenMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	log.Printf("[store] connected to MongoDB, database %s", dbName)
	return &MongoStore{client: client, db: client.Database(dbName)}, nil
}

func (s *MongoStore) Find(ctx context.Context, coll string, q Query) ([]domain.Document, error) {
	opts := options.Find()
	if q.SortBy != "" && q.SortDir != 0 {
		opts.SetSort(bson.D{{Key: q.SortBy, Value: q.SortDir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	cur, err := s.db.Collection(coll).Find(ctx, mongoFilter(q.Filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll, err)
	}
	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("read %s: %w", coll, err)
	}
	out := make([]domain.Document, 0, len(raw))
	for _, m := range raw {
		out = append(out, domain.Document(m))
	}
	return out, nil
}

func (s *MongoStore) FindOne(ctx context.Context, coll, id string) (domain.Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var m bson.M
	err = s.db.Collection(coll).FindOne(ctx, bson.M{domain.IDField: oid}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s/%s: %w", coll, id, err)
	}
	return domain.Document(m), nil
}

func (s *MongoStore) Insert(ctx context.Context, coll string, doc domain.Document) (domain.InsertResult, error) {
	res, err := s.db.Collection(coll).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return domain.InsertResult{}, fmt.Errorf("insert %s: %w", coll, err)
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

func (s *MongoStore) Upsert(ctx context.Context, coll, id string, fields domain.Document) (domain.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	res, err := s.db.Collection(coll).UpdateOne(ctx,
		bson.M{domain.IDField: oid},
		bson.M{"$set": bson.M(fields)},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("upsert %s/%s: %w", coll, id, err)
	}
	return domain.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (s *MongoStore) Delete(ctx context.Context, coll, id string) (domain.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.DeleteResult{Acknowledged: true}, nil
	}
	res, err := s.db.Collection(coll).DeleteOne(ctx, bson.M{domain.IDField: oid})
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("delete %s/%s: %w", coll, id, err)
	}
	return domain.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// mongoFilter translates conditions into a find filter. Substring matches are
// literal: the value is regex-quoted before use.
func mongoFilter(conds []Cond) bson.M {
	filter := bson.M{}
	for _, c := range conds {
		if c.Contains {
			filter[c.Field] = bson.M{"$regex": regexp.QuoteMeta(c.Value), "$options": "i"}
			continue
		}
		filter[c.Field] = c.Value
	}
	return filter
}

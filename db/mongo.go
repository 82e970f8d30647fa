package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"alpacafarm/models"
	"alpacafarm/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	Client *mongo.Client
	DB     *mongo.Database
	Now    Clock
}

// Connect opens the client, pings it and makes sure the indexes exist.
func Connect(ctx context.Context, uri, name string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &MongoStore{Client: client, DB: client.Database(name), Now: SystemClock}
	if err := s.createIndexes(ctx); err != nil {
		log.Printf("[Store] index creation failed: %v", err)
	}
	log.Printf("[Store] connected to MongoDB: %s", name)
	return s, nil
}

func (s *MongoStore) createIndexes(ctx context.Context) error {
	_, err := s.DB.Collection(models.UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoStore) Insert(ctx context.Context, coll string, doc Document) (string, error) {
	id := utils.GetUUID()
	doc.Stamp(id, s.Now())
	if _, err := s.DB.Collection(coll).InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert into %s: %w", coll, err)
	}
	return id, nil
}

func (s *MongoStore) FindByID(ctx context.Context, coll, id string, out any) error {
	return s.FindOne(ctx, coll, bson.M{"_id": id}, out)
}

func (s *MongoStore) FindOne(ctx context.Context, coll string, filter bson.M, out any) error {
	err := s.DB.Collection(coll).FindOne(ctx, orEmpty(filter)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find one in %s: %w", coll, err)
	}
	return nil
}

func (s *MongoStore) Find(ctx context.Context, coll string, filter bson.M, out any) error {
	cursor, err := s.DB.Collection(coll).Find(ctx, orEmpty(filter))
	if err != nil {
		return fmt.Errorf("find in %s: %w", coll, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", coll, err)
	}
	return nil
}

func (s *MongoStore) Update(ctx context.Context, coll, id string, fields bson.M) (bool, error) {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set["updated_at"] = s.Now()

	res, err := s.DB.Collection(coll).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("update %s/%s: %w", coll, id, err)
	}
	return res.MatchedCount > 0, nil
}

// Increment bumps a counter without touching updated_at.
func (s *MongoStore) Increment(ctx context.Context, coll, id, field string, by int) error {
	_, err := s.DB.Collection(coll).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: by}})
	if err != nil {
		return fmt.Errorf("increment %s on %s/%s: %w", field, coll, id, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, coll, id string) (bool, error) {
	res, err := s.DB.Collection(coll).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete %s/%s: %w", coll, id, err)
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) Count(ctx context.Context, coll string, filter bson.M) (int64, error) {
	n, err := s.DB.Collection(coll).CountDocuments(ctx, orEmpty(filter))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", coll, err)
	}
	return n, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	log.Println("[Store] disconnecting from MongoDB")
	return s.Client.Disconnect(ctx)
}

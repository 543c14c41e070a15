package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const connectTimeout = 10 * time.Second

type MongoDatabase struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects to uri and pings the primary before returning.
func OpenMongo(ctx context.Context, uri, database string) (*MongoDatabase, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &MongoDatabase{client: client, db: client.Database(database)}, nil
}

func (m *MongoDatabase) Collection(name string) Collection {
	return &mongoCollection{coll: m.db.Collection(name)}
}

func (m *MongoDatabase) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) FindAll(ctx context.Context, results any) error {
	cursor, err := c.coll.Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *mongoCollection) FindOne(ctx context.Context, filter bson.M, result any) error {
	err := c.coll.FindOne(ctx, filter).Decode(result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find one in %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc any) (bson.ObjectID, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("insert into %s: %w", c.coll.Name(), err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, fmt.Errorf("insert into %s: unexpected id type %T", c.coll.Name(), res.InsertedID)
	}
	return id, nil
}

func (c *mongoCollection) DeleteOne(ctx context.Context, id bson.ObjectID) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", c.coll.Name(), err)
	}
	return res.DeletedCount, nil
}

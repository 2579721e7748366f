package store

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/biograph-io/biograph/pkg/bel"
	"github.com/biograph-io/biograph/pkg/errors"
)

// networksCollection is the collection holding network documents.
const networksCollection = "networks"

// MongoStore implements Store backed by a MongoDB collection of network
// documents. It is safe for concurrent use; the driver manages pooling.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and returns a store over the given
// database. The connection is verified with a ping before returning.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.CodeLoadFailed, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(errors.CodeLoadFailed, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(networksCollection),
	}, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Insert stores a network document. Used by import tooling and tests.
func (s *MongoStore) Insert(ctx context.Context, doc *Document) error {
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return errors.Wrap(errors.CodeLoadFailed, err, "insert network %d", doc.ID)
	}
	return nil
}

// LoadGraph fetches and decodes the graph for the given network id.
func (s *MongoStore) LoadGraph(ctx context.Context, id int64) (*bel.Graph, error) {
	var doc Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.CodeNetworkNotFound, "network %d does not exist", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeLoadFailed, err, "load network %d", id)
	}
	return doc.Decode()
}

// ListRecentNetworks returns the most recently created network per name,
// newest first, using a group-by-name aggregation.
func (s *MongoStore) ListRecentNetworks(ctx context.Context) ([]NetworkInfo, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$name"},
			{Key: "doc", Value: bson.D{{Key: "$first", Value: bson.D{
				{Key: "_id", Value: "$_id"},
				{Key: "name", Value: "$name"},
				{Key: "version", Value: "$version"},
				{Key: "created_at", Value: "$created_at"},
			}}}},
		}}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$doc"}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(errors.CodeLoadFailed, err, "list recent networks")
	}
	defer cursor.Close(ctx)

	var infos []NetworkInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, errors.Wrap(errors.CodeLoadFailed, err, "decode network listing")
	}
	return infos, nil
}

// NetworkByName resolves a name to the id of its most recent version.
func (s *MongoStore) NetworkByName(ctx context.Context, name string) (int64, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"_id": 1})

	var doc struct {
		ID int64 `bson:"_id"`
	}
	err := s.coll.FindOne(ctx, bson.M{"name": name}, opts).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return 0, errors.New(errors.CodeNetworkNotFound, "no network named %q", name)
	}
	if err != nil {
		return 0, errors.Wrap(errors.CodeLoadFailed, err, "resolve network %q", name)
	}
	return doc.ID, nil
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)

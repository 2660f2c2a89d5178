package repository

import (
	"context"
	"errors"

	"edutech_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrResultNotFound = errors.New("result not found")

type MongoResultRepository struct {
	Col *mongo.Collection
}

func NewMongoResultRepository(db *mongo.Database) *MongoResultRepository {
	return &MongoResultRepository{Col: db.Collection("results")}
}

func (r *MongoResultRepository) Create(ctx context.Context, result *model.Result) error {
	result.EnsureID()
	_, err := r.Col.InsertOne(ctx, result)
	return err
}

func (r *MongoResultRepository) FindByUsername(ctx context.Context, username string) ([]model.Result, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	results := []model.Result{}
	for cur.Next(ctx) {
		var res model.Result
		if err := cur.Decode(&res); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, cur.Err()
}

func (r *MongoResultRepository) FindLatestByUsername(ctx context.Context, username string) (*model.Result, error) {
	var res model.Result
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	err := r.Col.FindOne(ctx, bson.M{"username": username}, opts).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// MongoPinger 健康检查
type MongoPinger struct {
	Client *mongo.Client
}

func (p MongoPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx, nil)
}

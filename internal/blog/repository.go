package blog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Post, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter) ([]Post, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "published_at", Value: -1},
	})

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Post, 0)
	for cursor.Next(ctx) {
		var p Post
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

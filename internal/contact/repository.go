package contact

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, msg Message) error
	List(ctx context.Context) ([]Message, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, msg Message) error {
	_, err := r.col.InsertOne(ctx, msg)
	return err
}

func (r *MongoRepository) List(ctx context.Context) ([]Message, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
	})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Message, 0)
	for cursor.Next(ctx) {
		var m Message
		if err := cursor.Decode(&m); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

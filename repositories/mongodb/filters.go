package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"varq/api/models"
)

func (r *Repository) InsertFilterStash(ctx context.Context, stash models.FilterStash) error {
	qctx, cancel := r.boundContext(ctx)
	defer cancel()

	_, err := r.Database.Collection(filterStashCollection).InsertOne(qctx, stash)
	return err
}

func (r *Repository) FindFilterStashById(ctx context.Context, stashId string) (*models.FilterStash, error) {
	qctx, cancel := r.boundContext(ctx)
	defer cancel()

	var stash models.FilterStash
	err := r.Database.Collection(filterStashCollection).
		FindOne(qctx, bson.M{"_id": stashId}).
		Decode(&stash)
	if err != nil {
		return nil, err
	}

	return &stash, nil
}

// FindFilterStashes lists an institute's saved filters, optionally
// narrowed to one category, oldest first.
func (r *Repository) FindFilterStashes(ctx context.Context, instituteId string, category string) ([]models.FilterStash, error) {
	qctx, cancel := r.boundContext(ctx)
	defer cancel()

	query := bson.M{"institute_id": instituteId}
	if category != "" {
		query["category"] = category
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.Database.Collection(filterStashCollection).Find(qctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(qctx)

	var stashes []models.FilterStash
	if decodeErr := cursor.All(qctx, &stashes); decodeErr != nil {
		return nil, decodeErr
	}

	return stashes, nil
}

func (r *Repository) DeleteFilterStash(ctx context.Context, stashId string) (int64, error) {
	qctx, cancel := r.boundContext(ctx)
	defer cancel()

	result, err := r.Database.Collection(filterStashCollection).DeleteOne(qctx, bson.M{"_id": stashId})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

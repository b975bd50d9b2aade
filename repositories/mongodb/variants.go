package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"varq/api/models"
)

// FindVariants runs a rendered query document against the variant
// collection, highest rank score first.
func (r *Repository) FindVariants(ctx context.Context, query map[string]interface{}, limit int64) ([]models.Variant, error) {
	qctx, cancel := r.boundContext(ctx)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "rank_score", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.Database.Collection(variantCollection).Find(qctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(qctx)

	var variants []models.Variant
	if decodeErr := cursor.All(qctx, &variants); decodeErr != nil {
		return nil, decodeErr
	}

	return variants, nil
}

// FindVariantByDocumentId returns mongo.ErrNoDocuments when the
// document is missing ; callers translate that to a 404.
func (r *Repository) FindVariantByDocumentId(ctx context.Context, documentId string) (*models.Variant, error) {
	qctx, cancel := r.boundContext(ctx)
	defer cancel()

	var variant models.Variant
	err := r.Database.Collection(variantCollection).
		FindOne(qctx, bson.M{"_id": documentId}).
		Decode(&variant)
	if err != nil {
		return nil, err
	}

	return &variant, nil
}

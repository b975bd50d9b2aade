package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"varq/api/models"
)

// FindGenesBySymbols matches official symbols and aliases alike, so a
// query written against an outdated symbol still resolves.
func (r *Repository) FindGenesBySymbols(ctx context.Context, symbols []string, build string) ([]models.Gene, error) {
	qctx, cancel := r.boundContext(ctx)
	defer cancel()

	query := bson.M{
		"build": build,
		"$or": []bson.M{
			{"hgnc_symbol": bson.M{"$in": symbols}},
			{"aliases": bson.M{"$in": symbols}},
		},
	}

	cursor, err := r.Database.Collection(geneCollection).Find(qctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(qctx)

	var genes []models.Gene
	if decodeErr := cursor.All(qctx, &genes); decodeErr != nil {
		return nil, decodeErr
	}

	return genes, nil
}

// FindLatestPanel picks the highest version of a named panel.
func (r *Repository) FindLatestPanel(ctx context.Context, panelName string) (*models.GenePanel, error) {
	qctx, cancel := r.boundContext(ctx)
	defer cancel()

	findOptions := options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})

	var panel models.GenePanel
	err := r.Database.Collection(genePanelCollection).
		FindOne(qctx, bson.M{"panel_name": panelName}, findOptions).
		Decode(&panel)
	if err != nil {
		return nil, err
	}

	return &panel, nil
}

func (r *Repository) FindPanelVersion(ctx context.Context, panelName string, version float64) (*models.GenePanel, error) {
	qctx, cancel := r.boundContext(ctx)
	defer cancel()

	var panel models.GenePanel
	err := r.Database.Collection(genePanelCollection).
		FindOne(qctx, bson.M{"panel_name": panelName, "version": version}).
		Decode(&panel)
	if err != nil {
		return nil, err
	}

	return &panel, nil
}

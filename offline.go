package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"varq/api/models"
)

// offlineStores satisfies every store interface with empty results, so
// the compile command can run the full composition pipeline without a
// document store. Unresolvable reference-data criteria surface as the
// same warnings and empty id sets a missing record would produce
// online.
type offlineStores struct{}

func (o *offlineStores) FindVariants(ctx context.Context, query map[string]interface{}, limit int64) ([]models.Variant, error) {
	return nil, nil
}

func (o *offlineStores) FindVariantByDocumentId(ctx context.Context, documentId string) (*models.Variant, error) {
	return nil, mongo.ErrNoDocuments
}

func (o *offlineStores) FindGenesBySymbols(ctx context.Context, symbols []string, build string) ([]models.Gene, error) {
	return nil, nil
}

func (o *offlineStores) FindLatestPanel(ctx context.Context, panelName string) (*models.GenePanel, error) {
	return nil, mongo.ErrNoDocuments
}

func (o *offlineStores) FindPanelVersion(ctx context.Context, panelName string, version float64) (*models.GenePanel, error) {
	return nil, mongo.ErrNoDocuments
}

func (o *offlineStores) FindCaseById(ctx context.Context, caseId string) (*models.Case, error) {
	return nil, mongo.ErrNoDocuments
}

func (o *offlineStores) FindCaseByDisplayName(ctx context.Context, instituteId string, displayName string) (*models.Case, error) {
	return nil, mongo.ErrNoDocuments
}

func (o *offlineStores) FindCasesByPhenotype(ctx context.Context, instituteId string, terms []string, groups []string, cohorts []string) ([]models.Case, error) {
	return nil, nil
}

func (o *offlineStores) FindInstitutes(ctx context.Context) ([]models.Institute, error) {
	return nil, nil
}

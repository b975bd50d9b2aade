package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"varq/api/models"
)

const (
	variantCollection     = "variant"
	caseCollection        = "case"
	instituteCollection   = "institute"
	geneCollection        = "hgnc_gene"
	genePanelCollection   = "gene_panel"
	filterStashCollection = "clinvar_filter"
)

type (
	Repository struct {
		Database *mongo.Database
		Timeout  time.Duration
	}
)

func NewRepository(client *mongo.Client, cfg *models.Config) *Repository {
	return &Repository{
		Database: client.Database(cfg.Mongo.Database),
		Timeout:  time.Duration(cfg.Mongo.TimeoutSeconds) * time.Second,
	}
}

// boundContext caps every store call so a slow cursor cannot hold an
// HTTP request open indefinitely.
func (r *Repository) boundContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.Timeout)
}

package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"varq/api/models"
)

// CreateMongoConnection dials the document store and pings it under an
// exponential backoff, so the service survives a store that comes up a
// few seconds later than the api container.
func CreateMongoConnection(cfg *models.Config, logger zerolog.Logger) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.Mongo.Url)
	if cfg.Mongo.Username != "" {
		clientOptions = clientOptions.SetAuth(options.Credential{
			Username: cfg.Mongo.Username,
			Password: cfg.Mongo.Password,
		})
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Mongo.TimeoutSeconds)*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s : %w", cfg.Mongo.Url, err)
	}

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = 30 * time.Second

	pingErr := backoff.Retry(func() error {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pingCancel()

		if err := client.Ping(pingCtx, nil); err != nil {
			logger.Warn().Err(err).Msg("document store not reachable yet, retrying")
			return err
		}
		return nil
	}, retryBackoff)
	if pingErr != nil {
		return nil, fmt.Errorf("pinging %s : %w", cfg.Mongo.Url, pingErr)
	}

	logger.Info().Str("url", cfg.Mongo.Url).Str("database", cfg.Mongo.Database).Msg("document store connected")

	return client, nil
}

package institutesService

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"varq/api/models"
)

type (
	InstituteStore interface {
		FindInstitutes(ctx context.Context) ([]models.Institute, error)
	}

	// InstituteService keeps the per-institute soft-filter lists in an
	// in-memory cache, refreshed on a schedule, so every query does not
	// pay an extra round trip to the institute collection.
	InstituteService struct {
		Initialized bool
		Store       InstituteStore
		Config      *models.Config
		Logger      zerolog.Logger

		mu          sync.RWMutex
		softFilters map[string][]string
	}
)

func NewInstituteService(store InstituteStore, cfg *models.Config, logger zerolog.Logger) *InstituteService {
	is := &InstituteService{
		Initialized: false,
		Store:       store,
		Config:      cfg,
		Logger:      logger,
		softFilters: map[string][]string{},
	}

	is.Init()

	return is
}

func (is *InstituteService) Init() {
	if is.Initialized {
		return
	}

	// synchronous first load so the cache is warm before traffic
	is.refresh()

	go func() {
		scheduler := gocron.NewScheduler(time.UTC)
		scheduler.Every(is.Config.Query.InstituteCacheRefreshMinutes).Minutes().Do(func() {
			is.refresh()
		})
		scheduler.StartBlocking()
	}()

	is.Initialized = true
	is.Logger.Info().Msg("institute cache initialized")
}

// SoftFilters returns the cached soft-filter list for an institute ;
// unknown institutes get none.
func (is *InstituteService) SoftFilters(instituteId string) []string {
	is.mu.RLock()
	defer is.mu.RUnlock()

	return is.softFilters[instituteId]
}

func (is *InstituteService) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(is.Config.Mongo.TimeoutSeconds)*time.Second)
	defer cancel()

	institutes, err := is.Store.FindInstitutes(ctx)
	if err != nil {
		// a failed refresh keeps the previous cache
		is.Logger.Error().Err(err).Msg("institute cache refresh failed")
		return
	}

	rebuilt := make(map[string][]string, len(institutes))
	for _, institute := range institutes {
		rebuilt[institute.Id] = institute.SoftFilters
	}

	is.mu.Lock()
	is.softFilters = rebuilt
	is.mu.Unlock()

	is.Logger.Debug().Int("institutes", len(rebuilt)).Msg("institute cache refreshed")
}

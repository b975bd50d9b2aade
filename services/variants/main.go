package variantsService

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"varq/api/models"
	constants "varq/api/models/constants"
	"varq/api/models/constants/category"
	"varq/api/queries"
	casesService "varq/api/services/cases"
	genesService "varq/api/services/genes"
	institutesService "varq/api/services/institutes"
)

type (
	VariantStore interface {
		FindVariants(ctx context.Context, query map[string]interface{}, limit int64) ([]models.Variant, error)
		FindVariantByDocumentId(ctx context.Context, documentId string) (*models.Variant, error)
	}

	// VariantService ties the criterion resolvers together : it parses
	// a filter dict, expands the reference-data criteria, composes the
	// predicate tree and runs it against the variant store.
	VariantService struct {
		Store      VariantStore
		Genes      *genesService.GeneService
		Cases      *casesService.CaseService
		Institutes *institutesService.InstituteService
		Config     *models.Config
		Logger     zerolog.Logger
	}

	OverlapResult struct {
		DnaVariants []models.Variant
		WtsVariants []models.Variant
	}
)

func NewVariantService(
	store VariantStore,
	genes *genesService.GeneService,
	cases *casesService.CaseService,
	institutes *institutesService.InstituteService,
	cfg *models.Config,
	logger zerolog.Logger,
) *VariantService {
	return &VariantService{
		Store:      store,
		Genes:      genes,
		Cases:      cases,
		Institutes: institutes,
		Config:     cfg,
		Logger:     logger,
	}
}

// BuildQuery compiles a filter dict into the store's query document
// without executing it.
func (s *VariantService) BuildQuery(ctx context.Context, dict map[string]interface{}, instituteId string) (map[string]interface{}, []string, error) {
	predicate, warnings, err := s.compose(ctx, dict, instituteId)
	if err != nil {
		return nil, warnings, err
	}
	return predicate.Render(), warnings, nil
}

// Query compiles and executes a filter dict, highest rank score first.
func (s *VariantService) Query(ctx context.Context, dict map[string]interface{}, instituteId string) ([]models.Variant, map[string]interface{}, []string, error) {
	predicate, warnings, err := s.compose(ctx, dict, instituteId)
	if err != nil {
		return nil, nil, warnings, err
	}

	rendered := predicate.Render()

	variants, findErr := s.Store.FindVariants(ctx, rendered, int64(s.Config.Query.ResultLimit))
	if findErr != nil {
		return nil, rendered, warnings, findErr
	}

	s.Logger.Debug().
		Int("results", len(variants)).
		Str("institute", instituteId).
		Msg("variant query executed")

	return variants, rendered, warnings, nil
}

func (s *VariantService) compose(ctx context.Context, dict map[string]interface{}, instituteId string) (*queries.Predicate, []string, error) {
	filter, warnings, parseErr := queries.ParseFilter(dict)
	if parseErr != nil {
		return nil, warnings, parseErr
	}

	var currentCase *models.Case
	if filter.CaseId != "" {
		fetched, fetchErr := s.Cases.FetchCase(ctx, filter.CaseId)
		if fetchErr != nil {
			return nil, warnings, fetchErr
		}
		currentCase = fetched
	}

	resolved := queries.ResolvedContext{
		SoftFilters: s.Institutes.SoftFilters(instituteId),
	}

	if filter.HasCaseScopeCriteria() {
		caseIds, scopeWarnings, scopeErr := s.Cases.ResolveScope(ctx, filter, instituteId)
		if scopeErr != nil {
			return nil, warnings, scopeErr
		}
		warnings = append(warnings, scopeWarnings...)
		resolved.HasCaseScope = true
		resolved.CaseIds = caseIds
	}

	if filter.HasGeneCriteria() {
		geneResolution, geneWarnings, geneErr := s.Genes.Resolve(ctx, filter, currentCase)
		if geneErr != nil {
			return nil, warnings, geneErr
		}
		warnings = append(warnings, geneWarnings...)
		resolved.Genes = geneResolution
	}

	if currentCase != nil {
		resolved.AffectedSampleIds = currentCase.AffectedSampleIds()
	}

	// gene queries without a case scope span the whole corpus ; the
	// rank-score floor keeps them from drowning in benign noise
	if filter.CaseId == "" && !resolved.HasCaseScope && filter.HasGeneCriteria() {
		resolved.RankScoreThreshold = s.Config.Query.CrossCaseRankScoreThreshold
	}

	predicate, composeErr := queries.Compose(filter, resolved)
	return predicate, warnings, composeErr
}

/*
	Overlapping finds the companions of a variant inside its own case :
	DNA variants of the other categories touching the same genes, and
	expression outliers over those genes. The two lookups are
	independent and run concurrently.
*/
func (s *VariantService) Overlapping(ctx context.Context, documentId string) (*OverlapResult, error) {
	seed, err := s.Store.FindVariantByDocumentId(ctx, documentId)
	if err != nil {
		return nil, err
	}

	result := &OverlapResult{}
	if len(seed.HgncIds) == 0 {
		return result, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		dnaQuery := s.overlapQuery(seed, dnaCompanionCategories(seed.Category))
		dnaVariants, dnaErr := s.Store.FindVariants(groupCtx, dnaQuery, int64(s.Config.Query.ResultLimit))
		if dnaErr != nil {
			return dnaErr
		}
		result.DnaVariants = dnaVariants
		return nil
	})

	group.Go(func() error {
		wtsQuery := s.overlapQuery(seed, []string{string(category.Outlier)})
		wtsVariants, wtsErr := s.Store.FindVariants(groupCtx, wtsQuery, int64(s.Config.Query.ResultLimit))
		if wtsErr != nil {
			return wtsErr
		}
		result.WtsVariants = wtsVariants
		return nil
	})

	if waitErr := group.Wait(); waitErr != nil {
		return nil, waitErr
	}

	return result, nil
}

func (s *VariantService) overlapQuery(seed *models.Variant, categories []string) map[string]interface{} {
	hgncIds := make([]interface{}, 0, len(seed.HgncIds))
	for _, id := range seed.HgncIds {
		hgncIds = append(hgncIds, id)
	}

	return queries.And(
		queries.Eq("case_id", seed.CaseId),
		queries.InStrings("category", categories),
		queries.In("hgnc_ids", hgncIds),
		queries.Not(queries.Eq("_id", seed.Id)),
	).Render()
}

// dnaCompanionCategories lists the DNA categories other than the
// seed's own.
func dnaCompanionCategories(seedCategory constants.Category) []string {
	var companions []string
	for _, dnaCategory := range category.DnaCategories() {
		if dnaCategory == seedCategory {
			continue
		}
		companions = append(companions, string(dnaCategory))
	}
	return companions
}

// IsMissingDocument reports whether an error means the store simply
// has no such document.
func IsMissingDocument(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

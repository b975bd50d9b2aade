package variantsService

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"varq/api/models"
	casesService "varq/api/services/cases"
	genesService "varq/api/services/genes"
	institutesService "varq/api/services/institutes"
)

// fakeStores backs every store interface from in-memory fixtures and
// records the variant queries it receives.
type fakeStores struct {
	genes      []models.Gene
	cases      []models.Case
	institutes []models.Institute
	variants   []models.Variant

	mu             sync.Mutex
	variantQueries []map[string]interface{}
}

func (f *fakeStores) FindVariants(ctx context.Context, query map[string]interface{}, limit int64) ([]models.Variant, error) {
	f.mu.Lock()
	f.variantQueries = append(f.variantQueries, query)
	f.mu.Unlock()
	return f.variants, nil
}

func (f *fakeStores) FindVariantByDocumentId(ctx context.Context, documentId string) (*models.Variant, error) {
	for i := range f.variants {
		if f.variants[i].Id == documentId {
			return &f.variants[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStores) FindGenesBySymbols(ctx context.Context, symbols []string, build string) ([]models.Gene, error) {
	requested := map[string]bool{}
	for _, symbol := range symbols {
		requested[symbol] = true
	}
	var matched []models.Gene
	for _, gene := range f.genes {
		if gene.Build == build && requested[gene.HgncSymbol] {
			matched = append(matched, gene)
		}
	}
	return matched, nil
}

func (f *fakeStores) FindLatestPanel(ctx context.Context, panelName string) (*models.GenePanel, error) {
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStores) FindPanelVersion(ctx context.Context, panelName string, version float64) (*models.GenePanel, error) {
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStores) FindCaseById(ctx context.Context, caseId string) (*models.Case, error) {
	for i := range f.cases {
		if f.cases[i].Id == caseId {
			return &f.cases[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStores) FindCaseByDisplayName(ctx context.Context, instituteId string, displayName string) (*models.Case, error) {
	for i := range f.cases {
		if f.cases[i].DisplayName == displayName && caseVisibleTo(f.cases[i], instituteId) {
			return &f.cases[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStores) FindCasesByPhenotype(ctx context.Context, instituteId string, terms []string, groups []string, cohorts []string) ([]models.Case, error) {
	termSet := map[string]bool{}
	for _, term := range terms {
		termSet[term] = true
	}

	var matched []models.Case
	for _, caseDocument := range f.cases {
		if !caseVisibleTo(caseDocument, instituteId) {
			continue
		}
		for _, term := range caseDocument.PhenotypeTerms {
			if termSet[term.PhenotypeId] {
				matched = append(matched, caseDocument)
				break
			}
		}
	}
	return matched, nil
}

func caseVisibleTo(caseDocument models.Case, instituteId string) bool {
	if caseDocument.Owner == instituteId {
		return true
	}
	for _, collaborator := range caseDocument.Collaborators {
		if collaborator == instituteId {
			return true
		}
	}
	return false
}

func (f *fakeStores) FindInstitutes(ctx context.Context) ([]models.Institute, error) {
	return f.institutes, nil
}

func newTestService(stores *fakeStores) *VariantService {
	cfg := &models.Config{}
	cfg.ApplyDefaults()

	logger := zerolog.Nop()

	return NewVariantService(
		stores,
		genesService.NewGeneService(stores, cfg),
		casesService.NewCaseService(stores),
		institutesService.NewInstituteService(stores, cfg, logger),
		cfg,
		logger,
	)
}

func defaultStores() *fakeStores {
	return &fakeStores{
		genes: []models.Gene{
			{HgncId: 17284, HgncSymbol: "POT1", Build: "37"},
		},
		cases: []models.Case{
			{
				Id: "internal_1",
				Individuals: []models.Individual{
					{IndividualId: "ADM1", AffectedStatus: 2},
					{IndividualId: "ADM2", AffectedStatus: 1},
				},
			},
		},
		institutes: []models.Institute{
			{Id: "cust000", SoftFilters: []string{"germline_risk"}},
		},
	}
}

func conjunctsOf(t *testing.T, query map[string]interface{}) []map[string]interface{} {
	t.Helper()
	conjuncts, ok := query["$and"].([]map[string]interface{})
	require.True(t, ok)
	return conjuncts
}

func TestBuildQueryResolvesSymbolsWithinCase(t *testing.T) {
	service := newTestService(defaultStores())

	query, warnings, err := service.BuildQuery(context.Background(), map[string]interface{}{
		"case_id":      "internal_1",
		"hgnc_symbols": []interface{}{"POT1"},
	}, "cust000")
	require.NoError(t, err)
	assert.Empty(t, warnings)

	conjuncts := conjunctsOf(t, query)
	assert.Contains(t, conjuncts, map[string]interface{}{"case_id": "internal_1"})
	assert.Contains(t, conjuncts, map[string]interface{}{
		"hgnc_ids": map[string]interface{}{"$in": []interface{}{17284}},
	})
	// within a case, no rank-score floor beyond zero
	assert.Contains(t, conjuncts, map[string]interface{}{
		"rank_score": map[string]interface{}{"$gte": 0.0},
	})
}

func TestBuildQueryAppliesCrossCaseThreshold(t *testing.T) {
	service := newTestService(defaultStores())

	query, _, err := service.BuildQuery(context.Background(), map[string]interface{}{
		"hgnc_symbols": []interface{}{"POT1"},
	}, "")
	require.NoError(t, err)

	conjuncts := conjunctsOf(t, query)
	assert.Contains(t, conjuncts, map[string]interface{}{
		"rank_score": map[string]interface{}{"$gte": 15.0},
	})
}

func TestBuildQueryAppliesInstituteSoftFilters(t *testing.T) {
	service := newTestService(defaultStores())

	query, _, err := service.BuildQuery(context.Background(), map[string]interface{}{
		"case_id": "internal_1",
	}, "cust000")
	require.NoError(t, err)

	conjuncts := conjunctsOf(t, query)
	assert.Contains(t, conjuncts, map[string]interface{}{
		"filters": map[string]interface{}{"$nin": []interface{}{"germline_risk"}},
	})
}

func TestBuildQueryUnknownInstituteHasNoSoftFilters(t *testing.T) {
	service := newTestService(defaultStores())

	query, _, err := service.BuildQuery(context.Background(), map[string]interface{}{
		"case_id": "internal_1",
	}, "cust999")
	require.NoError(t, err)

	for _, conjunct := range conjunctsOf(t, query) {
		assert.NotContains(t, conjunct, "filters")
	}
}

func TestBuildQueryAffectedSamplesFromCase(t *testing.T) {
	service := newTestService(defaultStores())

	query, _, err := service.BuildQuery(context.Background(), map[string]interface{}{
		"case_id":         "internal_1",
		"show_unaffected": false,
	}, "cust000")
	require.NoError(t, err)

	conjuncts := conjunctsOf(t, query)
	assert.Contains(t, conjuncts, map[string]interface{}{
		"samples": map[string]interface{}{
			"$elemMatch": map[string]interface{}{
				"sample_id":     map[string]interface{}{"$in": []interface{}{"ADM1"}},
				"genotype_call": map[string]interface{}{"$nin": []interface{}{"0/0", "./.", "./0", "0/."}},
			},
		},
	})
}

func TestBuildQueryCaseScopeStaysWithinInstitute(t *testing.T) {
	stores := defaultStores()
	stores.cases = append(stores.cases,
		models.Case{
			Id: "C9", Owner: "cust000",
			PhenotypeTerms: []models.PhenotypeTerm{{PhenotypeId: "HP:0001250"}},
		},
		models.Case{
			Id: "FOREIGN", Owner: "cust999",
			PhenotypeTerms: []models.PhenotypeTerm{{PhenotypeId: "HP:0001250"}},
		},
	)
	service := newTestService(stores)

	query, _, err := service.BuildQuery(context.Background(), map[string]interface{}{
		"phenotype_terms": []interface{}{"HP:0001250"},
	}, "cust000")
	require.NoError(t, err)

	// only the institute's own case lands in the scope
	assert.Contains(t, conjunctsOf(t, query), map[string]interface{}{
		"case_id": map[string]interface{}{"$in": []interface{}{"C9"}},
	})
}

func TestBuildQuerySurfacesUnknownSymbolWarnings(t *testing.T) {
	service := newTestService(defaultStores())

	query, warnings, err := service.BuildQuery(context.Background(), map[string]interface{}{
		"case_id":      "internal_1",
		"hgnc_symbols": []interface{}{"NOSUCHGENE"},
	}, "cust000")
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "NOSUCHGENE")

	// the unresolved criterion still constrains the query to nothing
	assert.Contains(t, conjunctsOf(t, query), map[string]interface{}{
		"hgnc_ids": map[string]interface{}{"$in": []interface{}{}},
	})
}

func TestQueryPassesResultLimit(t *testing.T) {
	stores := defaultStores()
	stores.variants = []models.Variant{{Id: "doc1", CaseId: "internal_1"}}
	service := newTestService(stores)

	results, rendered, _, err := service.Query(context.Background(), map[string]interface{}{
		"case_id": "internal_1",
	}, "cust000")
	require.NoError(t, err)

	assert.Len(t, results, 1)
	assert.Contains(t, rendered, "$and")
	require.Len(t, stores.variantQueries, 1)
}

func TestOverlappingQueriesBothSides(t *testing.T) {
	stores := defaultStores()
	stores.variants = []models.Variant{
		{Id: "doc1", CaseId: "internal_1", Category: "snv", HgncIds: []int{17284}},
	}
	service := newTestService(stores)

	result, err := service.Overlapping(context.Background(), "doc1")
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, stores.variantQueries, 2)

	var dnaQuery, wtsQuery map[string]interface{}
	for _, query := range stores.variantQueries {
		categories := queryCategories(t, query)
		if len(categories) == 1 && categories[0] == "outlier" {
			wtsQuery = query
		} else {
			dnaQuery = query
		}
	}

	require.NotNil(t, dnaQuery)
	require.NotNil(t, wtsQuery)

	// the seed's own category is excluded from the DNA companions
	assert.NotContains(t, queryCategories(t, dnaQuery), "snv")
	assert.Contains(t, queryCategories(t, dnaQuery), "sv")

	// both sides stay inside the case and exclude the seed document
	for _, query := range []map[string]interface{}{dnaQuery, wtsQuery} {
		conjuncts := conjunctsOf(t, query)
		assert.Contains(t, conjuncts, map[string]interface{}{"case_id": "internal_1"})
		assert.Contains(t, conjuncts, map[string]interface{}{
			"_id": map[string]interface{}{"$ne": "doc1"},
		})
		assert.Contains(t, conjuncts, map[string]interface{}{
			"hgnc_ids": map[string]interface{}{"$in": []interface{}{17284}},
		})
	}
}

func TestOverlappingUnknownDocument(t *testing.T) {
	service := newTestService(defaultStores())

	_, err := service.Overlapping(context.Background(), "nope")
	assert.True(t, IsMissingDocument(err))
}

func TestOverlappingWithoutGenesShortCircuits(t *testing.T) {
	stores := defaultStores()
	stores.variants = []models.Variant{
		{Id: "doc1", CaseId: "internal_1", Category: "snv"},
	}
	service := newTestService(stores)

	result, err := service.Overlapping(context.Background(), "doc1")
	require.NoError(t, err)

	assert.Empty(t, result.DnaVariants)
	assert.Empty(t, result.WtsVariants)
	assert.Empty(t, stores.variantQueries)
}

func queryCategories(t *testing.T, query map[string]interface{}) []string {
	t.Helper()

	for _, conjunct := range conjunctsOf(t, query) {
		body, ok := conjunct["category"].(map[string]interface{})
		if !ok {
			continue
		}
		raw := body["$in"].([]interface{})
		var categories []string
		for _, value := range raw {
			categories = append(categories, value.(string))
		}
		return categories
	}

	t.Fatal("query has no category conjunct")
	return nil
}

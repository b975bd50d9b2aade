package casesService

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"varq/api/models"
	"varq/api/queries"
)

type fakeCaseStore struct {
	cases []models.Case
	err   error
}

func (f *fakeCaseStore) FindCaseById(ctx context.Context, caseId string) (*models.Case, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.cases {
		if f.cases[i].Id == caseId {
			return &f.cases[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeCaseStore) FindCaseByDisplayName(ctx context.Context, instituteId string, displayName string) (*models.Case, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.cases {
		if f.cases[i].DisplayName == displayName && visibleTo(f.cases[i], instituteId) {
			return &f.cases[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeCaseStore) FindCasesByPhenotype(ctx context.Context, instituteId string, terms []string, groups []string, cohorts []string) ([]models.Case, error) {
	if f.err != nil {
		return nil, f.err
	}

	termSet := map[string]bool{}
	for _, term := range terms {
		termSet[term] = true
	}
	groupSet := map[string]bool{}
	for _, group := range groups {
		groupSet[group] = true
	}
	cohortSet := map[string]bool{}
	for _, cohort := range cohorts {
		cohortSet[cohort] = true
	}

	var matched []models.Case
	for _, caseDocument := range f.cases {
		if visibleTo(caseDocument, instituteId) && caseMatches(caseDocument, termSet, groupSet, cohortSet) {
			matched = append(matched, caseDocument)
		}
	}
	return matched, nil
}

func visibleTo(caseDocument models.Case, instituteId string) bool {
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

func caseMatches(caseDocument models.Case, terms map[string]bool, groups map[string]bool, cohorts map[string]bool) bool {
	for _, term := range caseDocument.PhenotypeTerms {
		if terms[term.PhenotypeId] {
			return true
		}
	}
	for _, group := range caseDocument.PhenotypeGroups {
		if groups[group.PhenotypeId] {
			return true
		}
	}
	for _, cohort := range caseDocument.Cohorts {
		if cohorts[cohort] {
			return true
		}
	}
	return false
}

func phenotypes(ids ...string) []models.PhenotypeTerm {
	var terms []models.PhenotypeTerm
	for _, id := range ids {
		terms = append(terms, models.PhenotypeTerm{PhenotypeId: id})
	}
	return terms
}

func newTestCaseService() *CaseService {
	return NewCaseService(&fakeCaseStore{
		cases: []models.Case{
			{Id: "seed", DisplayName: "F0017", Owner: "cust000", PhenotypeTerms: phenotypes("HP:0001250", "HP:0001263", "HP:0002360")},
			{Id: "close", DisplayName: "F0018", Owner: "cust000", PhenotypeTerms: phenotypes("HP:0001250", "HP:0001263")},
			{Id: "distant", DisplayName: "F0019", Owner: "cust000", PhenotypeTerms: phenotypes("HP:0001250")},
			{Id: "cohorted", DisplayName: "F0020", Owner: "cust000", Cohorts: []string{"pedhep"}},
			{Id: "grouped", DisplayName: "F0021", Owner: "cust000", PhenotypeGroups: phenotypes("HP:0012759")},
			{Id: "foreign", DisplayName: "F0022", Owner: "cust999", PhenotypeTerms: phenotypes("HP:0001250", "HP:0001263")},
			{Id: "shared", DisplayName: "F0023", Owner: "cust999", Collaborators: []string{"cust000"}, Cohorts: []string{"pedhep"}},
		},
	})
}

func TestFetchCaseReturnsNilForUnknownId(t *testing.T) {
	service := newTestCaseService()

	caseDocument, err := service.FetchCase(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, caseDocument)
}

func TestResolveScopeUnionsPhenotypeDimensions(t *testing.T) {
	service := newTestCaseService()

	caseIds, warnings, err := service.ResolveScope(context.Background(), &queries.VariantFilter{
		PhenotypeTerms: []string{"HP:0001250"},
		Cohorts:        []string{"pedhep"},
	}, "cust000")
	require.NoError(t, err)

	assert.Empty(t, warnings)
	assert.ElementsMatch(t, []string{"seed", "close", "distant", "cohorted", "shared"}, caseIds)
}

func TestResolveScopeExcludesForeignInstituteCases(t *testing.T) {
	service := newTestCaseService()

	// 'foreign' shares the term but belongs to another institute ;
	// 'shared' qualifies through its collaborators
	caseIds, _, err := service.ResolveScope(context.Background(), &queries.VariantFilter{
		PhenotypeTerms: []string{"HP:0001250"},
		Cohorts:        []string{"pedhep"},
	}, "cust000")
	require.NoError(t, err)

	assert.NotContains(t, caseIds, "foreign")
	assert.Contains(t, caseIds, "shared")
}

func TestResolveScopePhenotypeGroups(t *testing.T) {
	service := newTestCaseService()

	caseIds, _, err := service.ResolveScope(context.Background(), &queries.VariantFilter{
		PhenotypeGroups: []string{"HP:0012759"},
	}, "cust000")
	require.NoError(t, err)

	assert.Equal(t, []string{"grouped"}, caseIds)
}

func TestResolveScopeSimilarCaseRanksBySharedTerms(t *testing.T) {
	service := newTestCaseService()

	// seed cases are named by display name
	caseIds, warnings, err := service.ResolveScope(context.Background(), &queries.VariantFilter{
		SimilarCase: []string{"F0017"},
	}, "cust000")
	require.NoError(t, err)

	assert.Empty(t, warnings)
	// the seed itself is excluded ; 'close' shares two terms, 'distant' one
	assert.Equal(t, []string{"close", "distant"}, caseIds)
}

func TestResolveScopeSimilarCaseStaysWithinInstitute(t *testing.T) {
	service := newTestCaseService()

	// 'foreign' shares two seed terms but belongs to cust999
	caseIds, _, err := service.ResolveScope(context.Background(), &queries.VariantFilter{
		SimilarCase: []string{"F0017"},
	}, "cust000")
	require.NoError(t, err)

	assert.NotContains(t, caseIds, "foreign")

	// a foreign display name never resolves as a seed either
	caseIds, warnings, err := service.ResolveScope(context.Background(), &queries.VariantFilter{
		SimilarCase: []string{"F0022"},
	}, "cust000")
	require.NoError(t, err)
	assert.Empty(t, caseIds)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "F0022")
}

func TestResolveScopeSimilarCaseUnknownSeedWarns(t *testing.T) {
	service := newTestCaseService()

	caseIds, warnings, err := service.ResolveScope(context.Background(), &queries.VariantFilter{
		SimilarCase: []string{"nope"},
	}, "cust000")
	require.NoError(t, err)

	assert.Empty(t, caseIds)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "nope")
}

func TestResolveScopeIntersectsWithDeclaredCase(t *testing.T) {
	service := newTestCaseService()

	// the declared case is inside the scope
	caseIds, _, err := service.ResolveScope(context.Background(), &queries.VariantFilter{
		CaseId:         "close",
		PhenotypeTerms: []string{"HP:0001250"},
	}, "cust000")
	require.NoError(t, err)
	assert.Equal(t, []string{"close"}, caseIds)

	// the declared case is outside the scope : nothing survives
	caseIds, _, err = service.ResolveScope(context.Background(), &queries.VariantFilter{
		CaseId:         "cohorted",
		PhenotypeTerms: []string{"HP:0001250"},
	}, "cust000")
	require.NoError(t, err)
	assert.Empty(t, caseIds)
}

func TestResolveScopeWrapsTimeouts(t *testing.T) {
	service := NewCaseService(&fakeCaseStore{err: context.DeadlineExceeded})

	_, _, err := service.ResolveScope(context.Background(), &queries.VariantFilter{
		PhenotypeTerms: []string{"HP:0001250"},
	}, "cust000")
	assert.ErrorIs(t, err, queries.ErrResolverTimeout)

	_, _, err = service.ResolveScope(context.Background(), &queries.VariantFilter{
		SimilarCase: []string{"F0017"},
	}, "cust000")
	assert.ErrorIs(t, err, queries.ErrResolverTimeout)
}

package casesService

import (
	"context"
	"errors"
	"fmt"

	linq "github.com/ahmetb/go-linq"
	"go.mongodb.org/mongo-driver/mongo"

	"varq/api/models"
	"varq/api/queries"
	"varq/api/utils"
)

// ranked similar cases kept per seed case
const similarCaseLimit = 20

type (
	CaseStore interface {
		FindCaseById(ctx context.Context, caseId string) (*models.Case, error)
		FindCaseByDisplayName(ctx context.Context, instituteId string, displayName string) (*models.Case, error)
		FindCasesByPhenotype(ctx context.Context, instituteId string, terms []string, groups []string, cohorts []string) ([]models.Case, error)
	}

	CaseService struct {
		Store CaseStore
	}
)

func NewCaseService(store CaseStore) *CaseService {
	return &CaseService{Store: store}
}

// FetchCase loads a case document, returning nil without error when the
// id is unknown so the caller can decide how strict to be.
func (s *CaseService) FetchCase(ctx context.Context, caseId string) (*models.Case, error) {
	caseDocument, err := s.Store.FindCaseById(ctx, caseId)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrapResolverError(err)
	}
	return caseDocument, nil
}

/*
	ResolveScope expands the cohort-style criteria into an explicit
	case-id set, restricted to cases the institute owns or
	collaborates on.

	phenotype_terms, phenotype_groups and cohorts union their matching
	cases ; similar_case adds the cases most phenotypically similar to
	each named seed case. When the filter also names a case_id, the set
	is intersected with it, so a case outside the scope yields an empty
	set rather than silently widening the query.
*/
func (s *CaseService) ResolveScope(ctx context.Context, f *queries.VariantFilter, instituteId string) ([]string, []string, error) {
	var (
		caseIds  []string
		warnings []string
	)

	if len(f.PhenotypeTerms) > 0 || len(f.PhenotypeGroups) > 0 || len(f.Cohorts) > 0 {
		matched, err := s.Store.FindCasesByPhenotype(ctx, instituteId, f.PhenotypeTerms, f.PhenotypeGroups, f.Cohorts)
		if err != nil {
			return nil, warnings, wrapResolverError(err)
		}
		for _, caseDocument := range matched {
			caseIds = append(caseIds, caseDocument.Id)
		}
	}

	for _, seedDisplayName := range f.SimilarCase {
		similarIds, similarWarnings, err := s.resolveSimilarCases(ctx, instituteId, seedDisplayName)
		if err != nil {
			return nil, warnings, err
		}
		warnings = append(warnings, similarWarnings...)
		caseIds = append(caseIds, similarIds...)
	}

	caseIds = utils.UniqueStrings(caseIds)

	if f.CaseId != "" {
		caseIds = utils.IntersectStrings([]string{f.CaseId}, caseIds)
	}

	return caseIds, warnings, nil
}

// resolveSimilarCases ranks every institute case sharing a phenotype
// term with the seed case by the size of the shared term set. Seed
// cases are named by display name.
func (s *CaseService) resolveSimilarCases(ctx context.Context, instituteId string, seedDisplayName string) ([]string, []string, error) {
	seedCase, err := s.Store.FindCaseByDisplayName(ctx, instituteId, seedDisplayName)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, []string{fmt.Sprintf("similar_case %q does not exist, ignored", seedDisplayName)}, nil
		}
		return nil, nil, wrapResolverError(err)
	}

	seedTerms := phenotypeIdSet(seedCase.PhenotypeTerms)
	if len(seedTerms) == 0 {
		return nil, []string{fmt.Sprintf("similar_case %q has no phenotype terms, ignored", seedDisplayName)}, nil
	}

	var termList []string
	for term := range seedTerms {
		termList = append(termList, term)
	}

	candidates, err := s.Store.FindCasesByPhenotype(ctx, instituteId, termList, nil, nil)
	if err != nil {
		return nil, nil, wrapResolverError(err)
	}

	var similarIds []string
	linq.From(candidates).
		WhereT(func(candidate models.Case) bool {
			return candidate.Id != seedCase.Id
		}).
		OrderByDescendingT(func(candidate models.Case) int {
			return sharedTermCount(candidate, seedTerms)
		}).
		ThenByT(func(candidate models.Case) string {
			return candidate.Id
		}).
		Take(similarCaseLimit).
		SelectT(func(candidate models.Case) string {
			return candidate.Id
		}).
		ToSlice(&similarIds)

	return similarIds, nil, nil
}

func phenotypeIdSet(terms []models.PhenotypeTerm) map[string]bool {
	ids := make(map[string]bool, len(terms))
	for _, term := range terms {
		ids[term.PhenotypeId] = true
	}
	return ids
}

func sharedTermCount(candidate models.Case, seedTerms map[string]bool) int {
	shared := 0
	for _, term := range candidate.PhenotypeTerms {
		if seedTerms[term.PhenotypeId] {
			shared++
		}
	}
	return shared
}

func wrapResolverError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w : case scope resolution timed out", queries.ErrResolverTimeout)
	}
	return err
}

package genesService

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"varq/api/models"
	"varq/api/models/constants/chromosome"
	"varq/api/queries"
	"varq/api/utils"
)

// reserved panel name expanded from the case's phenotype-derived
// dynamic gene list instead of the panel collection
const HpoPanelName = "hpo"

type (
	GeneStore interface {
		FindGenesBySymbols(ctx context.Context, symbols []string, build string) ([]models.Gene, error)
		FindLatestPanel(ctx context.Context, panelName string) (*models.GenePanel, error)
		FindPanelVersion(ctx context.Context, panelName string, version float64) (*models.GenePanel, error)
	}

	GeneService struct {
		Store GeneStore
		Build string
	}
)

func NewGeneService(store GeneStore, cfg *models.Config) *GeneService {
	return &GeneService{
		Store: store,
		// accepts '37', '38', 'GRCh37', 'GRCh38'
		Build: string(chromosome.CastToGenomeBuild(cfg.Query.GenomeBuild)),
	}
}

/*
	Resolve expands the symbol and panel criteria into HGNC id sets.

	Symbols that match nothing and panels that do not exist produce
	warnings, never failures : the ids they would have contributed are
	simply absent, and an entirely unresolvable criterion yields an
	empty id set that matches no variants. Only a store failure or a
	resolver timeout aborts the query.
*/
func (s *GeneService) Resolve(ctx context.Context, f *queries.VariantFilter, currentCase *models.Case) (queries.GeneResolution, []string, error) {
	var (
		resolution queries.GeneResolution
		warnings   []string
	)

	if len(f.HgncSymbols) > 0 {
		resolution.FromSymbols = true

		symbolIds, symbolWarnings, err := s.resolveSymbols(ctx, f.HgncSymbols)
		if err != nil {
			return resolution, warnings, err
		}
		resolution.SymbolIds = symbolIds
		warnings = append(warnings, symbolWarnings...)
	}

	if len(f.GenePanels) > 0 {
		resolution.FromPanels = true

		for _, panelSpec := range f.GenePanels {
			if panelSpec == HpoPanelName {
				if currentCase == nil || len(currentCase.DynamicGeneList) == 0 {
					warnings = append(warnings, "hpo panel requested but the case has no dynamic gene list")
					continue
				}
				resolution.DynamicIds = append(resolution.DynamicIds, currentCase.DynamicGeneList...)
				continue
			}

			panel, err := s.resolvePanel(ctx, panelSpec)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					warnings = append(warnings, fmt.Sprintf("unknown gene panel %q ignored", panelSpec))
					continue
				}
				return resolution, warnings, wrapResolverError(err)
			}

			resolution.PanelNames = append(resolution.PanelNames, panel.PanelName)
			for _, panelGene := range panel.Genes {
				resolution.PanelIds = append(resolution.PanelIds, panelGene.HgncId)
			}
		}

		resolution.DynamicIds = utils.UniqueInts(resolution.DynamicIds)
		resolution.PanelIds = utils.UniqueInts(append(resolution.PanelIds, resolution.DynamicIds...))
		resolution.PanelNames = utils.UniqueStrings(resolution.PanelNames)
	}

	return resolution, warnings, nil
}

func (s *GeneService) resolveSymbols(ctx context.Context, symbols []string) ([]int, []string, error) {
	genes, err := s.Store.FindGenesBySymbols(ctx, symbols, s.Build)
	if err != nil {
		return nil, nil, wrapResolverError(err)
	}

	// the official symbol wins ; aliases only resolve on a miss
	idsBySymbol := map[string][]int{}
	idsByAlias := map[string][]int{}
	for _, gene := range genes {
		idsBySymbol[gene.HgncSymbol] = append(idsBySymbol[gene.HgncSymbol], gene.HgncId)
		for _, alias := range gene.Aliases {
			idsByAlias[alias] = append(idsByAlias[alias], gene.HgncId)
		}
	}

	var (
		ids      []int
		warnings []string
	)
	for _, symbol := range symbols {
		matched, known := idsBySymbol[symbol]
		if !known {
			matched, known = idsByAlias[symbol]
		}
		if !known {
			warnings = append(warnings, fmt.Sprintf("unknown gene symbol %q ignored", symbol))
			continue
		}
		ids = append(ids, matched...)
	}

	return utils.UniqueInts(ids), warnings, nil
}

// resolvePanel accepts a bare panel name or a 'name:version' spec ; a
// bare name resolves to the latest stored version.
func (s *GeneService) resolvePanel(ctx context.Context, panelSpec string) (*models.GenePanel, error) {
	name, versionText, versioned := strings.Cut(panelSpec, ":")
	if versioned {
		version, parseErr := strconv.ParseFloat(versionText, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("%w : panel version %q is not numeric", queries.ErrInvalidValue, versionText)
		}
		return s.Store.FindPanelVersion(ctx, name, version)
	}

	return s.Store.FindLatestPanel(ctx, name)
}

func wrapResolverError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w : gene resolution timed out", queries.ErrResolverTimeout)
	}
	return err
}

package queries

import (
	"varq/api/models/constants/category"
	varianttype "varq/api/models/constants/variant-type"
)

// GeneResolution is the two-component output of the gene resolver. The
// components stay separate because the algebraic layer of the gene
// predicate depends on whether symbols, panels or both were requested.
type GeneResolution struct {
	FromSymbols bool
	FromPanels  bool
	SymbolIds   []int
	PanelIds    []int
	PanelNames  []string
	// ids from the case's dynamic hpo list ; they carry no stored
	// panel name, so the disjunction form matches them by id
	DynamicIds []int
}

// ResolvedContext carries everything the resolvers pre-expanded for a
// single composition : the case-id scope, the gene components, the
// institute soft filters and the per-case defaults.
type ResolvedContext struct {
	// virtual criteria expanded into a case-id set ; an empty set with
	// HasCaseScope true correctly matches nothing
	HasCaseScope bool
	CaseIds      []string

	Genes GeneResolution

	SoftFilters       []string
	AffectedSampleIds []string

	// rank-score floor applied when the filter carries none :
	// 0 within a case, 15 for cross-case gene-variant queries
	RankScoreThreshold float64
}

// genotype calls that do not count as carrying the variant
var nonCarrierGenotypes = []string{"0/0", "./.", "./0", "0/."}

/*
	Compose assembles the full query predicate under the layering
	algebra :

	- fundamental criteria are ANDed at the top level
	- a primary (ClinVar) criterion alone is conjoined directly
	- secondary criteria form an inner AND ; by default a primary
	  criterion joins that AND as one more restrictive filter
	- in override mode the inner AND is disjoined with the
	  trusted-revstat primary predicate, so confident pathogenic
	  annotations survive every other filter
	- a coordinate predicate leads any inner AND so the positional
	  index stays usable
*/
func Compose(f *VariantFilter, rc ResolvedContext) (*Predicate, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	cat := category.CastToCategory(f.Category)
	if cat == category.Unknown {
		cat = category.Snv
	}
	variantType := varianttype.CastToVariantType(f.VariantType)

	fundamentals := []*Predicate{}

	// -- case scope
	if rc.HasCaseScope {
		fundamentals = append(fundamentals, InStrings("case_id", rc.CaseIds))
	} else if f.CaseId != "" {
		fundamentals = append(fundamentals, Eq("case_id", f.CaseId))
	}

	if len(f.VariantIds) > 0 {
		fundamentals = append(fundamentals, InStrings("variant_id", f.VariantIds))
	}

	fundamentals = append(fundamentals,
		Eq("category", string(cat)),
		Eq("variant_type", string(variantType)),
	)

	if len(f.Repids) > 0 {
		fundamentals = append(fundamentals, InStrings("str_repid", f.Repids))
	}

	if f.RankScore != nil {
		fundamentals = append(fundamentals, Gte("rank_score", *f.RankScore))
	} else {
		fundamentals = append(fundamentals, Gte("rank_score", rc.RankScoreThreshold))
	}

	if f.HideDismissed {
		fundamentals = append(fundamentals, In("dismiss_variant", []interface{}{nil, []interface{}{}}))
	}

	if len(rc.SoftFilters) > 0 && !f.ShowSoftFiltered {
		// absent 'filters' means PASS-clean, which $nin lets through
		fundamentals = append(fundamentals, Not(InStrings("filters", rc.SoftFilters)))
	}

	if f.ShowUnaffected != nil && !*f.ShowUnaffected && len(rc.AffectedSampleIds) > 0 {
		fundamentals = append(fundamentals, ElemMatch("samples",
			InStrings("sample_id", rc.AffectedSampleIds),
			Not(InStrings("genotype_call", nonCarrierGenotypes)),
		))
	}

	// -- gene predicate : merged into the fundamentals when a single
	// component was requested, kept at the algebra layer when both were
	var geneTop *Predicate
	switch {
	case rc.Genes.FromSymbols && rc.Genes.FromPanels:
		disjuncts := []*Predicate{
			InInts("hgnc_ids", rc.Genes.SymbolIds),
			InStrings("panels", rc.Genes.PanelNames),
		}
		if len(rc.Genes.DynamicIds) > 0 {
			disjuncts = append(disjuncts, InInts("hgnc_ids", rc.Genes.DynamicIds))
		}
		geneTop = Or(disjuncts...)
	case rc.Genes.FromSymbols:
		// an empty resolution still constrains the query to nothing
		fundamentals = append(fundamentals, InInts("hgnc_ids", rc.Genes.SymbolIds))
	case rc.Genes.FromPanels:
		fundamentals = append(fundamentals, InInts("hgnc_ids", rc.Genes.PanelIds))
	}

	// -- coordinate predicate
	var coordinate *Predicate
	if f.Chrom != "" {
		coordPred, coordErr := BuildCoordinateFilter(f.Chrom, f.Start, f.End, cat)
		if coordErr != nil {
			return nil, coordErr
		}
		coordinate = coordPred
	}

	// -- primary predicate
	var primary *Predicate
	if f.HasPrimaryCriteria() {
		var parts []*Predicate
		if len(f.Clinsig) > 0 {
			parts = append(parts, BuildClinsigFilter(f))
		}
		if len(f.ClinsigOnc) > 0 {
			parts = append(parts, BuildOncogenicityFilter(f))
		}
		primary = andOf(parts)
	}

	secondary := BuildSecondaryFilters(f)

	// -- the layering cases on (primary, secondary)
	var inner []*Predicate
	switch {
	case primary == nil && len(secondary) == 0:
		if geneTop != nil {
			fundamentals = append(fundamentals, geneTop)
		}
		if coordinate != nil {
			fundamentals = append(fundamentals, coordinate)
		}
		return And(fundamentals...), nil

	case primary == nil:
		inner = secondary

	case len(secondary) == 0:
		inner = []*Predicate{primary}

	default:
		if f.ClinvarOverride() && len(f.Clinsig) > 0 {
			// confident ClinVar pathogenicity overrides the
			// restrictive filters ; an oncogenicity criterion still
			// binds the override branch
			trusted := []*Predicate{BuildTrustedClinsigFilter(f)}
			if len(f.ClinsigOnc) > 0 {
				trusted = append(trusted, BuildOncogenicityFilter(f))
			}
			inner = []*Predicate{Or(
				andOf(secondary),
				andOf(trusted),
			)}
		} else {
			inner = append(secondary, primary)
		}
	}

	conjuncts := inner
	if geneTop != nil {
		conjuncts = append([]*Predicate{geneTop}, conjuncts...)
	}
	if coordinate != nil {
		conjuncts = append([]*Predicate{coordinate}, conjuncts...)
	}

	fundamentals = append(fundamentals, andOf(conjuncts))
	return And(fundamentals...), nil
}

func andOf(subs []*Predicate) *Predicate {
	if len(subs) == 1 {
		return subs[0]
	}
	return And(subs...)
}

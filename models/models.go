package models

import (
	"time"

	c "varq/api/models/constants"
	"varq/api/models/constants/so"
)

/*
	Plain record shapes for the documents the query engine reads. The
	engine is read-only with respect to all of them ; writes happen in
	sibling services.
*/

type VariantGene struct {
	HgncId               int    `bson:"hgnc_id" json:"hgnc_id"`
	HgncSymbol           string `bson:"hgnc_symbol,omitempty" json:"hgnc_symbol,omitempty"`
	FunctionalAnnotation string `bson:"functional_annotation,omitempty" json:"functional_annotation,omitempty"`
	RegionAnnotation     string `bson:"region_annotation,omitempty" json:"region_annotation,omitempty"`
}

type VariantSample struct {
	SampleId     string `bson:"sample_id" json:"sample_id"`
	GenotypeCall string `bson:"genotype_call,omitempty" json:"genotype_call,omitempty"`
	ReadDepth    *int   `bson:"read_depth,omitempty" json:"read_depth,omitempty"`
}

type ClnsigEntry struct {
	// numeric code or human-readable term, possibly comma-separated
	Value   interface{} `bson:"value" json:"value"`
	Revstat string      `bson:"revstat,omitempty" json:"revstat,omitempty"`
}

type TumorStats struct {
	ReadDepth *float64 `bson:"read_depth,omitempty" json:"read_depth,omitempty"`
	AltDepth  *float64 `bson:"alt_depth,omitempty" json:"alt_depth,omitempty"`
	AltFreq   *float64 `bson:"alt_freq,omitempty" json:"alt_freq,omitempty"`
}

type Variant struct {
	Id        string `bson:"_id" json:"_id"`
	VariantId string `bson:"variant_id" json:"variant_id"`
	CaseId    string `bson:"case_id" json:"case_id"`

	Category    c.Category    `bson:"category" json:"category"`
	SubCategory string        `bson:"sub_category,omitempty" json:"sub_category,omitempty"`
	VariantType c.VariantType `bson:"variant_type" json:"variant_type"`

	Chromosome string `bson:"chromosome" json:"chromosome"`
	Position   int    `bson:"position" json:"position"`
	End        int    `bson:"end" json:"end"`
	Length     *int   `bson:"length,omitempty" json:"length,omitempty"`
	// set for breakends whose mate lies on another chromosome
	EndChrom string `bson:"end_chrom,omitempty" json:"end_chrom,omitempty"`
	StrRepid string `bson:"str_repid,omitempty" json:"str_repid,omitempty"`

	HgncIds     []int         `bson:"hgnc_ids" json:"hgnc_ids"`
	HgncSymbols []string      `bson:"hgnc_symbols,omitempty" json:"hgnc_symbols,omitempty"`
	Genes       []VariantGene `bson:"genes,omitempty" json:"genes,omitempty"`
	Panels      []string      `bson:"panels,omitempty" json:"panels,omitempty"`

	RankScore float64 `bson:"rank_score" json:"rank_score"`

	GnomadFrequency *float64 `bson:"gnomad_frequency,omitempty" json:"gnomad_frequency,omitempty"`
	Swegen          *float64 `bson:"swegen,omitempty" json:"swegen,omitempty"`
	ClingenNgi      *float64 `bson:"clingen_ngi,omitempty" json:"clingen_ngi,omitempty"`
	LocalObsOld     *int     `bson:"local_obs_old,omitempty" json:"local_obs_old,omitempty"`
	LocalObsOldFreq *float64 `bson:"local_obs_old_freq,omitempty" json:"local_obs_old_freq,omitempty"`

	CaddScore *float64 `bson:"cadd_score,omitempty" json:"cadd_score,omitempty"`
	Spidex    *float64 `bson:"spidex,omitempty" json:"spidex,omitempty"`
	Decipher  *float64 `bson:"decipher,omitempty" json:"decipher,omitempty"`

	Clnsig    []ClnsigEntry `bson:"clnsig,omitempty" json:"clnsig,omitempty"`
	ClnsigOnc []ClnsigEntry `bson:"clnsig_onc,omitempty" json:"clnsig_onc,omitempty"`

	GeneticModels []string `bson:"genetic_models,omitempty" json:"genetic_models,omitempty"`

	// user-tag fields, mutable through sibling event subsystems
	ManualRank         *int     `bson:"manual_rank,omitempty" json:"manual_rank,omitempty"`
	DismissVariant     []int    `bson:"dismiss_variant,omitempty" json:"dismiss_variant,omitempty"`
	MosaicTags         []string `bson:"mosaic_tags,omitempty" json:"mosaic_tags,omitempty"`
	CancerTier         string   `bson:"cancer_tier,omitempty" json:"cancer_tier,omitempty"`
	AcmgClassification *int     `bson:"acmg_classification,omitempty" json:"acmg_classification,omitempty"`
	CcvClassification  *int     `bson:"ccv_classification,omitempty" json:"ccv_classification,omitempty"`
	MvlTag             *string  `bson:"mvl_tag,omitempty" json:"mvl_tag,omitempty"`
	ClinvarTag         *string  `bson:"clinvar_tag,omitempty" json:"clinvar_tag,omitempty"`
	CosmicTag          *string  `bson:"cosmic_tag,omitempty" json:"cosmic_tag,omitempty"`

	Samples []VariantSample `bson:"samples,omitempty" json:"samples,omitempty"`
	Tumor   *TumorStats     `bson:"tumor,omitempty" json:"tumor,omitempty"`
	Normal  *TumorStats     `bson:"normal,omitempty" json:"normal,omitempty"`

	// caller soft-filter flags ; absent or empty means PASS-clean
	Filters []string `bson:"filters,omitempty" json:"filters,omitempty"`
}

// MostSevereConsequence picks the highest-ranked functional annotation
// across the variant's gene overlaps ; empty when none are annotated.
func (v *Variant) MostSevereConsequence() string {
	best := ""
	bestRank := len(so.SeverityOrder)

	for _, gene := range v.Genes {
		if gene.FunctionalAnnotation == "" {
			continue
		}
		if rank := so.SeverityRank(gene.FunctionalAnnotation); rank < bestRank {
			best = gene.FunctionalAnnotation
			bestRank = rank
		}
	}

	return best
}

type Individual struct {
	IndividualId string `bson:"individual_id" json:"individual_id"`
	DisplayName  string `bson:"display_name,omitempty" json:"display_name,omitempty"`
	// 1 = unaffected, 2 = affected
	AffectedStatus int `bson:"affected_status" json:"affected_status"`
}

type CasePanel struct {
	PanelName string `bson:"panel_name" json:"panel_name"`
	IsDefault bool   `bson:"is_default,omitempty" json:"is_default,omitempty"`
}

type PhenotypeTerm struct {
	PhenotypeId string `bson:"phenotype_id" json:"phenotype_id"`
	Feature     string `bson:"feature,omitempty" json:"feature,omitempty"`
}

type Case struct {
	Id            string   `bson:"_id" json:"_id"`
	DisplayName   string   `bson:"display_name" json:"display_name"`
	Owner         string   `bson:"owner" json:"owner"`
	Collaborators []string `bson:"collaborators,omitempty" json:"collaborators,omitempty"`

	Individuals []Individual `bson:"individuals,omitempty" json:"individuals,omitempty"`
	Panels      []CasePanel  `bson:"panels,omitempty" json:"panels,omitempty"`

	PhenotypeTerms      []PhenotypeTerm `bson:"phenotype_terms,omitempty" json:"phenotype_terms,omitempty"`
	PhenotypeGroups     []PhenotypeTerm `bson:"phenotype_groups,omitempty" json:"phenotype_groups,omitempty"`
	DiagnosisPhenotypes []string        `bson:"diagnosis_phenotypes,omitempty" json:"diagnosis_phenotypes,omitempty"`
	Cohorts             []string        `bson:"cohorts,omitempty" json:"cohorts,omitempty"`

	Status    string   `bson:"status,omitempty" json:"status,omitempty"`
	Tags      []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Assignees []string `bson:"assignees,omitempty" json:"assignees,omitempty"`

	Causatives []string `bson:"causatives,omitempty" json:"causatives,omitempty"`
	Suspects   []string `bson:"suspects,omitempty" json:"suspects,omitempty"`

	RerunRequested bool `bson:"rerun_requested,omitempty" json:"rerun_requested,omitempty"`

	// HPO-derived dynamic gene list backing the reserved 'hpo' panel
	DynamicGeneList   []int `bson:"dynamic_gene_list,omitempty" json:"dynamic_gene_list,omitempty"`
	HpoClinicalFilter bool  `bson:"hpo_clinical_filter,omitempty" json:"hpo_clinical_filter,omitempty"`
}

// AffectedSampleIds lists the sample ids of affected individuals,
// in case-document order.
func (cs *Case) AffectedSampleIds() []string {
	var affected []string
	for _, individual := range cs.Individuals {
		if individual.AffectedStatus == 2 {
			affected = append(affected, individual.IndividualId)
		}
	}
	return affected
}

type Institute struct {
	Id          string `bson:"_id" json:"_id"`
	DisplayName string `bson:"display_name,omitempty" json:"display_name,omitempty"`
	// VCF FILTER values hidden by default views
	SoftFilters []string `bson:"soft_filters,omitempty" json:"soft_filters,omitempty"`
}

type Gene struct {
	HgncId     int      `bson:"hgnc_id" json:"hgnc_id"`
	HgncSymbol string   `bson:"hgnc_symbol" json:"hgnc_symbol"`
	Aliases    []string `bson:"aliases,omitempty" json:"aliases,omitempty"`
	Build      string   `bson:"build" json:"build"`
	Chromosome string   `bson:"chromosome,omitempty" json:"chromosome,omitempty"`
	Start      int      `bson:"start,omitempty" json:"start,omitempty"`
	End        int      `bson:"end,omitempty" json:"end,omitempty"`
}

type PanelGene struct {
	HgncId int    `bson:"hgnc_id" json:"hgnc_id"`
	Symbol string `bson:"symbol,omitempty" json:"symbol,omitempty"`
}

type GenePanel struct {
	PanelName string      `bson:"panel_name" json:"panel_name"`
	Version   float64     `bson:"version" json:"version"`
	Genes     []PanelGene `bson:"genes" json:"genes"`
}

// A saved filter dict, scoped to institute and category.
type FilterStash struct {
	Id          string                 `bson:"_id" json:"_id"`
	InstituteId string                 `bson:"institute_id" json:"institute_id"`
	Category    c.Category             `bson:"category" json:"category"`
	Label       string                 `bson:"label" json:"label"`
	FilterDict  map[string]interface{} `bson:"filter_dict" json:"filter_dict"`
	Owner       string                 `bson:"owner" json:"owner"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
}

package queries

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"varq/api/models/constants/criteria"
	"varq/api/models/constants/so"
)

/*
	VariantFilter is the decoded form of the user-facing filter dict.

	Threshold fields are pointers so that an explicit zero stays
	distinguishable from an absent criterion ; list criteria contribute
	nothing when empty.
*/
type VariantFilter struct {
	// -- fundamental criteria
	CaseId           string   `mapstructure:"case_id"`
	VariantIds       []string `mapstructure:"variant_ids"`
	Category         string   `mapstructure:"category"`
	VariantType      string   `mapstructure:"variant_type"`
	HgncSymbols      []string `mapstructure:"hgnc_symbols"`
	Repids           []string `mapstructure:"repids"`
	GenePanels       []string `mapstructure:"gene_panels"`
	Chrom            string   `mapstructure:"chrom"`
	Start            *int     `mapstructure:"start"`
	End              *int     `mapstructure:"end"`
	HideDismissed    bool     `mapstructure:"hide_dismissed"`
	ShowSoftFiltered bool     `mapstructure:"show_soft_filtered"`
	// tri-state : only an explicit false emits the affected-carrier
	// predicate
	ShowUnaffected *bool    `mapstructure:"show_unaffected"`
	RankScore      *float64 `mapstructure:"rank_score"`

	// -- primary criteria and their modifiers
	Clinsig                        []interface{} `mapstructure:"clinsig"`
	ClinsigExclude                 bool          `mapstructure:"clinsig_exclude"`
	ClinvarTrustedRevstat          bool          `mapstructure:"clinvar_trusted_revstat"`
	ClinsigConfidentAlwaysReturned bool          `mapstructure:"clinsig_confident_always_returned"`
	PrioritiseClinvar              bool          `mapstructure:"prioritise_clinvar"`
	ClinsigOnc                     []interface{} `mapstructure:"clinsig_onc"`
	ClinsigOncExclude              bool          `mapstructure:"clinsig_onc_exclude"`

	// -- secondary criteria
	GnomadFrequency       *float64 `mapstructure:"gnomad_frequency"`
	LocalObsOld           *int     `mapstructure:"local_obs_old"`
	LocalObsOldFreq       *float64 `mapstructure:"local_obs_old_freq"`
	ClingenNgi            *float64 `mapstructure:"clingen_ngi"`
	Swegen                *float64 `mapstructure:"swegen"`
	SpidexHuman           []string `mapstructure:"spidex_human"`
	CaddScore             *float64 `mapstructure:"cadd_score"`
	CaddInclusive         bool     `mapstructure:"cadd_inclusive"`
	GeneticModels         []string `mapstructure:"genetic_models"`
	FunctionalAnnotations []string `mapstructure:"functional_annotations"`
	RegionAnnotations     []string `mapstructure:"region_annotations"`
	Size                  *int     `mapstructure:"size"`
	SizeShorter           bool     `mapstructure:"size_shorter"`
	Svtype                []string `mapstructure:"svtype"`
	Decipher              bool     `mapstructure:"decipher"`
	Depth                 *float64 `mapstructure:"depth"`
	AltCount              *float64 `mapstructure:"alt_count"`
	ControlFrequency      *float64 `mapstructure:"control_frequency"`
	TumorFrequency        *float64 `mapstructure:"tumor_frequency"`
	MvlTag                bool     `mapstructure:"mvl_tag"`
	ClinvarTag            bool     `mapstructure:"clinvar_tag"`
	CosmicTag             bool     `mapstructure:"cosmic_tag"`

	// -- virtual criteria, pre-expanded by the case-scope resolver
	PhenotypeTerms  []string `mapstructure:"phenotype_terms"`
	PhenotypeGroups []string `mapstructure:"phenotype_groups"`
	Cohorts         []string `mapstructure:"cohorts"`
	SimilarCase     []string `mapstructure:"similar_case"`
}

/*
	ParseFilter decodes a raw filter dict. Keys with empty values are
	dropped before decoding so they cannot disturb the result ; keys
	outside the closed criterion set are reported as warnings, never as
	failures. A numeric parse failure on a threshold field is fatal.
*/
func ParseFilter(dict map[string]interface{}) (*VariantFilter, []string, error) {
	pruned := map[string]interface{}{}
	for key, value := range dict {
		if isEmptyValue(value) {
			continue
		}
		pruned[key] = value
	}

	var (
		filter   VariantFilter
		metadata mapstructure.Metadata
	)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &filter,
		Metadata:         &metadata,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, nil, err
	}

	if decodeErr := decoder.Decode(pruned); decodeErr != nil {
		return nil, nil, fmt.Errorf("%w : %s", ErrInvalidValue, decodeErr)
	}

	var warnings []string
	for _, key := range metadata.Unused {
		if criteria.Classify(key) != criteria.Unknown {
			// classifier drift guard : a key in the closed set must
			// always be decodable
			continue
		}
		warnings = append(warnings, fmt.Sprintf("unknown criterion %q ignored", key))
	}

	warnings = append(warnings, filter.annotationTermWarnings()...)

	if validationErr := filter.Validate(); validationErr != nil {
		return nil, warnings, validationErr
	}

	return &filter, warnings, nil
}

// annotationTermWarnings flags consequence and region terms outside
// the Sequence Ontology sets ; the terms are still matched verbatim,
// they just cannot hit anything the annotators emit.
func (f *VariantFilter) annotationTermWarnings() []string {
	var warnings []string

	for _, term := range f.FunctionalAnnotations {
		if !so.IsValidTerm(term) {
			warnings = append(warnings, fmt.Sprintf("unrecognized consequence term %q", term))
		}
	}

	for _, term := range f.RegionAnnotations {
		known := false
		for _, region := range so.RegionAnnotations {
			if region == term {
				known = true
				break
			}
		}
		if !known {
			warnings = append(warnings, fmt.Sprintf("unrecognized region annotation %q", term))
		}
	}

	return warnings
}

// Validate rejects combinations the algebra cannot honor.
func (f *VariantFilter) Validate() error {
	if f.ClinsigExclude && f.ClinvarOverride() {
		return fmt.Errorf("%w : clinsig_exclude cannot be combined with the ClinVar override mode", ErrConflictingCriteria)
	}
	if f.ClinsigOncExclude && f.ClinvarOverride() {
		return fmt.Errorf("%w : clinsig_onc_exclude cannot be combined with the ClinVar override mode", ErrConflictingCriteria)
	}
	return nil
}

// ClinvarOverride folds the two input spellings of the override mode
// into the single internal flag.
func (f *VariantFilter) ClinvarOverride() bool {
	return f.ClinsigConfidentAlwaysReturned || f.PrioritiseClinvar
}

func (f *VariantFilter) HasGeneCriteria() bool {
	return len(f.HgncSymbols) > 0 || len(f.GenePanels) > 0
}

func (f *VariantFilter) HasPrimaryCriteria() bool {
	return len(f.Clinsig) > 0 || len(f.ClinsigOnc) > 0
}

func (f *VariantFilter) HasSecondaryCriteria() bool {
	return f.GnomadFrequency != nil ||
		f.LocalObsOld != nil ||
		f.LocalObsOldFreq != nil ||
		f.ClingenNgi != nil ||
		f.Swegen != nil ||
		len(f.SpidexHuman) > 0 ||
		f.CaddScore != nil ||
		len(f.GeneticModels) > 0 ||
		len(f.FunctionalAnnotations) > 0 ||
		len(f.RegionAnnotations) > 0 ||
		f.Size != nil ||
		len(f.Svtype) > 0 ||
		f.Decipher ||
		f.Depth != nil ||
		f.AltCount != nil ||
		f.ControlFrequency != nil ||
		f.TumorFrequency != nil ||
		f.MvlTag ||
		f.ClinvarTag ||
		f.CosmicTag
}

// HasCaseScopeCriteria reports whether the case-scope resolver has any
// virtual criteria to expand.
func (f *VariantFilter) HasCaseScopeCriteria() bool {
	return len(f.PhenotypeTerms) > 0 ||
		len(f.PhenotypeGroups) > 0 ||
		len(f.Cohorts) > 0 ||
		len(f.SimilarCase) > 0
}

func isEmptyValue(value interface{}) bool {
	if value == nil {
		return true
	}

	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.String:
		return reflected.Len() == 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return reflected.Len() == 0
	}
	return false
}

package criteria

import (
	c "varq/api/models/constants"
)

/*
	Partitions the closed set of recognized filter keys into the three
	layers of the composition algebra :

	- fundamental criteria are always ANDed at the top level of a query
	- primary criteria are 'overriding inclusions' (ClinVar pathogenicity
	  and oncogenicity)
	- secondary criteria are plain restrictive filters

	Virtual criteria never reach the composer directly ; they are
	pre-expanded into a case-id scope by the case resolver.
*/
const (
	Unknown     c.CriterionBucket = ""
	Fundamental c.CriterionBucket = "fundamental"
	Primary     c.CriterionBucket = "primary"
	Secondary   c.CriterionBucket = "secondary"
	Virtual     c.CriterionBucket = "virtual"
)

var FundamentalCriteria = []string{
	"case_id",
	"variant_ids",
	"category",
	"variant_type",
	"hgnc_symbols",
	"repids",
	"gene_panels",
	"chrom",
	"start",
	"end",
	"hide_dismissed",
	"show_soft_filtered",
	"show_unaffected",
	"rank_score",
}

var PrimaryCriteria = []string{
	"clinsig",
	"clinsig_onc",
}

var SecondaryCriteria = []string{
	"gnomad_frequency",
	"local_obs_old",
	"local_obs_old_freq",
	"clingen_ngi",
	"swegen",
	"spidex_human",
	"cadd_score",
	"genetic_models",
	"functional_annotations",
	"region_annotations",
	"size",
	"svtype",
	"decipher",
	"depth",
	"alt_count",
	"control_frequency",
	"mvl_tag",
	"clinvar_tag",
	"cosmic_tag",
	"tumor_frequency",
}

var VirtualCriteria = []string{
	"phenotype_terms",
	"phenotype_groups",
	"cohorts",
	"similar_case",
}

// Toggles that modulate another criterion rather than contributing a
// predicate of their own ; each rides along with the layer it modulates.
var PrimaryModifiers = []string{
	"clinvar_trusted_revstat",
	"clinsig_confident_always_returned",
	"prioritise_clinvar",
	"clinsig_exclude",
	"clinsig_onc_exclude",
}

var SecondaryModifiers = []string{
	"cadd_inclusive",
	"size_shorter",
}

// Classify is total over the closed criterion set ; keys outside it
// return Unknown and are reported (not failed) by the filter decoder.
func Classify(key string) c.CriterionBucket {
	for _, k := range FundamentalCriteria {
		if k == key {
			return Fundamental
		}
	}
	for _, k := range PrimaryCriteria {
		if k == key {
			return Primary
		}
	}
	for _, k := range SecondaryCriteria {
		if k == key {
			return Secondary
		}
	}
	for _, k := range VirtualCriteria {
		if k == key {
			return Virtual
		}
	}
	for _, k := range PrimaryModifiers {
		if k == key {
			return Primary
		}
	}
	for _, k := range SecondaryModifiers {
		if k == key {
			return Secondary
		}
	}
	return Unknown
}

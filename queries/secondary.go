package queries

import (
	"math"

	"varq/api/models/constants/spidex"
)

/*
	Restrictive secondary criteria. Each recognized criterion emits one
	predicate ; absent criteria contribute nothing. Frequency-style
	thresholds treat a missing annotation as passing, so sparsely
	annotated variants are not silently hidden.
*/
func BuildSecondaryFilters(f *VariantFilter) []*Predicate {
	var secondary []*Predicate

	if f.GnomadFrequency != nil {
		secondary = append(secondary, buildFrequencyFilter("gnomad_frequency", *f.GnomadFrequency))
	}

	if f.LocalObsOld != nil {
		secondary = append(secondary, Or(
			Eq("local_obs_old", nil),
			Lte("local_obs_old", *f.LocalObsOld),
		))
	}

	if f.LocalObsOldFreq != nil {
		secondary = append(secondary, Or(
			Eq("local_obs_old_freq", nil),
			Lte("local_obs_old_freq", *f.LocalObsOldFreq),
		))
	}

	if f.ClingenNgi != nil {
		secondary = append(secondary, Or(
			Exists("clingen_ngi", false),
			Lte("clingen_ngi", *f.ClingenNgi),
		))
	}

	if f.Swegen != nil {
		secondary = append(secondary, Or(
			Exists("swegen", false),
			Lte("swegen", *f.Swegen),
		))
	}

	if len(f.SpidexHuman) > 0 {
		secondary = append(secondary, buildSpidexFilter(f.SpidexHuman))
	}

	if f.CaddScore != nil {
		caddPred := Gt("cadd_score", *f.CaddScore)
		if f.CaddInclusive {
			caddPred = Or(caddPred, Exists("cadd_score", false))
		}
		secondary = append(secondary, caddPred)
	}

	if len(f.GeneticModels) > 0 {
		secondary = append(secondary, InStrings("genetic_models", f.GeneticModels))
	}

	if len(f.FunctionalAnnotations) > 0 {
		secondary = append(secondary, InStrings("genes.functional_annotation", f.FunctionalAnnotations))
	}

	if len(f.RegionAnnotations) > 0 {
		secondary = append(secondary, InStrings("genes.region_annotation", f.RegionAnnotations))
	}

	if f.Size != nil {
		if f.SizeShorter {
			secondary = append(secondary, Or(
				Lt("length", *f.Size),
				Exists("length", false),
			))
		} else {
			secondary = append(secondary, Gt("length", *f.Size))
		}
	}

	if len(f.Svtype) > 0 {
		secondary = append(secondary, InStrings("sub_category", f.Svtype))
	}

	if f.Decipher {
		secondary = append(secondary, Exists("decipher", true))
	}

	if f.Depth != nil {
		secondary = append(secondary, Gt("tumor.read_depth", *f.Depth))
	}

	if f.AltCount != nil {
		secondary = append(secondary, Gt("tumor.alt_depth", *f.AltCount))
	}

	if f.ControlFrequency != nil {
		secondary = append(secondary, Lt("normal.alt_freq", *f.ControlFrequency))
	}

	if f.TumorFrequency != nil {
		secondary = append(secondary, Gt("tumor.alt_freq", *f.TumorFrequency))
	}

	if f.MvlTag {
		secondary = append(secondary, buildTagFilter("mvl_tag"))
	}

	if f.ClinvarTag {
		secondary = append(secondary, buildTagFilter("clinvar_tag"))
	}

	if f.CosmicTag {
		secondary = append(secondary, buildTagFilter("cosmic_tag"))
	}

	return secondary
}

// buildFrequencyFilter treats -1 as 'never observed' : only variants
// without the annotation pass at all.
func buildFrequencyFilter(field string, threshold float64) *Predicate {
	if threshold == -1 {
		return Exists(field, false)
	}
	return Or(
		Lt(field, threshold),
		Exists(field, false),
	)
}

// buildSpidexFilter expands the requested severity bands into their
// paired score intervals ; 'not_reported' selects unannotated variants.
func buildSpidexFilter(requested []string) *Predicate {
	var bands []*Predicate

	for _, name := range requested {
		if name == spidex.NotReported {
			bands = append(bands, Exists("spidex", false))
			continue
		}

		band, known := spidex.HumanBands[name]
		if !known {
			continue
		}
		bands = append(bands,
			boundedInterval("spidex", band.NegStart, band.NegEnd),
			boundedInterval("spidex", band.PosStart, band.PosEnd),
		)
	}

	if len(bands) == 1 {
		return bands[0]
	}
	return Or(bands...)
}

// boundedInterval omits any infinite edge of a band.
func boundedInterval(field string, start float64, end float64) *Predicate {
	switch {
	case math.IsInf(start, -1):
		return Lt(field, end)
	case math.IsInf(end, 1):
		return Gt(field, start)
	default:
		return And(Gt(field, start), Lt(field, end))
	}
}

// user tags pass when present and non-null
func buildTagFilter(field string) *Predicate {
	return And(
		Exists(field, true),
		Not(Eq(field, nil)),
	)
}

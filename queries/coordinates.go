package queries

import (
	c "varq/api/models/constants"
	"varq/api/models/constants/category"
	"varq/api/models/constants/chromosome"
)

/*
	Positional predicates.

	SNV-like categories get a plain chromosome equality plus a range
	intersection. Structural categories widen the chromosome test to the
	breakend mate (end_chrom) and expand the range test into the four
	interval-overlap cases, so translocations are never silently
	dropped.
*/
func BuildCoordinateFilter(chrom string, start *int, end *int, cat c.Category) (*Predicate, error) {
	normalized, err := chromosome.Normalize(chrom)
	if err != nil {
		return nil, err
	}

	if category.IsStructural(cat) {
		return buildSvCoordinateFilter(normalized, start, end), nil
	}
	return buildSnvCoordinateFilter(normalized, start, end), nil
}

func buildSnvCoordinateFilter(chrom string, start *int, end *int) *Predicate {
	chromPred := Eq("chromosome", chrom)

	if start == nil || end == nil {
		return chromPred
	}

	return And(
		chromPred,
		Lte("position", *end),
		Gte("end", *start),
	)
}

func buildSvCoordinateFilter(chrom string, start *int, end *int) *Predicate {
	// breakend symmetry : either endpoint may sit on the queried chromosome
	chromPred := Or(
		Eq("chromosome", chrom),
		Eq("end_chrom", chrom),
	)

	if start == nil || end == nil {
		return chromPred
	}

	positionPred := Or(
		// 1. the variant's left edge lies inside the queried region
		And(Gte("position", *start), Lte("position", *end)),
		// 2. the variant's right edge lies inside the queried region
		And(Gte("end", *start), Lte("end", *end)),
		// 3. the variant is contained by the queried region
		And(Gte("position", *start), Lte("end", *end)),
		// 4. the variant contains the queried region
		And(Lte("position", *start), Gte("end", *end)),
	)

	return And(chromPred, positionPred)
}

package category

import (
	c "varq/api/models/constants"
	"strings"
)

const (
	Unknown  c.Category = ""
	Snv      c.Category = "snv"
	Sv       c.Category = "sv"
	Cancer   c.Category = "cancer"
	CancerSv c.Category = "cancer_sv"
	Str      c.Category = "str"
	Mei      c.Category = "mei"
	Outlier  c.Category = "outlier"
)

func CastToCategory(text string) c.Category {
	switch strings.ToLower(text) {
	case "snv":
		return Snv
	case "sv":
		return Sv
	case "cancer":
		return Cancer
	case "cancer_sv":
		return CancerSv
	case "str":
		return Str
	case "mei":
		return Mei
	case "outlier":
		return Outlier
	default:
		return Unknown
	}
}

// Categories whose coordinate predicates follow structural-variant
// overlap semantics (intervals plus breakend symmetry).
func IsStructural(cat c.Category) bool {
	return cat == Sv || cat == CancerSv
}

// The DNA-level categories considered by gene-overlap lookups ;
// 'outlier' is the WTS (RNA) side.
func DnaCategories() []c.Category {
	return []c.Category{Snv, Sv, Cancer, CancerSv, Str, Mei}
}

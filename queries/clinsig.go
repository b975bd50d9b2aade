package queries

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"varq/api/models/constants/clinsig"
)

/*
	ClinVar pathogenicity and oncogenicity predicates.

	Stored entries are polymorphic : 'value' may hold the numeric code
	or a human-readable term, sometimes several terms joined by commas.
	Every predicate therefore pairs an $in over both forms with a regex
	over the readable names, so a value like
	"Pathogenic, Likely pathogenic" still matches.
*/

// BuildClinsigFilter emits the primary ClinVar significance predicate,
// honoring the trusted-revstat restriction and the exclude mode.
func BuildClinsigFilter(f *VariantFilter) *Predicate {
	inclusive := buildSignificanceMatch(f.Clinsig, f.ClinvarTrustedRevstat)
	if f.ClinsigExclude {
		return exclusionOf("clnsig", inclusive)
	}
	return inclusive
}

// BuildTrustedClinsigFilter is the override-mode variant : the
// requested terms additionally require a trusted review status.
func BuildTrustedClinsigFilter(f *VariantFilter) *Predicate {
	return buildSignificanceMatch(f.Clinsig, true)
}

// BuildOncogenicityFilter mirrors the significance predicate over the
// 'clnsig_onc' annotations with the oncogenicity term map.
func BuildOncogenicityFilter(f *VariantFilter) *Predicate {
	values, regexTerms := normalizeOncogenicityTerms(f.ClinsigOnc)

	inclusive := ElemMatch("clnsig_onc", annotationValueMatch(values, regexTerms))

	if f.ClinsigOncExclude {
		return exclusionOf("clnsig_onc", inclusive)
	}
	return inclusive
}

func buildSignificanceMatch(requested []interface{}, trustedRevstat bool) *Predicate {
	values, regexTerms := normalizeSignificanceTerms(requested)

	subs := []*Predicate{annotationValueMatch(values, regexTerms)}

	if trustedRevstat {
		subs = append(subs, Regex("revstat", strings.Join(clinsig.TrustedRevstatLevels, "|")))
	}

	return ElemMatch("clnsig", subs...)
}

// annotationValueMatch pairs the $in over both stored forms with the
// readable-name regex ; with no readable terms an empty regex would
// match every string entry, so the branch is dropped.
func annotationValueMatch(values []interface{}, regexTerms []string) *Predicate {
	if len(regexTerms) == 0 {
		return In("value", values)
	}
	return Or(
		In("value", values),
		Regex("value", strings.Join(regexTerms, "|")),
	)
}

// exclusionOf negates an inclusive annotation predicate : variants with
// no annotation list at all pass, as do variants whose entries all fail
// the inclusive match.
func exclusionOf(field string, inclusive *Predicate) *Predicate {
	return Or(
		Exists(field, false),
		Eq(field, nil),
		Not(inclusive),
	)
}

/*
	normalizeSignificanceTerms maps each requested rank onto both its
	numeric and human-readable forms. Numeric ranks are sorted first so
	composition stays deterministic regardless of input order ;
	free-text terms keep their request order after the ranks.
*/
func normalizeSignificanceTerms(requested []interface{}) ([]interface{}, []string) {
	var (
		codes []int
		terms []string
	)

	for _, entry := range requested {
		switch v := entry.(type) {
		case int:
			codes = append(codes, v)
		case int64:
			codes = append(codes, int(v))
		case float64:
			codes = append(codes, int(v))
		case string:
			if code, convErr := strconv.Atoi(v); convErr == nil {
				codes = append(codes, code)
				continue
			}
			// a canonical term folds into its numeric code, so both
			// stored forms match
			if code, known := clinsig.CodeForTerm(v); known {
				codes = append(codes, code)
				continue
			}
			terms = append(terms, v)
		default:
			terms = append(terms, fmt.Sprint(entry))
		}
	}

	sort.Ints(codes)

	var (
		values     []interface{}
		regexTerms []string
	)
	for _, code := range codes {
		values = append(values, code)
		if name, known := clinsig.SignificanceMap[code]; known {
			values = append(values, name)
			regexTerms = append(regexTerms, name)
		}
	}
	for _, term := range terms {
		values = append(values, term)
		regexTerms = append(regexTerms, term)
	}

	return values, regexTerms
}

func normalizeOncogenicityTerms(requested []interface{}) ([]interface{}, []string) {
	var (
		values     []interface{}
		regexTerms []string
	)

	for _, entry := range requested {
		term := fmt.Sprint(entry)
		values = append(values, term)

		if canonical, known := clinsig.CanonicalOncogenicityTerm(term); known {
			if canonical != term {
				values = append(values, canonical)
			}
			regexTerms = append(regexTerms, canonical)
			continue
		}
		regexTerms = append(regexTerms, term)
	}

	return values, regexTerms
}

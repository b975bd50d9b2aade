package clinsig

import "strings"

/*
	ClinVar taxonomies.

	Stored 'clnsig[].value' entries are polymorphic : either the small
	integer code or the human-readable term (sometimes several terms
	joined by commas), so every map here keeps both forms around.
*/

// Numeric significance codes to their canonical human-readable terms.
var SignificanceMap = map[int]string{
	0:   "Uncertain significance",
	1:   "not provided",
	2:   "Benign",
	3:   "Likely benign",
	4:   "Likely pathogenic",
	5:   "Pathogenic",
	255: "other",
}

// Review-status tiers accepted by the trusted-revstat restriction.
var TrustedRevstatLevels = []string{"mult", "single", "exp", "guideline"}

// Oncogenicity terms, normalized key to canonical display form,
// matched against 'clnsig_onc[].value'.
var OncogenicityMap = map[string]string{
	"benign":                 "Benign",
	"likely_benign":          "Likely benign",
	"uncertain_significance": "Uncertain significance",
	"likely_oncogenic":       "Likely oncogenic",
	"oncogenic":              "Oncogenic",
}

// CodeForTerm reverses SignificanceMap, case-insensitively.
// The second return is false for unrecognized terms.
func CodeForTerm(term string) (int, bool) {
	for code, name := range SignificanceMap {
		if strings.EqualFold(name, term) {
			return code, true
		}
	}
	return 0, false
}

// CanonicalOncogenicityTerm maps a requested oncogenicity term (in either
// its normalized or display spelling) to the canonical display form.
func CanonicalOncogenicityTerm(term string) (string, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(term), " ", "_"))
	canonical, ok := OncogenicityMap[normalized]
	return canonical, ok
}

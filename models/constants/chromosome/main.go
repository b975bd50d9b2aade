package chromosome

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	c "varq/api/models/constants"
)

// Surfaced when a chromosome string cannot be normalized
// to one of the accepted human chromosome names.
var ErrUnknownChromosome = errors.New("unknown chromosome")

const (
	GenomeBuild37 c.GenomeBuild = "37"
	GenomeBuild38 c.GenomeBuild = "38"
)

func CastToGenomeBuild(text string) c.GenomeBuild {
	switch strings.TrimPrefix(strings.ToUpper(text), "GRCH") {
	case "38":
		return GenomeBuild38
	default:
		// the clinical default assembly
		return GenomeBuild37
	}
}

/*
	Normalize strips any 'chr' prefix (case-insensitively) and maps the
	remainder onto the canonical chromosome names '1'..'22', 'X', 'Y', 'MT'.
*/
func Normalize(text string) (string, error) {
	stripped := text
	if len(stripped) >= 3 && strings.EqualFold(stripped[0:3], "chr") {
		stripped = stripped[3:]
	}

	// numeric chromosomes stay as-is
	chromNumber, _ := strconv.Atoi(stripped)
	if chromNumber > 0 && chromNumber < 23 {
		return fmt.Sprint(chromNumber), nil
	}

	switch strings.ToUpper(stripped) {
	case "X":
		return "X", nil
	case "Y":
		return "Y", nil
	case "M", "MT":
		return "MT", nil
	}

	return "", fmt.Errorf("%w : %q", ErrUnknownChromosome, text)
}

// A single pseudo-autosomal interval on X or Y, 1-based inclusive.
type ParInterval struct {
	Start int
	End   int
	Label string
}

// Pseudo-autosomal regions per genome build, keyed by chromosome.
var ParCoordinates = map[c.GenomeBuild]map[string][]ParInterval{
	GenomeBuild37: {
		"X": {
			{Start: 60001, End: 2699520, Label: "PAR1"},
			{Start: 154931044, End: 155260560, Label: "PAR2"},
		},
		"Y": {
			{Start: 10001, End: 2649520, Label: "PAR1"},
			{Start: 59034050, End: 59363566, Label: "PAR2"},
		},
	},
	GenomeBuild38: {
		"X": {
			{Start: 10001, End: 2781479, Label: "PAR1"},
			{Start: 155701383, End: 156030895, Label: "PAR2"},
		},
		"Y": {
			{Start: 10001, End: 2781479, Label: "PAR1"},
			{Start: 56887903, End: 57217415, Label: "PAR2"},
		},
	},
}

// IsPseudoAutosomal reports whether (chrom, pos) falls inside a
// pseudo-autosomal interval of the given build.
func IsPseudoAutosomal(chrom string, pos int, build c.GenomeBuild) bool {
	normalized, err := Normalize(chrom)
	if err != nil {
		return false
	}

	intervals, ok := ParCoordinates[build][normalized]
	if !ok {
		return false
	}

	for _, interval := range intervals {
		if pos >= interval.Start && pos <= interval.End {
			return true
		}
	}
	return false
}

// SnvOverlaps tests a simple closed-interval intersection between a
// variant's [pos, end] span and a queried [start, end] region.
func SnvOverlaps(variantPos int, variantEnd int, queryStart int, queryEnd int) bool {
	return variantPos <= queryEnd && variantEnd >= queryStart
}

/*
	SvOverlaps tests the four structural-variant overlap cases between the
	variant interval [pos, end] on 'chrom' and the queried interval
	[queryStart, queryEnd] on 'queryChrom' :
	  1. the variant's left edge lies inside the queried region
	  2. the variant's right edge lies inside the queried region
	  3. the variant is contained by the queried region
	  4. the variant contains the queried region
*/
func SvOverlaps(chrom string, pos int, end int, queryChrom string, queryStart int, queryEnd int) bool {
	if chrom != queryChrom {
		return false
	}

	leftInside := pos >= queryStart && pos <= queryEnd
	rightInside := end >= queryStart && end <= queryEnd
	contained := pos >= queryStart && end <= queryEnd
	containing := pos <= queryStart && end >= queryEnd

	return leftInside || rightInside || contained || containing
}

// BndOverlaps applies SvOverlaps symmetrically over both of a breakend's
// chrom/pos pairs, so translocation mates on either chromosome match.
func BndOverlaps(chrom string, pos int, endChrom string, end int, queryChrom string, queryStart int, queryEnd int) bool {
	if SvOverlaps(chrom, pos, end, queryChrom, queryStart, queryEnd) {
		return true
	}
	// swap the pair : the mate endpoint is tested on its own chromosome
	return SvOverlaps(endChrom, end, pos, queryChrom, queryStart, queryEnd)
}

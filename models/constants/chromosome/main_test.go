package chromosome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"1":     "1",
		"chr1":  "1",
		"CHR22": "22",
		"chrX":  "X",
		"x":     "X",
		"y":     "Y",
		"M":     "MT",
		"chrM":  "MT",
		"mt":    "MT",
	}

	for input, expected := range cases {
		normalized, err := Normalize(input)
		assert.NoError(t, err, input)
		assert.Equal(t, expected, normalized, input)
	}
}

func TestNormalizeRejectsUnknownNames(t *testing.T) {
	for _, input := range []string{"", "0", "23", "chr23", "banana", "chr"} {
		_, err := Normalize(input)
		assert.ErrorIs(t, err, ErrUnknownChromosome, input)
	}
}

func TestIsPseudoAutosomal(t *testing.T) {
	// build 37 X PAR1 edges
	assert.True(t, IsPseudoAutosomal("X", 60001, GenomeBuild37))
	assert.True(t, IsPseudoAutosomal("chrX", 2699520, GenomeBuild37))
	assert.False(t, IsPseudoAutosomal("X", 60000, GenomeBuild37))
	assert.False(t, IsPseudoAutosomal("X", 2699521, GenomeBuild37))

	// build 37 Y PAR2
	assert.True(t, IsPseudoAutosomal("Y", 59034050, GenomeBuild37))
	assert.False(t, IsPseudoAutosomal("Y", 59363567, GenomeBuild37))

	// build 38 shifts the intervals
	assert.True(t, IsPseudoAutosomal("X", 10001, GenomeBuild38))
	assert.False(t, IsPseudoAutosomal("X", 60001, GenomeBuild38))
	assert.True(t, IsPseudoAutosomal("Y", 57217415, GenomeBuild38))

	// autosomes are never pseudo-autosomal
	assert.False(t, IsPseudoAutosomal("7", 60001, GenomeBuild37))
}

func TestSnvOverlaps(t *testing.T) {
	assert.True(t, SnvOverlaps(100, 100, 50, 150))
	assert.True(t, SnvOverlaps(100, 120, 120, 200))
	assert.True(t, SnvOverlaps(100, 120, 50, 100))
	assert.False(t, SnvOverlaps(100, 120, 121, 200))
	assert.False(t, SnvOverlaps(100, 120, 10, 99))
}

func TestSvOverlapsFourCases(t *testing.T) {
	// left edge inside the queried region
	assert.True(t, SvOverlaps("2", 150, 500, "2", 100, 200))
	// right edge inside the queried region
	assert.True(t, SvOverlaps("2", 10, 150, "2", 100, 200))
	// variant contained by the queried region
	assert.True(t, SvOverlaps("2", 120, 180, "2", 100, 200))
	// variant containing the queried region
	assert.True(t, SvOverlaps("2", 10, 500, "2", 100, 200))

	assert.False(t, SvOverlaps("2", 300, 500, "2", 100, 200))
	assert.False(t, SvOverlaps("3", 120, 180, "2", 100, 200))
}

func TestBndOverlapsMateChromosome(t *testing.T) {
	// a translocation breakend anchored on 2 with its mate on 17
	assert.True(t, BndOverlaps("2", 1000, "17", 5000, "2", 900, 1100))
	assert.True(t, BndOverlaps("2", 1000, "17", 5000, "17", 4900, 5100))

	// neither endpoint touches the queried region
	assert.False(t, BndOverlaps("2", 1000, "17", 5000, "17", 9000, 9100))
	assert.False(t, BndOverlaps("2", 1000, "17", 5000, "5", 900, 1100))
}

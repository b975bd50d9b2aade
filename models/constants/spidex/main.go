package spidex

import "math"

// A symmetric pair of SPIDEX z-score intervals ; a band is matched when
// the score falls in either the negative or the positive interval.
type Band struct {
	NegStart float64
	NegEnd   float64
	PosStart float64
	PosEnd   float64
}

// The 'not_reported' pseudo-band selects variants without a SPIDEX
// annotation at all.
const NotReported = "not_reported"

// SPIDEX-human severity bands over the z-score ; the 'high' band is
// open-ended towards +/- infinity.
var HumanBands = map[string]Band{
	"low":    {NegStart: -1, NegEnd: 0, PosStart: 0, PosEnd: 1},
	"medium": {NegStart: -2, NegEnd: -1, PosStart: 1, PosEnd: 2},
	"high":   {NegStart: math.Inf(-1), NegEnd: -2, PosStart: 2, PosEnd: math.Inf(1)},
}

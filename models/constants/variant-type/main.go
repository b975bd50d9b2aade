package varianttype

import (
	c "varq/api/models/constants"
	"strings"
)

const (
	Clinical c.VariantType = "clinical"
	Research c.VariantType = "research"
)

func CastToVariantType(text string) c.VariantType {
	switch strings.ToLower(text) {
	case "research":
		return Research
	default:
		// the reviewing default ; a case's variant-type universe
		// is fixed before query composition
		return Clinical
	}
}

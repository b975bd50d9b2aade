package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout Varq and it's
	associated services.
*/
type Category string
type VariantType string
type GenomeBuild string

type CriterionBucket string

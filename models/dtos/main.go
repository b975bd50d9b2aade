package dtos

import (
	"time"

	"varq/api/models"
)

/*
	Data Transfer Objects for the HTTP surface.
*/

type VariantQueryResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`

	// criterion-level notices (unknown keys, dropped symbols) ; the
	// query still executed
	Warnings []string `json:"warnings,omitempty"`

	Query   map[string]interface{} `json:"query,omitempty"`
	Results []models.Variant       `json:"results"`
}

type VariantCompileResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`

	Warnings []string `json:"warnings,omitempty"`

	// the composed predicate tree, rendered as a document-store filter
	Query map[string]interface{} `json:"query"`
}

type VariantOverlapResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`

	// DNA-category overlaps (snv <-> sv within the same case)
	DnaVariants []models.Variant `json:"dna_variants"`
	// WTS overlaps (outlier RNA variants)
	WtsVariants []models.Variant `json:"wts_variants"`
}

type FilterStashResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`

	Results []models.FilterStash `json:"results"`
}

// -- error response shapes

type GeneralError struct {
	Message string `json:"message"`
}

type GeneralErrorResponseDto struct {
	Code      int            `json:"code"`
	Message   string         `json:"message,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Errors    []GeneralError `json:"errors,omitempty"`
}

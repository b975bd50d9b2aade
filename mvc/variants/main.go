package variantsMvc

import (
	"errors"
	"net/http"

	"github.com/labstack/echo"

	"varq/api/contexts"
	"varq/api/models"
	"varq/api/models/constants/chromosome"
	"varq/api/models/dtos"
	errorDtos "varq/api/models/dtos/errors"
	"varq/api/queries"
	variantsService "varq/api/services/variants"
)

// VariantsQuery compiles a filter dict from the request body and runs
// it against the variant store.
func VariantsQuery(c echo.Context) error {
	vc := c.(*contexts.VarqContext)

	dict, bindErr := bindFilterDict(c)
	if bindErr != nil {
		return c.JSON(http.StatusBadRequest, errorDtos.CreateSimpleBadRequest("Malformed filter body! Check your input"))
	}

	results, rendered, warnings, err := vc.VariantService.Query(
		c.Request().Context(), dict, c.QueryParam("institute"))
	if err != nil {
		return respondCriterionError(c, err)
	}

	if results == nil {
		results = []models.Variant{}
	}

	return c.JSON(http.StatusOK, dtos.VariantQueryResponse{
		Status:   http.StatusOK,
		Message:  "Success",
		Warnings: warnings,
		Query:    rendered,
		Results:  results,
	})
}

// VariantsCompile returns the composed store query for a filter dict
// without executing it.
func VariantsCompile(c echo.Context) error {
	vc := c.(*contexts.VarqContext)

	dict, bindErr := bindFilterDict(c)
	if bindErr != nil {
		return c.JSON(http.StatusBadRequest, errorDtos.CreateSimpleBadRequest("Malformed filter body! Check your input"))
	}

	rendered, warnings, err := vc.VariantService.BuildQuery(
		c.Request().Context(), dict, c.QueryParam("institute"))
	if err != nil {
		return respondCriterionError(c, err)
	}

	return c.JSON(http.StatusOK, dtos.VariantCompileResponse{
		Status:   http.StatusOK,
		Message:  "Success",
		Warnings: warnings,
		Query:    rendered,
	})
}

// VariantsOverlapping lists the same-case DNA and WTS companions of a
// single variant document.
func VariantsOverlapping(c echo.Context) error {
	vc := c.(*contexts.VarqContext)

	documentId := c.Param("documentId")
	if len(documentId) == 0 {
		return c.JSON(http.StatusBadRequest, errorDtos.CreateSimpleBadRequest("Missing 'documentId' path parameter!"))
	}

	overlaps, err := vc.VariantService.Overlapping(c.Request().Context(), documentId)
	if err != nil {
		if variantsService.IsMissingDocument(err) {
			return c.JSON(http.StatusNotFound, errorDtos.CreateSimpleNotFound("No variant document with that id!"))
		}
		return c.JSON(http.StatusInternalServerError,
			errorDtos.CreateSimpleInternalServerError("Something went wrong. Please contact the administrator!"))
	}

	return c.JSON(http.StatusOK, dtos.VariantOverlapResponse{
		Status:      http.StatusOK,
		Message:     "Success",
		DnaVariants: overlaps.DnaVariants,
		WtsVariants: overlaps.WtsVariants,
	})
}

func bindFilterDict(c echo.Context) (map[string]interface{}, error) {
	dict := map[string]interface{}{}
	if err := c.Bind(&dict); err != nil {
		return nil, err
	}
	return dict, nil
}

// respondCriterionError maps compiler error kinds onto HTTP statuses ;
// anything unexpected stays an opaque 500.
func respondCriterionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, queries.ErrInvalidValue),
		errors.Is(err, queries.ErrConflictingCriteria),
		errors.Is(err, chromosome.ErrUnknownChromosome):
		return c.JSON(http.StatusBadRequest, errorDtos.CreateSimpleBadRequest(err.Error()))

	case errors.Is(err, queries.ErrResolverTimeout):
		return c.JSON(http.StatusGatewayTimeout, errorDtos.CreateSimpleInternalServerError(err.Error()))

	default:
		return c.JSON(http.StatusInternalServerError,
			errorDtos.CreateSimpleInternalServerError("Something went wrong. Please contact the administrator!"))
	}
}

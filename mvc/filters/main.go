package filtersMvc

import (
	"net/http"

	"github.com/labstack/echo"

	"varq/api/contexts"
	"varq/api/models"
	"varq/api/models/dtos"
	errorDtos "varq/api/models/dtos/errors"
)

// FilterStashCreate saves a named filter dict for later replay.
func FilterStashCreate(c echo.Context) error {
	vc := c.(*contexts.VarqContext)

	var stash models.FilterStash
	if bindErr := c.Bind(&stash); bindErr != nil {
		return c.JSON(http.StatusBadRequest, errorDtos.CreateSimpleBadRequest("Malformed filter stash body! Check your input"))
	}

	if len(stash.InstituteId) == 0 {
		return c.JSON(http.StatusBadRequest, errorDtos.CreateSimpleBadRequest("Missing 'institute_id' in filter stash!"))
	}
	if len(stash.Label) == 0 {
		return c.JSON(http.StatusBadRequest, errorDtos.CreateSimpleBadRequest("Missing 'label' in filter stash!"))
	}
	if len(stash.FilterDict) == 0 {
		return c.JSON(http.StatusBadRequest, errorDtos.CreateSimpleBadRequest("Missing 'filter_dict' in filter stash!"))
	}

	saved, _, err := vc.FilterService.Stash(c.Request().Context(), stash)
	if err != nil {
		// an unparseable dict can never be replayed, reject it up front
		return c.JSON(http.StatusBadRequest, errorDtos.CreateSimpleBadRequest(err.Error()))
	}

	return c.JSON(http.StatusOK, dtos.FilterStashResponse{
		Status:  http.StatusOK,
		Message: "Success",
		Results: []models.FilterStash{*saved},
	})
}

// FilterStashList lists an institute's saved filters, optionally
// narrowed by the 'category' query parameter.
func FilterStashList(c echo.Context) error {
	vc := c.(*contexts.VarqContext)

	stashes, err := vc.FilterService.List(
		c.Request().Context(), c.QueryParam("institute"), c.QueryParam("category"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError,
			errorDtos.CreateSimpleInternalServerError("Something went wrong. Please contact the administrator!"))
	}

	if stashes == nil {
		stashes = []models.FilterStash{}
	}

	return c.JSON(http.StatusOK, dtos.FilterStashResponse{
		Status:  http.StatusOK,
		Message: "Success",
		Results: stashes,
	})
}

func FilterStashGet(c echo.Context) error {
	vc := c.(*contexts.VarqContext)

	stash, err := vc.FilterService.Fetch(c.Request().Context(), c.Param("filterId"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError,
			errorDtos.CreateSimpleInternalServerError("Something went wrong. Please contact the administrator!"))
	}
	if stash == nil {
		return c.JSON(http.StatusNotFound, errorDtos.CreateSimpleNotFound("No saved filter with that id!"))
	}

	return c.JSON(http.StatusOK, dtos.FilterStashResponse{
		Status:  http.StatusOK,
		Message: "Success",
		Results: []models.FilterStash{*stash},
	})
}

func FilterStashDelete(c echo.Context) error {
	vc := c.(*contexts.VarqContext)

	removed, err := vc.FilterService.Remove(c.Request().Context(), c.Param("filterId"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError,
			errorDtos.CreateSimpleInternalServerError("Something went wrong. Please contact the administrator!"))
	}
	if !removed {
		return c.JSON(http.StatusNotFound, errorDtos.CreateSimpleNotFound("No saved filter with that id!"))
	}

	return c.JSON(http.StatusOK, dtos.FilterStashResponse{
		Status:  http.StatusOK,
		Message: "Success",
		Results: []models.FilterStash{},
	})
}

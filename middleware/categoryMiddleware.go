package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo"

	"varq/api/models/constants/category"
)

/*
	Echo middleware to verify the optional `category` HTTP query parameter,
	when present, names a known variant category
*/
func ValidateOptionalCategoryAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		categoryQP := c.QueryParam("category")
		if len(categoryQP) == 0 {
			// no category is fine, downstream treats it as 'all'
			return next(c)
		}

		if category.CastToCategory(categoryQP) == category.Unknown {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Unknown 'category' query parameter %q!", categoryQP))
		}

		return next(c)
	}
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo"
)

/*
	Echo middleware to ensure an `institute` HTTP query parameter was provided
*/
func MandateInstituteAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// check for institute query parameter
		instituteQP := c.QueryParam("institute")
		if len(instituteQP) == 0 {
			// if no institute was provided return an error
			return echo.NewHTTPError(http.StatusBadRequest, "Missing 'institute' query parameter!")
		}

		return next(c)
	}
}

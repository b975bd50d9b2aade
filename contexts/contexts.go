package contexts

import (
	"github.com/labstack/echo"

	"varq/api/models"
	filtersService "varq/api/services/filters"
	variantsService "varq/api/services/variants"
)

type (
	// "Helper" Context to pass into routes that need
	//  the service singletons and other variables
	VarqContext struct {
		echo.Context
		Config         *models.Config
		VariantService *variantsService.VariantService
		FilterService  *filtersService.FilterService
	}
)

package contexts

import (
	"mime/multipart"

	"github.com/labstack/echo"

	"snpscope/console/models"
	"snpscope/console/services/simulation"
)

type (
	// "Helper" Context to pass into routes that need
	//  the configuration, service singletons and request
	//  attributes prepared by middleware
	ConsoleContext struct {
		echo.Context
		Config            *models.Config
		SimulationService *simulation.SimulationService

		Variant    *models.VariantRequest
		UploadFile *multipart.FileHeader
	}
)

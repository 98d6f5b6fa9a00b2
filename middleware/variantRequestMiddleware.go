package middleware

import (
	"net/http"

	"github.com/labstack/echo"

	"snpscope/console/contexts"
	"snpscope/console/models/dtos"
	"snpscope/console/models/dtos/errors"
	"snpscope/console/services/sanitation"
)

/*
Echo middleware to mandate a well-formed single-variant JSON body on the request
*/
func MandateVariantRequestBody(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cc := c.(*contexts.ConsoleContext)

		var requestDto dtos.SingleVariantRequestDto
		if bindErr := c.Bind(&requestDto); bindErr != nil {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("Missing or unreadable variant request body!"))
		}

		variant, normalizeErr := sanitation.NormalizeVariant(requestDto.Gene, requestDto.CdnaChange, requestDto.ProteinChange)
		if normalizeErr != nil {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(normalizeErr.Error()))
		}

		cc.Variant = variant
		return next(cc)
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo"

	"snpscope/console/contexts"
	"snpscope/console/models/dtos/errors"
	"snpscope/console/utils"
)

var acceptedUploadExtensions = []string{".vcf", ".txt"}

/*
Echo middleware to mandate a `file` multipart form field carrying
a variant file within the configured size cap
*/
func MandateUploadFileAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cc := c.(*contexts.ConsoleContext)

		fileHeader, formErr := c.FormFile("file")
		if formErr != nil {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("Missing 'file' form field!"))
		}

		if !utils.StringInSlice(strings.ToLower(filepath.Ext(fileHeader.Filename)), acceptedUploadExtensions) {
			return c.JSON(http.StatusBadRequest,
				errors.CreateSimpleBadRequest(fmt.Sprintf("Expected a variant file upload, got '%s'!", fileHeader.Filename)))
		}

		maxBytes := cc.Config.Console.MaxUploadBytes
		if fileHeader.Size > maxBytes {
			return c.JSON(http.StatusRequestEntityTooLarge,
				errors.CreateSimpleRequestEntityTooLarge(fmt.Sprintf("File exceeds the %d byte cap!", maxBytes)))
		}

		cc.UploadFile = fileHeader
		return next(cc)
	}
}

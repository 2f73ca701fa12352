package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"calmicasa-api/pkg/validator"
)

const uploadFormField = "file"

// AssetUploader stores one blob and returns its public address.
type AssetUploader interface {
	Upload(ctx context.Context, body io.ReadSeeker, originalName, contentType string) (string, error)
}

type UploadHandler struct {
	assets AssetUploader
}

func NewUploadHandler(assets AssetUploader) *UploadHandler {
	return &UploadHandler{assets: assets}
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Upload accepts a single file from a multipart body and stores it in the
// asset bucket. The returned address is what admin clients write into a
// resource's image fields.
func (h *UploadHandler) Upload(c echo.Context) error {
	file, err := c.FormFile(uploadFormField)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgNoFileProvided)
	}

	if err := validator.FileName(file.Filename); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	src, err := file.Open()
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgOpenFileFail)
	}
	defer src.Close()

	url, err := h.assets.Upload(c.Request().Context(), src, file.Filename, file.Header.Get(echo.HeaderContentType))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, UploadResponse{Success: true, URL: url, Filename: file.Filename})
}

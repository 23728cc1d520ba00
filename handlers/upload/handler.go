package upload

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subratpandeyy/The-Wedding-Shades/media"
	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

type Uploader interface {
	Upload(ctx context.Context, file io.Reader, mimeType string, size int64) (*media.Upload, error)
	MaxBytes() int64
}

type Handler struct {
	images Uploader
}

func New(images Uploader) *Handler {
	return &Handler{images: images}
}

// UploadImage stores a single image on the media host
// @Summary Upload an image
// @Description Upload one image (JPEG, PNG, GIF or WebP) to the media host and return its public URL
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Security BearerAuth
// @Success 201 {object} media.Upload
// @Failure 400 {object} utils.ErrorResponse "error: No file uploaded"
// @Failure 413 {object} utils.ErrorResponse "error: File too large"
// @Failure 500 {object} utils.ErrorResponse "error: Failed to upload image"
// @Router /upload [post]
func (h *Handler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		switch {
		case utils.IsBodyTooLarge(err):
			utils.SendAppError(c, media.FileTooLarge(h.images.MaxBytes()), "Failed to upload image")
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			utils.SendError(c, http.StatusBadRequest, "No file uploaded")
		default:
			utils.SendError(c, http.StatusBadRequest, "Invalid upload body")
		}
		return
	}

	file, err := fh.Open()
	if err != nil {
		utils.SendAppError(c, utils.NewInternalError("Failed to read upload", err), "Failed to upload image")
		return
	}
	defer file.Close()

	uploaded, err := h.images.Upload(c.Request.Context(), file, fh.Header.Get("Content-Type"), fh.Size)
	if err != nil {
		utils.SendAppError(c, err, "Failed to upload image")
		return
	}

	utils.LogInfo("Uploaded image " + uploaded.PublicID)
	c.JSON(http.StatusCreated, uploaded)
}

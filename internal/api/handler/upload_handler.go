package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/echallan/enforcement-platform/internal/core/ports"
	"github.com/echallan/enforcement-platform/internal/infrastructure/storage"
)

// UploadHandler ingests raw evidence images from edge devices.
type UploadHandler struct {
	store   storage.EvidenceStore
	service ports.ViolationService
}

func NewUploadHandler(store storage.EvidenceStore, service ports.ViolationService) *UploadHandler {
	return &UploadHandler{store: store, service: service}
}

type uploadResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Receive handles POST /api/upload — a multipart image is stored and a
// pending violation is opened for it.
func (h *UploadHandler) Receive(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No image part")
	}
	if fh.Filename == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "No selected file")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid file upload")
	}
	defer src.Close()

	// Prefix with a UUID so concurrent devices never collide on filename.
	name := uuid.NewString() + "_" + fh.Filename
	path, err := h.store.Save(c.Request().Context(), name, src)
	if err != nil {
		return err
	}

	violation, err := h.service.RecordUpload(c.Request().Context(), ports.EvidenceUploadInput{
		ImagePath: path,
		CameraID:  c.FormValue("camera_id"),
		Location:  c.FormValue("location"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, uploadResponse{
		Message: "File uploaded successfully",
		ID:      violation.ID,
	})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vibely/internal/usecase"
	"vibely/pkg/errors"
	"vibely/pkg/response"
)

type MediaHandler struct {
	mediaUseCase *usecase.MediaUseCase
}

func NewMediaHandler(mediaUseCase *usecase.MediaUseCase) *MediaHandler {
	return &MediaHandler{
		mediaUseCase: mediaUseCase,
	}
}

type deleteMediaRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// Upload stores a blob and returns its public locator. Clients upload
// first, then reference the locator from a message or record.
func (h *MediaHandler) Upload(c echo.Context) error {
	userID := c.Get("uid").(string)

	file, err := c.FormFile("media")
	if err != nil {
		return response.Error(c, errors.Validation("Media file is required", err))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, err)
	}
	defer src.Close()

	url, err := h.mediaUseCase.Upload(
		c.Request().Context(),
		userID,
		c.FormValue("purpose"),
		file.Header.Get("Content-Type"),
		src,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{"url": url})
}

func (h *MediaHandler) Delete(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req deleteMediaRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.mediaUseCase.Delete(c.Request().Context(), userID, req.URL); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}

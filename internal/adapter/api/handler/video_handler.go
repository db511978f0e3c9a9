package handler

import (
	"github.com/labstack/echo/v4"

	"vibely/internal/usecase"
	"vibely/pkg/errors"
	"vibely/pkg/response"
	"vibely/pkg/utils"
)

type VideoHandler struct {
	videoUseCase *usecase.VideoUseCase
}

func NewVideoHandler(videoUseCase *usecase.VideoUseCase) *VideoHandler {
	return &VideoHandler{
		videoUseCase: videoUseCase,
	}
}

func (h *VideoHandler) CreateVideo(c echo.Context) error {
	userID := c.Get("uid").(string)

	file, err := c.FormFile("media")
	if err != nil {
		return response.Error(c, errors.Validation("Video media is required", err))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, err)
	}
	defer src.Close()

	video, err := h.videoUseCase.CreateVideo(c.Request().Context(), userID, usecase.CreateVideoInput{
		Title:     c.FormValue("title"),
		Media:     src,
		MediaType: file.Header.Get("Content-Type"),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, video)
}

func (h *VideoHandler) ListVideos(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	videos, total, err := h.videoUseCase.ListVideos(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, videos, total, params.PageSize, params.Offset)
}

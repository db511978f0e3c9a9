package handler

import (
	"github.com/labstack/echo/v4"

	"vibely/internal/usecase"
	"vibely/pkg/errors"
	"vibely/pkg/response"
)

type StoryHandler struct {
	storyUseCase *usecase.StoryUseCase
}

func NewStoryHandler(storyUseCase *usecase.StoryUseCase) *StoryHandler {
	return &StoryHandler{
		storyUseCase: storyUseCase,
	}
}

// CreateStory accepts multipart form data; the media file is required.
func (h *StoryHandler) CreateStory(c echo.Context) error {
	userID := c.Get("uid").(string)

	file, err := c.FormFile("media")
	if err != nil {
		return response.Error(c, errors.Validation("Story media is required", err))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, err)
	}
	defer src.Close()

	story, err := h.storyUseCase.CreateStory(c.Request().Context(), userID, usecase.CreateStoryInput{
		Caption:   c.FormValue("caption"),
		Media:     src,
		MediaType: file.Header.Get("Content-Type"),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, story)
}

// ListActive returns every story still inside the visibility window.
func (h *StoryHandler) ListActive(c echo.Context) error {
	stories, err := h.storyUseCase.ListActive(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, stories)
}

func (h *StoryHandler) ListByUser(c echo.Context) error {
	stories, err := h.storyUseCase.ListByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, stories)
}

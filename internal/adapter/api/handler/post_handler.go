package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vibely/internal/usecase"
	"vibely/pkg/response"
	"vibely/pkg/utils"
)

type PostHandler struct {
	postUseCase *usecase.PostUseCase
}

func NewPostHandler(postUseCase *usecase.PostUseCase) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
	}
}

type updatePostRequest struct {
	Content string `json:"content" validate:"required"`
}

type addCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type repostRequest struct {
	Comment string `json:"comment"`
}

// CreatePost accepts multipart form data so image and video posts can carry
// their media in the same request.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := c.Get("uid").(string)

	input := usecase.CreatePostInput{
		Content: c.FormValue("content"),
		Kind:    c.FormValue("kind"),
	}

	if file, err := c.FormFile("media"); err == nil {
		src, err := file.Open()
		if err != nil {
			return response.Error(c, err)
		}
		defer src.Close()

		input.Media = src
		input.MediaType = file.Header.Get("Content-Type")
	}

	post, err := h.postUseCase.CreatePost(c.Request().Context(), userID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, post)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postUseCase.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, post)
}

func (h *PostHandler) ListFeed(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	posts, total, err := h.postUseCase.ListFeed(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, posts, total, params.PageSize, params.Offset)
}

func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	post, err := h.postUseCase.UpdatePost(c.Request().Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, post)
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.postUseCase.DeletePost(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *PostHandler) LikePost(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.postUseCase.LikePost(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Post liked"})
}

// RepostPost publishes a quote of the post; the comment is optional.
func (h *PostHandler) RepostPost(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req repostRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	repost, err := h.postUseCase.CreateRepost(c.Request().Context(), userID, c.Param("id"), req.Comment)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, repost)
}

func (h *PostHandler) AddComment(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	comment, err := h.postUseCase.AddComment(c.Request().Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, comment)
}

func (h *PostHandler) ListComments(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	comments, total, err := h.postUseCase.ListComments(c.Request().Context(), c.Param("id"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, comments, total, params.PageSize, params.Offset)
}

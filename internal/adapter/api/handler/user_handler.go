package handler

import (
	"github.com/labstack/echo/v4"

	"vibely/internal/usecase"
	"vibely/pkg/response"
	"vibely/pkg/utils"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetMe(c echo.Context) error {
	userID := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userUseCase.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

// UpdateMe accepts multipart form data so the avatar can ride along with
// the text fields.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID := c.Get("uid").(string)

	input := usecase.UpdateProfileInput{
		Username: c.FormValue("username"),
		Bio:      c.FormValue("bio"),
	}

	if file, err := c.FormFile("avatar"); err == nil {
		src, err := file.Open()
		if err != nil {
			return response.Error(c, err)
		}
		defer src.Close()

		input.Avatar = src
		input.AvatarType = file.Header.Get("Content-Type")
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), userID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userUseCase.ListUsers(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, users, total, params.PageSize, params.Offset)
}

package handler

import (
	"github.com/labstack/echo/v4"

	"vibely/internal/usecase"
	"vibely/pkg/response"
	"vibely/pkg/utils"
)

type CallHandler struct {
	callUseCase *usecase.CallUseCase
}

func NewCallHandler(callUseCase *usecase.CallUseCase) *CallHandler {
	return &CallHandler{
		callUseCase: callUseCase,
	}
}

type placeCallRequest struct {
	CalleeID string `json:"callee_id" validate:"required"`
	Kind     string `json:"kind" validate:"required,oneof=voice video"`
}

type endCallRequest struct {
	Status string `json:"status" validate:"required,oneof=completed missed declined"`
}

func (h *CallHandler) PlaceCall(c echo.Context) error {
	var req placeCallRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	call, err := h.callUseCase.PlaceCall(c.Request().Context(), userID, usecase.PlaceCallInput{
		CalleeID: req.CalleeID,
		Kind:     req.Kind,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, call)
}

func (h *CallHandler) EndCall(c echo.Context) error {
	var req endCallRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	call, err := h.callUseCase.EndCall(c.Request().Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, call)
}

func (h *CallHandler) ListCalls(c echo.Context) error {
	userID := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	calls, total, err := h.callUseCase.ListCalls(c.Request().Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, calls, total, params.PageSize, params.Offset)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripboard/internal/presenter"
	"tripboard/internal/response"
	"tripboard/internal/store"
	"tripboard/internal/view"
)

// writeError переводит ошибку ядра в ответ API.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "POINT_NOT_FOUND",
			Message: "Точка маршрута не найдена",
			Details: err.Error(),
		})
	case errors.Is(err, view.ErrInvalidPoint):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
	case errors.Is(err, presenter.ErrSortDisabled), errors.Is(err, presenter.ErrUnknownSort):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SORT",
			Message: "Недопустимый тип сортировки",
			Details: err.Error(),
		})
	case errors.Is(err, presenter.ErrUnknownFilter):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_FILTER",
			Message: "Недопустимый фильтр",
			Details: err.Error(),
		})
	case errors.Is(err, presenter.ErrNotEditing), errors.Is(err, presenter.ErrEditing),
		errors.Is(err, presenter.ErrNoCreation), errors.Is(err, presenter.ErrNotMounted):
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Code:    "INVALID_STATE",
			Message: "Действие недоступно в текущем состоянии",
			Details: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Внутренняя ошибка",
			Details: err.Error(),
		})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: "Ошибка валидации данных",
		Details: err.Error(),
	})
}

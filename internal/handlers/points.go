package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripboard/internal/presenter"
	"tripboard/internal/response"
	"tripboard/internal/store"
	"tripboard/internal/view"
)

// withPresenter находит презентер точки из пути и выполняет над ним действие.
func (s *Session) withPresenter(c *gin.Context, action func(p *presenter.ItemPresenter) error) {
	id := c.Param("id")
	s.Do(func(board *presenter.Board, _ *store.Store) {
		p, ok := board.Presenter(id)
		if !ok {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "POINT_NOT_FOUND",
				Message: "Точка маршрута не найдена",
				Details: id,
			})
			return
		}
		if err := action(p); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, boardState(board))
	})
}

// EditPointHandler открывает форму редактирования
// @Summary		Редактирование точки
// @Description	Открывает форму; остальные формы закрываются без сохранения
// @Tags			points
// @Produce		json
// @Param			id	path		string	true	"ID точки"
// @Security		BearerAuth
// @Success		200	{object}	BoardResponse
// @Failure		404	{object}	response.ErrorResponse	"Точка не найдена (POINT_NOT_FOUND)"
// @Router			/api/points/{id}/edit [post]
func (s *Session) EditPointHandler(c *gin.Context) {
	s.withPresenter(c, func(p *presenter.ItemPresenter) error {
		return p.Edit()
	})
}

// ToggleFavoriteHandler переключает флаг избранного
// @Summary		Избранное
// @Tags			points
// @Produce		json
// @Param			id	path		string	true	"ID точки"
// @Security		BearerAuth
// @Success		200	{object}	BoardResponse
// @Failure		404	{object}	response.ErrorResponse	"Точка не найдена (POINT_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Точка редактируется (INVALID_STATE)"
// @Router			/api/points/{id}/favorite [post]
func (s *Session) ToggleFavoriteHandler(c *gin.Context) {
	s.withPresenter(c, func(p *presenter.ItemPresenter) error {
		return p.ToggleFavorite()
	})
}

// UpdateDraftHandler меняет черновик формы редактирования
// @Summary		Черновик точки
// @Tags			points
// @Accept			json
// @Produce		json
// @Param			id		path		string		true	"ID точки"
// @Param			draft	body		view.Form	true	"Изменённые поля"
// @Security		BearerAuth
// @Success		200	{object}	BoardResponse
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		409	{object}	response.ErrorResponse	"Форма не открыта (INVALID_STATE)"
// @Router			/api/points/{id}/draft [patch]
func (s *Session) UpdateDraftHandler(c *gin.Context) {
	var form view.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		bindError(c, err)
		return
	}
	s.withPresenter(c, func(p *presenter.ItemPresenter) error {
		return p.ApplyDraft(form)
	})
}

// SubmitPointHandler сохраняет черновик
// @Summary		Сохранение точки
// @Tags			points
// @Produce		json
// @Param			id	path		string	true	"ID точки"
// @Security		BearerAuth
// @Success		200	{object}	BoardResponse
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Точка не найдена (POINT_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Форма не открыта (INVALID_STATE)"
// @Router			/api/points/{id}/submit [post]
func (s *Session) SubmitPointHandler(c *gin.Context) {
	s.withPresenter(c, func(p *presenter.ItemPresenter) error {
		return p.Submit()
	})
}

// CancelEditHandler закрывает форму без сохранения
// @Summary		Отмена редактирования
// @Tags			points
// @Produce		json
// @Param			id	path		string	true	"ID точки"
// @Security		BearerAuth
// @Success		200	{object}	BoardResponse
// @Failure		409	{object}	response.ErrorResponse	"Форма не открыта (INVALID_STATE)"
// @Router			/api/points/{id}/cancel [post]
func (s *Session) CancelEditHandler(c *gin.Context) {
	s.withPresenter(c, func(p *presenter.ItemPresenter) error {
		return p.Cancel()
	})
}

// DeletePointHandler удаляет точку из открытой формы
// @Summary		Удаление точки
// @Tags			points
// @Produce		json
// @Param			id	path		string	true	"ID точки"
// @Security		BearerAuth
// @Success		200	{object}	BoardResponse
// @Failure		404	{object}	response.ErrorResponse	"Точка не найдена (POINT_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Форма не открыта (INVALID_STATE)"
// @Router			/api/points/{id}/delete [post]
func (s *Session) DeletePointHandler(c *gin.Context) {
	s.withPresenter(c, func(p *presenter.ItemPresenter) error {
		return p.Delete()
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripboard/internal/presenter"
	"tripboard/internal/store"
	"tripboard/internal/view"
)

// NewPointHandler открывает форму новой точки
// @Summary		Новая точка
// @Description	Повторный вызов при открытой форме ничего не меняет
// @Tags			points
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	BoardResponse
// @Router			/api/points/new [post]
func (s *Session) NewPointHandler(c *gin.Context) {
	s.Do(func(board *presenter.Board, _ *store.Store) {
		board.CreatePoint()
		c.JSON(http.StatusOK, boardState(board))
	})
}

// UpdateNewDraftHandler меняет черновик новой точки
// @Summary		Черновик новой точки
// @Tags			points
// @Accept			json
// @Produce		json
// @Param			draft	body		view.Form	true	"Изменённые поля"
// @Security		BearerAuth
// @Success		200	{object}	BoardResponse
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		409	{object}	response.ErrorResponse	"Форма не открыта (INVALID_STATE)"
// @Router			/api/points/new/draft [patch]
func (s *Session) UpdateNewDraftHandler(c *gin.Context) {
	var form view.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		bindError(c, err)
		return
	}
	s.withCreation(c, http.StatusOK, func(p *presenter.CreationPresenter) error {
		return p.ApplyDraft(form)
	})
}

// SubmitNewPointHandler добавляет новую точку
// @Summary		Сохранение новой точки
// @Tags			points
// @Produce		json
// @Security		BearerAuth
// @Success		201	{object}	BoardResponse
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		409	{object}	response.ErrorResponse	"Форма не открыта (INVALID_STATE)"
// @Router			/api/points/new/submit [post]
func (s *Session) SubmitNewPointHandler(c *gin.Context) {
	s.withCreation(c, http.StatusCreated, func(p *presenter.CreationPresenter) error {
		return p.Submit()
	})
}

// CancelNewPointHandler закрывает форму новой точки
// @Summary		Отмена новой точки
// @Tags			points
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	BoardResponse
// @Failure		409	{object}	response.ErrorResponse	"Форма не открыта (INVALID_STATE)"
// @Router			/api/points/new/cancel [post]
func (s *Session) CancelNewPointHandler(c *gin.Context) {
	s.withCreation(c, http.StatusOK, func(p *presenter.CreationPresenter) error {
		return p.Cancel()
	})
}

func (s *Session) withCreation(c *gin.Context, status int, action func(p *presenter.CreationPresenter) error) {
	s.Do(func(board *presenter.Board, _ *store.Store) {
		if err := action(board.Creation()); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(status, boardState(board))
	})
}

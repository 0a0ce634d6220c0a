package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripboard/internal/models"
	"tripboard/internal/presenter"
	"tripboard/internal/store"
)

type BoardItem struct {
	ID    string                   `json:"id"`
	Mode  string                   `json:"mode"`
	Point models.PointWithDetails  `json:"point"`
	Draft *models.PointWithDetails `json:"draft,omitempty"`
}

// BoardResponse представляет состояние доски после хода
type BoardResponse struct {
	Sort     presenter.SortType       `json:"sort"`
	Filter   presenter.FilterType     `json:"filter"`
	Editing  string                   `json:"editing,omitempty"`
	Creating bool                     `json:"creating"`
	NewPoint *models.PointWithDetails `json:"new_point,omitempty"`
	Items    []BoardItem              `json:"items"`
	Rendered string                   `json:"rendered"`
}

func boardState(board *presenter.Board) BoardResponse {
	state := BoardResponse{
		Sort:     board.Sort(),
		Filter:   board.Filter(),
		Items:    []BoardItem{},
		Rendered: board.Render(),
	}
	if id, ok := board.Editing(); ok {
		state.Editing = id
	}
	if creation := board.Creation(); creation.Active() {
		draft := creation.Editor().Draft()
		state.Creating = true
		state.NewPoint = &draft
	}
	for _, p := range board.Presenters() {
		item := BoardItem{ID: p.ID(), Mode: p.Mode().String(), Point: p.Point()}
		if p.Mode() == presenter.ModeEditing {
			draft := p.Editor().Draft()
			item.Draft = &draft
		}
		state.Items = append(state.Items, item)
	}
	return state
}

// GetBoardHandler возвращает состояние доски
// @Summary		Состояние доски
// @Description	Режимы элементов, черновики форм и текстовое представление списка
// @Tags			board
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	BoardResponse
// @Router			/api/board [get]
func (s *Session) GetBoardHandler(c *gin.Context) {
	s.Do(func(board *presenter.Board, _ *store.Store) {
		c.JSON(http.StatusOK, boardState(board))
	})
}

type SortRequest struct {
	Sort presenter.SortType `json:"sort" binding:"required"`
}

// SetSortHandler меняет сортировку списка
// @Summary		Сортировка списка
// @Tags			board
// @Accept			json
// @Produce		json
// @Param			sort	body		SortRequest	true	"Тип сортировки: day, time, price"
// @Security		BearerAuth
// @Success		200	{object}	BoardResponse
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_SORT)"
// @Router			/api/board/sort [put]
func (s *Session) SetSortHandler(c *gin.Context) {
	var req SortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	s.Do(func(board *presenter.Board, _ *store.Store) {
		if err := board.SetSort(req.Sort); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, boardState(board))
	})
}

type FilterRequest struct {
	Filter presenter.FilterType `json:"filter" binding:"required"`
}

// SetFilterHandler меняет фильтр списка
// @Summary		Фильтр списка
// @Tags			board
// @Accept			json
// @Produce		json
// @Param			filter	body		FilterRequest	true	"Фильтр: everything, future, present, past"
// @Security		BearerAuth
// @Success		200	{object}	BoardResponse
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_FILTER)"
// @Router			/api/board/filter [put]
func (s *Session) SetFilterHandler(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	s.Do(func(board *presenter.Board, _ *store.Store) {
		if err := board.SetFilter(req.Filter); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, boardState(board))
	})
}

// ReloadHandler перечитывает источник данных
// @Summary		Перезагрузка доски
// @Tags			board
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	BoardResponse
// @Router			/api/board/reload [post]
func (s *Session) ReloadHandler(c *gin.Context) {
	s.Do(func(board *presenter.Board, _ *store.Store) {
		board.Reload(c.Request.Context())
		c.JSON(http.StatusOK, boardState(board))
	})
}

type KeyRequest struct {
	Key string `json:"key" binding:"required"`
}

type KeyResponse struct {
	Prevented bool          `json:"prevented"`
	Board     BoardResponse `json:"board"`
}

// PressKeyHandler доставляет нажатие клавиши слушателям доски
// @Summary		Нажатие клавиши
// @Description	Escape закрывает открытую форму без сохранения
// @Tags			board
// @Accept			json
// @Produce		json
// @Param			key	body		KeyRequest	true	"Клавиша"
// @Security		BearerAuth
// @Success		200	{object}	KeyResponse
// @Router			/api/keys [post]
func (s *Session) PressKeyHandler(c *gin.Context) {
	var req KeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	s.Do(func(board *presenter.Board, _ *store.Store) {
		prevented := board.Keys().Dispatch(req.Key)
		c.JSON(http.StatusOK, KeyResponse{Prevented: prevented, Board: boardState(board)})
	})
}

package handlers

import (
	"sync"

	"github.com/gin-gonic/gin"

	"tripboard/internal/presenter"
	"tripboard/internal/store"
)

// Session хранит доску, к которой обращаются HTTP-запросы.
// Ядро однопоточное, поэтому каждый запрос выполняется под mu целиком,
// как один ход цикла событий.
type Session struct {
	mu    sync.Mutex
	board *presenter.Board
	store *store.Store
}

func NewSession(board *presenter.Board, st *store.Store) *Session {
	return &Session{board: board, store: st}
}

// Do выполняет fn как один ход цикла событий.
func (s *Session) Do(fn func(board *presenter.Board, st *store.Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.board, s.store)
}

// Register подключает маршруты доски к группе.
func (s *Session) Register(r gin.IRoutes) {
	r.GET("/points", s.GetPointsHandler)
	r.GET("/destinations", s.GetDestinationsHandler)
	r.GET("/offers", s.GetOffersHandler)
	r.GET("/trip", s.GetTripInfoHandler)

	r.GET("/board", s.GetBoardHandler)
	r.PUT("/board/sort", s.SetSortHandler)
	r.PUT("/board/filter", s.SetFilterHandler)
	r.POST("/board/reload", s.ReloadHandler)
	r.POST("/keys", s.PressKeyHandler)

	r.POST("/points/new", s.NewPointHandler)
	r.PATCH("/points/new/draft", s.UpdateNewDraftHandler)
	r.POST("/points/new/submit", s.SubmitNewPointHandler)
	r.POST("/points/new/cancel", s.CancelNewPointHandler)

	r.POST("/points/:id/edit", s.EditPointHandler)
	r.POST("/points/:id/favorite", s.ToggleFavoriteHandler)
	r.PATCH("/points/:id/draft", s.UpdateDraftHandler)
	r.POST("/points/:id/submit", s.SubmitPointHandler)
	r.POST("/points/:id/cancel", s.CancelEditHandler)
	r.POST("/points/:id/delete", s.DeletePointHandler)
}

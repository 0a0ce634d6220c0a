package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripboard/internal/presenter"
	"tripboard/internal/store"
)

// GetPointsHandler возвращает проекцию точек маршрута
// @Summary		Точки маршрута
// @Description	Точки с пунктами назначения и предложениями в порядке хранилища
// @Tags			points
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}	models.PointWithDetails
// @Router			/api/points [get]
func (s *Session) GetPointsHandler(c *gin.Context) {
	s.Do(func(_ *presenter.Board, st *store.Store) {
		c.JSON(http.StatusOK, st.Projection())
	})
}

// GetDestinationsHandler возвращает пункты назначения
// @Summary		Пункты назначения
// @Tags			reference
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}	models.Destination
// @Router			/api/destinations [get]
func (s *Session) GetDestinationsHandler(c *gin.Context) {
	s.Do(func(_ *presenter.Board, st *store.Store) {
		c.JSON(http.StatusOK, st.Destinations())
	})
}

// GetOffersHandler возвращает каталог предложений
// @Summary		Каталог предложений
// @Tags			reference
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}	models.OfferCatalogEntry
// @Router			/api/offers [get]
func (s *Session) GetOffersHandler(c *gin.Context) {
	s.Do(func(_ *presenter.Board, st *store.Store) {
		c.JSON(http.StatusOK, st.OfferCatalog())
	})
}

// GetTripInfoHandler возвращает сводку маршрута
// @Summary		Сводка маршрута
// @Description	Маршрут по городам, даты и полная стоимость
// @Tags			points
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	presenter.TripInfo
// @Router			/api/trip [get]
func (s *Session) GetTripInfoHandler(c *gin.Context) {
	s.Do(func(board *presenter.Board, _ *store.Store) {
		c.JSON(http.StatusOK, board.Info())
	})
}

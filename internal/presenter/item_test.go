package presenter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripboard/internal/keys"
	"tripboard/internal/models"
	"tripboard/internal/view"
)

type staticReference struct{}

func (staticReference) Destinations() []models.Destination { return newFakeSource().destinations }

func (staticReference) OfferCatalog() []models.OfferCatalogEntry { return newFakeSource().offers }

type dataChange struct {
	action     models.UserAction
	updateType models.UpdateType
	point      models.PointWithDetails
}

type itemHarness struct {
	list       *view.ListView
	keys       *keys.Channel
	changes    []dataChange
	modeChange int
	err        error
	presenter  *ItemPresenter
}

func newItemHarness(t *testing.T) *itemHarness {
	t.Helper()
	h := &itemHarness{list: view.NewListView(), keys: keys.NewChannel()}
	h.presenter = NewItemPresenter(ItemConfig{
		Container: h.list,
		Keys:      h.keys,
		Reference: staticReference{},
		OnDataChange: func(action models.UserAction, updateType models.UpdateType, point models.PointWithDetails) error {
			h.changes = append(h.changes, dataChange{action, updateType, point})
			return h.err
		},
		OnModeChange: func() { h.modeChange++ },
	})
	h.presenter.Init(taxiPoint())
	return h
}

func taxiPoint() models.PointWithDetails {
	from := time.Date(2024, 3, 18, 10, 30, 0, 0, time.UTC)
	to := time.Date(2024, 3, 18, 11, 0, 0, 0, time.UTC)
	offers := newFakeSource().offers[0].Offers
	return models.PointWithDetails{
		Point: models.Point{
			ID: "1", Type: models.TypeTaxi, DateFrom: &from, DateTo: &to,
			BasePrice: 20, DestinationID: ptr("d1"), OfferIDs: []string{"t1"},
		},
		Destination: &models.Destination{ID: "d1", Name: "Geneva"},
		TypeOffers:  offers,
		Offers:      []models.Offer{offers[0]},
	}
}

func TestItemInitMountsPointView(t *testing.T) {
	h := newItemHarness(t)
	p := h.presenter

	assert.True(t, p.Mounted())
	assert.Equal(t, ModeViewing, p.Mode())
	assert.Equal(t, "1", p.ID())
	assert.Contains(t, h.list.Element().String(), "taxi Geneva")
	assert.Equal(t, 0, h.keys.Len())
}

func TestItemInitUpdatesInPlace(t *testing.T) {
	h := newItemHarness(t)
	point := taxiPoint()
	point.BasePrice = 75

	h.presenter.Init(point)

	assert.Contains(t, h.list.Element().String(), "€75")
	assert.Len(t, h.list.Element().Children(), 1)
}

func TestItemEditAndCancel(t *testing.T) {
	h := newItemHarness(t)
	p := h.presenter

	require.NoError(t, p.Edit())
	assert.Equal(t, ModeEditing, p.Mode())
	assert.Equal(t, 1, h.modeChange)
	assert.Equal(t, 1, h.keys.Len())
	assert.Contains(t, h.list.Element().String(), "[edit]")

	require.NoError(t, p.Edit())
	assert.Equal(t, 1, h.modeChange, "повторное открытие формы ничего не меняет")

	require.NoError(t, p.ApplyDraft(view.Form{BasePrice: ptr(999.0)}))
	require.NoError(t, p.Cancel())

	assert.Equal(t, ModeViewing, p.Mode())
	assert.Equal(t, 20.0, p.Point().BasePrice)
	assert.Equal(t, 20.0, p.Editor().Draft().BasePrice)
	assert.Equal(t, 0, h.keys.Len())
	assert.Empty(t, h.changes)
}

func TestItemEscapeClosesEditor(t *testing.T) {
	h := newItemHarness(t)
	require.NoError(t, h.presenter.Edit())

	assert.False(t, h.keys.Dispatch("Enter"))
	assert.Equal(t, ModeEditing, h.presenter.Mode())

	assert.True(t, h.keys.Dispatch(keys.Escape))
	assert.Equal(t, ModeViewing, h.presenter.Mode())
	assert.Equal(t, 0, h.keys.Len())
}

func TestItemFavoriteDoesNotChangeLocally(t *testing.T) {
	h := newItemHarness(t)

	require.NoError(t, h.presenter.ToggleFavorite())

	require.Len(t, h.changes, 1)
	assert.Equal(t, models.ActionUpdatePoint, h.changes[0].action)
	assert.Equal(t, models.UpdatePatch, h.changes[0].updateType)
	assert.True(t, h.changes[0].point.IsFavorite)
	assert.False(t, h.presenter.Point().IsFavorite)

	require.NoError(t, h.presenter.Edit())
	assert.ErrorIs(t, h.presenter.ToggleFavorite(), ErrEditing)
}

func TestItemSubmit(t *testing.T) {
	h := newItemHarness(t)
	p := h.presenter
	require.NoError(t, p.Edit())
	require.NoError(t, p.ApplyDraft(view.Form{BasePrice: ptr(55.0), Offers: &[]string{"t2"}}))

	require.NoError(t, p.Submit())

	require.Len(t, h.changes, 1)
	assert.Equal(t, models.UpdateMinor, h.changes[0].updateType)
	assert.Equal(t, 55.0, h.changes[0].point.BasePrice)
	assert.Equal(t, ModeViewing, p.Mode())
	assert.Equal(t, 55.0, p.Point().BasePrice)
	assert.Equal(t, "t2", p.Point().Offers[0].ID)
	assert.Equal(t, 0, h.keys.Len())
}

func TestItemSubmitFailureStaysEditing(t *testing.T) {
	h := newItemHarness(t)
	p := h.presenter
	h.err = errors.New("store rejected")
	require.NoError(t, p.Edit())

	assert.Error(t, p.Submit())
	assert.Equal(t, ModeEditing, p.Mode())
	assert.Equal(t, 1, h.keys.Len())
}

func TestItemSubmitInvalidNeverReachesStore(t *testing.T) {
	h := newItemHarness(t)
	p := h.presenter
	require.NoError(t, p.Edit())
	earlier := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.ApplyDraft(view.Form{DateTo: &earlier}))

	assert.ErrorIs(t, p.Submit(), view.ErrInvalidPoint)
	assert.Empty(t, h.changes)
	assert.Equal(t, ModeEditing, p.Mode())
}

func TestItemActionsRequireEditing(t *testing.T) {
	h := newItemHarness(t)
	p := h.presenter

	assert.ErrorIs(t, p.ApplyDraft(view.Form{}), ErrNotEditing)
	assert.ErrorIs(t, p.Submit(), ErrNotEditing)
	assert.ErrorIs(t, p.Cancel(), ErrNotEditing)
	assert.ErrorIs(t, p.Delete(), ErrNotEditing)
}

func TestItemDelete(t *testing.T) {
	h := newItemHarness(t)
	p := h.presenter
	require.NoError(t, p.Edit())

	require.NoError(t, p.Delete())

	require.Len(t, h.changes, 1)
	assert.Equal(t, models.ActionDeletePoint, h.changes[0].action)
	assert.False(t, p.Mounted())
	assert.Empty(t, h.list.Element().Children())
	assert.Equal(t, 0, h.keys.Len())
}

func TestItemDestroyIdempotent(t *testing.T) {
	h := newItemHarness(t)
	p := h.presenter
	require.NoError(t, p.Edit())

	p.Destroy()
	p.Destroy()

	assert.False(t, p.Mounted())
	assert.Equal(t, 0, h.keys.Len())
	assert.ErrorIs(t, p.Edit(), ErrNotMounted)
	assert.ErrorIs(t, p.ToggleFavorite(), ErrNotMounted)

	p.Init(taxiPoint())
	assert.True(t, p.Mounted())
	assert.Len(t, h.list.Element().Children(), 1)
}

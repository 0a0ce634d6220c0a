package presenter

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripboard/internal/keys"
	"tripboard/internal/models"
	"tripboard/internal/store"
	"tripboard/internal/view"
)

func newTestBoard(t *testing.T, src *fakeSource) (*Board, *store.Store) {
	t.Helper()
	st := store.New(src, nil)
	ids := 0
	board := NewBoard(BoardConfig{
		Store: st,
		Clock: func() time.Time { return now },
		NewID: func() string {
			ids++
			return fmt.Sprintf("new-%d", ids)
		},
	})
	board.Init(context.Background())
	t.Cleanup(board.Destroy)
	return board, st
}

func presenterIDs(board *Board) []string {
	ids := []string{}
	for _, p := range board.Presenters() {
		ids = append(ids, p.ID())
	}
	return ids
}

func mustPresenter(t *testing.T, board *Board, id string) *ItemPresenter {
	t.Helper()
	p, ok := board.Presenter(id)
	require.True(t, ok, "презентер %s", id)
	return p
}

func editingIDs(board *Board) []string {
	ids := []string{}
	for _, p := range board.Presenters() {
		if p.Mode() == ModeEditing {
			ids = append(ids, p.ID())
		}
	}
	return ids
}

func TestBoardInitSortsByDay(t *testing.T) {
	board, st := newTestBoard(t, newFakeSource())

	assert.Equal(t, []string{"1", "2", "3"}, presenterIDs(board))
	assert.Equal(t, "2", st.Points()[0].ID, "хранилище сохраняет порядок источника")
	assert.Equal(t, SortDay, board.Sort())
	assert.Equal(t, FilterEverything, board.Filter())
	assert.NotContains(t, board.Render(), view.EmptyListMessage)
}

func TestBoardSingleEditor(t *testing.T) {
	board, _ := newTestBoard(t, newFakeSource())

	require.NoError(t, mustPresenter(t, board, "1").Edit())
	require.NoError(t, mustPresenter(t, board, "2").Edit())
	require.NoError(t, mustPresenter(t, board, "3").Edit())

	assert.Equal(t, []string{"3"}, editingIDs(board))
	id, ok := board.Editing()
	assert.True(t, ok)
	assert.Equal(t, "3", id)
	assert.Equal(t, 1, board.Keys().Len())
}

func TestBoardSwitchingEditorDiscardsDraft(t *testing.T) {
	board, st := newTestBoard(t, newFakeSource())
	first := mustPresenter(t, board, "1")

	require.NoError(t, first.Edit())
	require.NoError(t, first.ApplyDraft(view.Form{BasePrice: ptr(999.0)}))
	require.NoError(t, mustPresenter(t, board, "2").Edit())

	assert.Equal(t, ModeViewing, first.Mode())
	assert.Equal(t, 20.0, first.Point().BasePrice)
	assert.Equal(t, 20.0, first.Editor().Draft().BasePrice)
	found, _ := st.Find("1")
	assert.Equal(t, 20.0, found.BasePrice)
}

func TestBoardEscapeReleasesListener(t *testing.T) {
	board, _ := newTestBoard(t, newFakeSource())

	require.NoError(t, mustPresenter(t, board, "2").Edit())
	assert.True(t, board.Keys().Dispatch(keys.Escape))

	assert.Empty(t, editingIDs(board))
	assert.Equal(t, 0, board.Keys().Len())
	assert.False(t, board.Keys().Dispatch(keys.Escape))
}

func TestBoardFavoritePatch(t *testing.T) {
	board, st := newTestBoard(t, newFakeSource())
	p := mustPresenter(t, board, "2")

	require.NoError(t, p.ToggleFavorite())

	same := mustPresenter(t, board, "2")
	assert.Same(t, p, same, "PATCH обновляет элемент на месте")
	assert.True(t, p.Point().IsFavorite)
	found, _ := st.Find("2")
	assert.True(t, found.IsFavorite)
	assert.Contains(t, board.Render(), "★")

	require.NoError(t, p.Edit())
	assert.ErrorIs(t, p.ToggleFavorite(), ErrEditing)
}

func TestBoardSubmitEdit(t *testing.T) {
	board, st := newTestBoard(t, newFakeSource())
	p := mustPresenter(t, board, "1")

	require.NoError(t, p.Edit())
	require.NoError(t, p.ApplyDraft(view.Form{BasePrice: ptr(55.0), Destination: ptr("Amsterdam")}))
	require.NoError(t, p.Submit())

	assert.Empty(t, editingIDs(board))
	assert.Equal(t, 0, board.Keys().Len())

	found, ok := st.Find("1")
	require.True(t, ok)
	assert.Equal(t, 55.0, found.BasePrice)
	assert.Equal(t, "Amsterdam", found.Destination.Name)

	fresh := mustPresenter(t, board, "1")
	assert.Equal(t, 55.0, fresh.Point().BasePrice)
	assert.Equal(t, ModeViewing, fresh.Mode())
}

func TestBoardSubmitInvalid(t *testing.T) {
	board, st := newTestBoard(t, newFakeSource())
	p := mustPresenter(t, board, "1")
	before := st.Points()

	require.NoError(t, p.Edit())
	require.NoError(t, p.ApplyDraft(view.Form{BasePrice: ptr(-5.0)}))

	assert.ErrorIs(t, p.Submit(), view.ErrInvalidPoint)
	assert.Equal(t, ModeEditing, p.Mode())
	assert.Equal(t, before, st.Points())
}

func TestBoardDeleteAll(t *testing.T) {
	board, st := newTestBoard(t, newFakeSource())

	for _, id := range []string{"1", "2", "3"} {
		p := mustPresenter(t, board, id)
		require.NoError(t, p.Edit())
		require.NoError(t, p.Delete())
		_, ok := board.Presenter(id)
		assert.False(t, ok)
	}

	assert.Empty(t, st.Points())
	assert.Empty(t, board.Presenters())
	assert.Equal(t, 0, board.Keys().Len())
	assert.Contains(t, board.Render(), view.EmptyListMessage)
}

func TestBoardEmptySource(t *testing.T) {
	src := newFakeSource()
	src.pointsErr = fmt.Errorf("offline")
	board, _ := newTestBoard(t, src)

	assert.Empty(t, board.Presenters())
	assert.Equal(t, view.EmptyListMessage, board.Render())
}

func TestBoardCreatePoint(t *testing.T) {
	board, st := newTestBoard(t, newFakeSource())

	board.CreatePoint()
	board.CreatePoint()

	creation := board.Creation()
	require.True(t, creation.Active())
	assert.Equal(t, 1, board.Keys().Len())
	assert.Len(t, board.container.Children()[0].Children(), 4, "форма и три точки")

	from := time.Date(2024, 3, 19, 9, 0, 0, 0, time.UTC)
	to := from.Add(2 * time.Hour)
	require.NoError(t, creation.ApplyDraft(view.Form{
		Type:        ptr(models.TypeTaxi),
		Destination: ptr("Geneva"),
		DateFrom:    &from,
		DateTo:      &to,
		BasePrice:   ptr(42.0),
		Offers:      &[]string{"t2"},
	}))
	require.NoError(t, creation.Submit())

	assert.False(t, creation.Active())
	assert.Equal(t, 0, board.Keys().Len())

	points := st.Points()
	require.Len(t, points, 4)
	assert.Equal(t, "new-1", points[0].ID, "новая точка встаёт в начало хранилища")
	assert.Equal(t, []string{"t2"}, points[0].OfferIDs)
	assert.Equal(t, []string{"1", "new-1", "2", "3"}, presenterIDs(board))
}

func TestBoardCreatePointInvalid(t *testing.T) {
	board, st := newTestBoard(t, newFakeSource())
	board.CreatePoint()

	assert.ErrorIs(t, board.Creation().Submit(), view.ErrInvalidPoint)
	assert.True(t, board.Creation().Active())
	assert.Len(t, st.Points(), 3)
}

func TestBoardCreationAndEditingExclusive(t *testing.T) {
	board, _ := newTestBoard(t, newFakeSource())
	p := mustPresenter(t, board, "2")

	require.NoError(t, p.Edit())
	board.CreatePoint()
	assert.Equal(t, ModeViewing, p.Mode())
	assert.True(t, board.Creation().Active())
	assert.Equal(t, 1, board.Keys().Len())

	require.NoError(t, p.Edit())
	assert.False(t, board.Creation().Active())
	assert.Equal(t, ModeEditing, p.Mode())
	assert.Equal(t, 1, board.Keys().Len())
}

func TestBoardCreationEscape(t *testing.T) {
	board, _ := newTestBoard(t, newFakeSource())
	board.CreatePoint()

	assert.True(t, board.Keys().Dispatch(keys.Esc))
	assert.False(t, board.Creation().Active())
	assert.Equal(t, 0, board.Keys().Len())
	assert.NotContains(t, board.Render(), "[new]")
}

func TestBoardCreationCancelOnEmptyList(t *testing.T) {
	src := newFakeSource()
	src.points = nil
	board, _ := newTestBoard(t, src)
	require.Contains(t, board.Render(), view.EmptyListMessage)

	board.CreatePoint()
	assert.NotContains(t, board.Render(), view.EmptyListMessage)
	assert.Contains(t, board.Render(), "[new] flight")

	require.NoError(t, board.Creation().Cancel())
	assert.Contains(t, board.Render(), view.EmptyListMessage)
	assert.ErrorIs(t, board.Creation().Cancel(), ErrNoCreation)
	assert.ErrorIs(t, board.Creation().Submit(), ErrNoCreation)
}

func TestBoardCreatePointResetsSortAndFilter(t *testing.T) {
	board, _ := newTestBoard(t, newFakeSource())
	require.NoError(t, board.SetFilter(FilterFuture))
	require.NoError(t, board.SetSort(SortPrice))

	board.CreatePoint()

	assert.Equal(t, SortDay, board.Sort())
	assert.Equal(t, FilterEverything, board.Filter())
	assert.Len(t, board.Presenters(), 3)
}

func TestBoardSort(t *testing.T) {
	board, _ := newTestBoard(t, newFakeSource())

	require.NoError(t, board.SetSort(SortPrice))
	assert.Equal(t, []string{"2", "1", "3"}, presenterIDs(board))

	require.NoError(t, board.SetSort(SortTime))
	assert.Equal(t, []string{"2", "3", "1"}, presenterIDs(board))

	assert.ErrorIs(t, board.SetSort(SortEvent), ErrSortDisabled)
	assert.ErrorIs(t, board.SetSort(SortOffers), ErrSortDisabled)
	assert.ErrorIs(t, board.SetSort("random"), ErrUnknownSort)
	assert.Equal(t, SortTime, board.Sort())
}

func TestBoardFilter(t *testing.T) {
	board, _ := newTestBoard(t, newFakeSource())
	require.NoError(t, board.SetSort(SortPrice))

	require.NoError(t, board.SetFilter(FilterFuture))
	assert.Equal(t, []string{"3"}, presenterIDs(board))
	assert.Equal(t, SortDay, board.Sort(), "смена фильтра сбрасывает сортировку")

	require.NoError(t, board.SetFilter(FilterPresent))
	assert.Equal(t, []string{"2"}, presenterIDs(board))

	require.NoError(t, board.SetFilter(FilterPast))
	assert.Equal(t, []string{"1"}, presenterIDs(board))

	assert.ErrorIs(t, board.SetFilter("later"), ErrUnknownFilter)
}

func TestBoardFilterEmptyShowsMessage(t *testing.T) {
	src := newFakeSource()
	src.points = src.points[:1]
	board, _ := newTestBoard(t, src)

	require.NoError(t, board.SetFilter(FilterPast))
	assert.Empty(t, board.Presenters())
	assert.Contains(t, board.Render(), view.EmptyListMessage)
}

func TestBoardMajorUpdateResetsSort(t *testing.T) {
	board, st := newTestBoard(t, newFakeSource())
	require.NoError(t, board.SetSort(SortPrice))

	st.Notifier().Publish(models.UpdateMajor, nil)

	assert.Equal(t, SortDay, board.Sort())
	assert.Equal(t, []string{"1", "2", "3"}, presenterIDs(board))
}

func TestBoardReload(t *testing.T) {
	src := newFakeSource()
	board, _ := newTestBoard(t, src)
	board.CreatePoint()

	src.points = src.points[:2]
	board.Reload(context.Background())

	assert.False(t, board.Creation().Active())
	assert.Equal(t, []string{"2", "3"}, presenterIDs(board))
	assert.Equal(t, 0, board.Keys().Len())
}

func TestBoardInitTwice(t *testing.T) {
	board, st := newTestBoard(t, newFakeSource())
	first := mustPresenter(t, board, "1")

	board.Init(context.Background())

	assert.Equal(t, []string{"1", "2", "3"}, presenterIDs(board))
	assert.Len(t, board.list.Element().Children(), 3)
	assert.Equal(t, 1, st.Notifier().Len())
	assert.ErrorIs(t, first.Edit(), ErrNotMounted)
	require.NoError(t, mustPresenter(t, board, "1").Edit())
}

func TestBoardFavoriteKeepsUnresolvedReferences(t *testing.T) {
	src := newFakeSource()
	src.points[0].Destination = models.NewRef("ghost")
	src.points[0].Offers = []models.Ref{models.NewRef("lost")}
	board, st := newTestBoard(t, src)

	require.NoError(t, mustPresenter(t, board, "2").ToggleFavorite())

	var point models.Point
	for _, p := range st.Points() {
		if p.ID == "2" {
			point = p
		}
	}
	assert.True(t, point.IsFavorite)
	require.NotNil(t, point.DestinationID)
	assert.Equal(t, "ghost", *point.DestinationID)
	assert.Equal(t, []string{"lost"}, point.OfferIDs)
}

func TestBoardDestroyUnsubscribes(t *testing.T) {
	st := store.New(newFakeSource(), nil)
	board := NewBoard(BoardConfig{Store: st, Clock: func() time.Time { return now }})
	board.Init(context.Background())
	require.Equal(t, 1, st.Notifier().Len())

	require.NoError(t, mustPresenter(t, board, "1").Edit())
	board.Destroy()

	assert.Equal(t, 0, st.Notifier().Len())
	assert.Equal(t, 0, board.Keys().Len())
	assert.Empty(t, board.Render())
}

func TestBoardInfo(t *testing.T) {
	board, _ := newTestBoard(t, newFakeSource())
	require.NoError(t, board.SetFilter(FilterFuture))

	info := board.Info()
	assert.Equal(t, "Geneva — Chamonix — Amsterdam", info.Title)
	assert.Equal(t, 310.0, info.Cost)
	assert.True(t, info.DateFrom.Equal(time.Date(2024, 3, 18, 10, 30, 0, 0, time.UTC)))
	assert.True(t, info.DateTo.Equal(time.Date(2024, 3, 25, 12, 0, 0, 0, time.UTC)))
}

// Package presenter связывает хранилище с представлениями: презентеры
// элементов списка, форма новой точки и доска, которая ими управляет.
package presenter

import (
	"context"
	"fmt"
	"log"
	"time"

	"tripboard/internal/keys"
	"tripboard/internal/models"
	"tripboard/internal/store"
	"tripboard/internal/view"
)

type BoardConfig struct {
	Store *store.Store
	Keys  *keys.Channel
	// Корневой элемент страницы; nil создаёт новый.
	Container *view.Element
	Clock     func() time.Time
	NewID     func() string
}

// Board является корнем композиции. Он создаёт презентеры по проекции хранилища
// и следит, чтобы редактировалась не больше чем одна точка.
type Board struct {
	store     *store.Store
	keys      *keys.Channel
	container *view.Element
	clock     func() time.Time

	list       *view.ListView
	message    *view.MessageView
	presenters map[string]*ItemPresenter
	order      []string
	creation   *CreationPresenter

	sortType    SortType
	filterType  FilterType
	unsubscribe func()
}

func NewBoard(cfg BoardConfig) *Board {
	container := cfg.Container
	if container == nil {
		container = view.NewElement(nil)
	}
	keyChannel := cfg.Keys
	if keyChannel == nil {
		keyChannel = keys.NewChannel()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	b := &Board{
		store:      cfg.Store,
		keys:       keyChannel,
		container:  container,
		clock:      clock,
		list:       view.NewListView(),
		presenters: make(map[string]*ItemPresenter),
		sortType:   SortDay,
		filterType: FilterEverything,
	}
	b.creation = NewCreationPresenter(CreationConfig{
		Container:    b.list,
		Keys:         keyChannel,
		Reference:    cfg.Store,
		OnDataChange: b.handleViewAction,
		OnDestroy:    b.handleNewPointDestroy,
		NewID:        cfg.NewID,
	})
	return b
}

// Init загружает хранилище и рисует список. Ошибки загрузки хранилище поглощает само.
// Повторный вызов перерисовывает доску с нуля.
func (b *Board) Init(ctx context.Context) {
	b.creation.Destroy()
	b.clearBoard()
	view.Render(b.list, b.container, view.BeforeEnd)
	b.store.Load(ctx)
	if b.unsubscribe == nil {
		b.unsubscribe = b.store.Notifier().Subscribe(b.handleModelEvent)
	}
	b.renderBoard()
}

// Reload перечитывает источник и оповещает подписчиков полной перерисовкой.
func (b *Board) Reload(ctx context.Context) {
	b.creation.Destroy()
	b.store.Reload(ctx)
}

// Destroy отписывает доску от хранилища и снимает все представления.
func (b *Board) Destroy() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
	b.creation.Destroy()
	b.clearBoard()
	view.Remove(b.list)
}

func (b *Board) Keys() *keys.Channel { return b.keys }

func (b *Board) Creation() *CreationPresenter { return b.creation }

func (b *Board) Presenter(id string) (*ItemPresenter, bool) {
	p, ok := b.presenters[id]
	return p, ok
}

// Presenters возвращает презентеры в порядке показа.
func (b *Board) Presenters() []*ItemPresenter {
	out := make([]*ItemPresenter, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.presenters[id])
	}
	return out
}

// Editing возвращает id редактируемой точки.
func (b *Board) Editing() (string, bool) {
	for _, id := range b.order {
		if b.presenters[id].Mode() == ModeEditing {
			return id, true
		}
	}
	return "", false
}

func (b *Board) Sort() SortType { return b.sortType }

func (b *Board) Filter() FilterType { return b.filterType }

func (b *Board) SetSort(sortType SortType) error {
	if err := sortType.Validate(); err != nil {
		return err
	}
	if sortType == b.sortType {
		return nil
	}
	b.sortType = sortType
	b.clearBoard()
	b.renderBoard()
	return nil
}

func (b *Board) SetFilter(filterType FilterType) error {
	if err := filterType.Validate(); err != nil {
		return err
	}
	if filterType == b.filterType {
		return nil
	}
	b.filterType = filterType
	b.sortType = SortDay
	b.clearBoard()
	b.renderBoard()
	return nil
}

// Info считает сводку по всему маршруту без учёта фильтра.
func (b *Board) Info() TripInfo {
	return BuildTripInfo(b.store.Projection())
}

// Render выводит текущее дерево представлений.
func (b *Board) Render() string {
	return b.container.String()
}

// CreatePoint открывает форму новой точки, сбрасывая сортировку, фильтр и редактирование.
func (b *Board) CreatePoint() {
	if b.creation.Active() {
		return
	}
	b.resetAll("")
	if b.sortType != SortDay || b.filterType != FilterEverything {
		b.sortType = SortDay
		b.filterType = FilterEverything
		b.clearBoard()
		b.renderBoard()
	}
	view.Remove(b.message)
	b.message = nil
	b.creation.Init(b.store.Destinations())
}

func (b *Board) visiblePoints() []models.PointWithDetails {
	points := filterPoints(b.store.Projection(), b.filterType, b.clock())
	return sortPoints(points, b.sortType)
}

func (b *Board) renderBoard() {
	points := b.visiblePoints()
	if len(points) == 0 {
		if !b.creation.Active() {
			b.renderMessage()
		}
		return
	}
	for _, point := range points {
		b.renderPoint(point)
	}
}

func (b *Board) renderMessage() {
	if b.message != nil {
		return
	}
	b.message = view.NewMessageView(view.EmptyListMessage)
	view.Render(b.message, b.list.Element(), view.BeforeEnd)
}

func (b *Board) renderPoint(point models.PointWithDetails) {
	id := point.ID
	p := NewItemPresenter(ItemConfig{
		Container:    b.list,
		Keys:         b.keys,
		Reference:    b.store,
		OnDataChange: b.handleViewAction,
		OnModeChange: func() { b.handleModeChange(id) },
	})
	p.Init(point)
	b.presenters[id] = p
	b.order = append(b.order, id)
}

func (b *Board) clearBoard() {
	for _, id := range b.order {
		b.presenters[id].Destroy()
	}
	b.presenters = make(map[string]*ItemPresenter)
	b.order = nil
	view.Remove(b.message)
	b.message = nil
}

// resetAll возвращает к чтению все элементы, кроме except.
func (b *Board) resetAll(except string) {
	for _, id := range b.order {
		if id != except {
			b.presenters[id].ResetView()
		}
	}
}

func (b *Board) handleModeChange(id string) {
	b.creation.Destroy()
	b.resetAll(id)
}

func (b *Board) handleNewPointDestroy() {
	if len(b.order) == 0 {
		b.renderMessage()
	}
}

func (b *Board) handleViewAction(action models.UserAction, updateType models.UpdateType, point models.PointWithDetails) error {
	switch action {
	case models.ActionUpdatePoint:
		return b.store.Update(updateType, point)
	case models.ActionAddPoint:
		b.store.Add(updateType, point)
		return nil
	case models.ActionDeletePoint:
		return b.store.Delete(updateType, point)
	}
	return fmt.Errorf("неизвестное действие %q", action)
}

func (b *Board) handleModelEvent(updateType models.UpdateType, point *models.PointWithDetails) {
	switch updateType {
	case models.UpdatePatch:
		if point == nil {
			return
		}
		p, ok := b.presenters[point.ID]
		if !ok {
			return
		}
		fresh, ok := b.store.Find(point.ID)
		if !ok {
			log.Printf("Точка %q пропала из хранилища после изменения", point.ID)
			return
		}
		p.Init(fresh)
	case models.UpdateMinor, models.UpdateInit:
		b.clearBoard()
		b.renderBoard()
	case models.UpdateMajor:
		b.sortType = SortDay
		b.filterType = FilterEverything
		b.clearBoard()
		b.renderBoard()
	}
}

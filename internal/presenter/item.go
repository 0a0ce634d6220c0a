package presenter

import (
	"errors"

	"tripboard/internal/keys"
	"tripboard/internal/models"
	"tripboard/internal/view"
)

var (
	ErrNotEditing = errors.New("point is not being edited")
	ErrEditing    = errors.New("point is being edited")
	ErrNotMounted = errors.New("presenter is not mounted")
)

// Mode задаёт состояние элемента списка.
type Mode int

const (
	ModeViewing Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeViewing:
		return "viewing"
	case ModeEditing:
		return "editing"
	}
	return "unknown"
}

// DataChangeFunc превращает намерение пользователя в мутацию хранилища.
type DataChangeFunc func(action models.UserAction, updateType models.UpdateType, point models.PointWithDetails) error

// Reference отдаёт справочники, из которых форма выбирает значения.
type Reference interface {
	Destinations() []models.Destination
	OfferCatalog() []models.OfferCatalogEntry
}

type ItemConfig struct {
	Container    view.Component
	Keys         *keys.Channel
	Reference    Reference
	OnDataChange DataChangeFunc
	OnModeChange func()
}

// ItemPresenter управляет одной точкой списка: в каждый момент смонтировано
// либо представление для чтения, либо форма редактирования.
type ItemPresenter struct {
	container        view.Component
	keys             *keys.Channel
	reference        Reference
	handleDataChange DataChangeFunc
	handleModeChange func()

	point      models.PointWithDetails
	item       *view.ItemView
	pointView  *view.PointView
	editorView *view.EditorView
	escape     *keys.Registration
	mode       Mode
	mounted    bool
}

func NewItemPresenter(cfg ItemConfig) *ItemPresenter {
	return &ItemPresenter{
		container:        cfg.Container,
		keys:             cfg.Keys,
		reference:        cfg.Reference,
		handleDataChange: cfg.OnDataChange,
		handleModeChange: cfg.OnModeChange,
	}
}

func (p *ItemPresenter) ID() string { return p.point.ID }

func (p *ItemPresenter) Mode() Mode { return p.mode }

func (p *ItemPresenter) Mounted() bool { return p.mounted }

// Point возвращает точку, которую сейчас показывает представление для чтения.
func (p *ItemPresenter) Point() models.PointWithDetails { return p.point.Clone() }

// Черновик формы меняют через ApplyDraft.
func (p *ItemPresenter) Editor() *view.EditorView { return p.editorView }

// Init при первом вызове монтирует представление для чтения.
// Повторные вызовы меняют данные смонтированных представлений на месте.
func (p *ItemPresenter) Init(point models.PointWithDetails) {
	p.point = point.Clone()

	if !p.mounted {
		p.item = view.NewItemView()
		p.pointView = view.NewPointView(view.PointViewConfig{
			Point:           p.point,
			OnEditClick:     p.replacePointToEditor,
			OnFavoriteClick: p.handleFavoriteClick,
		})
		p.editorView = view.NewEditorView(view.EditorConfig{
			Point:        &p.point,
			Destinations: p.destinations(),
			Catalog:      p.catalog(),
			OnSubmit:     p.handleEditorSubmit,
			OnClose:      p.handleCloseClick,
			OnDelete:     p.handleDeleteClick,
		})
		view.Render(p.item, p.container.Element(), view.BeforeEnd)
		view.Render(p.pointView, p.item.Element(), view.BeforeEnd)
		p.mode = ModeViewing
		p.mounted = true
		return
	}

	p.pointView.Update(p.point)
	p.editorView.SetReference(p.destinations(), p.catalog())
	p.editorView.Reset(p.point)
}

// Edit нажимает кнопку редактирования в представлении для чтения.
func (p *ItemPresenter) Edit() error {
	if !p.mounted {
		return ErrNotMounted
	}
	if p.mode == ModeEditing {
		return nil
	}
	p.pointView.ClickEdit()
	return nil
}

// ToggleFavorite отправляет в хранилище точку с инвертированным флагом.
// Локально ничего не меняется: новое значение придёт уведомлением хранилища.
func (p *ItemPresenter) ToggleFavorite() error {
	if !p.mounted {
		return ErrNotMounted
	}
	if p.mode == ModeEditing {
		return ErrEditing
	}
	return p.pointView.ClickFavorite()
}

func (p *ItemPresenter) ApplyDraft(form view.Form) error {
	if p.mode != ModeEditing {
		return ErrNotEditing
	}
	return p.editorView.Apply(form)
}

func (p *ItemPresenter) Submit() error {
	if p.mode != ModeEditing {
		return ErrNotEditing
	}
	return p.editorView.Submit()
}

func (p *ItemPresenter) Cancel() error {
	if p.mode != ModeEditing {
		return ErrNotEditing
	}
	p.editorView.Close()
	return nil
}

func (p *ItemPresenter) Delete() error {
	if p.mode != ModeEditing {
		return ErrNotEditing
	}
	return p.editorView.Delete()
}

// ResetView возвращает элемент к чтению, выбрасывая черновик.
func (p *ItemPresenter) ResetView() {
	if p.mode != ModeViewing {
		p.editorView.Reset(p.point)
		p.replaceEditorToPoint()
	}
}

// Destroy снимает представления и слушателя клавиш. Повторный вызов безопасен.
func (p *ItemPresenter) Destroy() {
	if !p.mounted {
		return
	}
	view.Remove(p.pointView)
	view.Remove(p.editorView)
	view.Remove(p.item)
	p.releaseEscape()
	p.mode = ModeViewing
	p.mounted = false
}

func (p *ItemPresenter) replacePointToEditor() {
	if p.handleModeChange != nil {
		p.handleModeChange()
	}
	p.editorView.SetReference(p.destinations(), p.catalog())
	p.editorView.Reset(p.point)
	if err := view.Replace(p.editorView, p.pointView); err != nil {
		return
	}
	p.escape = p.keys.Listen(p.escKeyDownHandler)
	p.mode = ModeEditing
}

func (p *ItemPresenter) replaceEditorToPoint() {
	_ = view.Replace(p.pointView, p.editorView)
	p.releaseEscape()
	p.mode = ModeViewing
}

func (p *ItemPresenter) releaseEscape() {
	p.escape.Release()
	p.escape = nil
}

func (p *ItemPresenter) escKeyDownHandler(evt *keys.Event) {
	if keys.IsEscape(evt.Key) {
		evt.PreventDefault()
		p.ResetView()
	}
}

func (p *ItemPresenter) handleFavoriteClick() error {
	update := p.point.Clone()
	update.IsFavorite = !update.IsFavorite
	return p.handleDataChange(models.ActionUpdatePoint, models.UpdatePatch, update)
}

func (p *ItemPresenter) handleEditorSubmit(point models.PointWithDetails) error {
	if err := p.handleDataChange(models.ActionUpdatePoint, models.UpdateMinor, point); err != nil {
		return err
	}
	// Доска могла перерисовать список и уже снять этот элемент.
	if !p.mounted {
		return nil
	}
	p.Init(point)
	p.replaceEditorToPoint()
	return nil
}

func (p *ItemPresenter) handleCloseClick() {
	p.ResetView()
}

func (p *ItemPresenter) handleDeleteClick() error {
	if err := p.handleDataChange(models.ActionDeletePoint, models.UpdateMinor, p.point.Clone()); err != nil {
		return err
	}
	p.Destroy()
	return nil
}

func (p *ItemPresenter) destinations() []models.Destination {
	if p.reference == nil {
		return nil
	}
	return p.reference.Destinations()
}

func (p *ItemPresenter) catalog() []models.OfferCatalogEntry {
	if p.reference == nil {
		return nil
	}
	return p.reference.OfferCatalog()
}

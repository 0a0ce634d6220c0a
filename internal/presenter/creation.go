package presenter

import (
	"errors"

	"github.com/google/uuid"

	"tripboard/internal/keys"
	"tripboard/internal/models"
	"tripboard/internal/view"
)

var ErrNoCreation = errors.New("no new point is being composed")

type CreationConfig struct {
	Container    view.Component
	Keys         *keys.Channel
	Reference    Reference
	OnDataChange DataChangeFunc
	OnDestroy    func()
	// NewID выдаёт клиентский id новой точки; по умолчанию uuid.
	NewID func() string
}

// CreationPresenter ведёт форму новой точки. Одновременно открыта не больше одной формы.
type CreationPresenter struct {
	container        view.Component
	keys             *keys.Channel
	reference        Reference
	handleDataChange DataChangeFunc
	handleDestroy    func()
	newID            func() string

	item       *view.ItemView
	editorView *view.EditorView
	escape     *keys.Registration
}

func NewCreationPresenter(cfg CreationConfig) *CreationPresenter {
	newID := cfg.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &CreationPresenter{
		container:        cfg.Container,
		keys:             cfg.Keys,
		reference:        cfg.Reference,
		handleDataChange: cfg.OnDataChange,
		handleDestroy:    cfg.OnDestroy,
		newID:            newID,
	}
}

func (p *CreationPresenter) Active() bool { return p.editorView != nil }

// Editor возвращает форму новой точки или nil, если форма закрыта.
func (p *CreationPresenter) Editor() *view.EditorView { return p.editorView }

// Init открывает форму новой точки в начале списка. Если форма уже открыта, ничего не делает.
func (p *CreationPresenter) Init(destinations []models.Destination) {
	if p.editorView != nil {
		return
	}

	var catalog []models.OfferCatalogEntry
	if p.reference != nil {
		catalog = p.reference.OfferCatalog()
	}
	p.editorView = view.NewEditorView(view.EditorConfig{
		Destinations: destinations,
		Catalog:      catalog,
		OnSubmit:     p.handleFormSubmit,
		OnDelete:     p.handleDeleteClick,
	})
	p.item = view.NewItemView()

	view.Render(p.item, p.container.Element(), view.AfterBegin)
	view.Render(p.editorView, p.item.Element(), view.AfterBegin)
	p.escape = p.keys.Listen(p.escKeyDownHandler)
}

// Destroy закрывает форму. Повторный вызов безопасен.
func (p *CreationPresenter) Destroy() {
	if p.editorView == nil {
		return
	}
	if p.handleDestroy != nil {
		p.handleDestroy()
	}
	view.Remove(p.item)
	p.item = nil
	p.editorView = nil
	p.escape.Release()
	p.escape = nil
}

func (p *CreationPresenter) ApplyDraft(form view.Form) error {
	if p.editorView == nil {
		return ErrNoCreation
	}
	return p.editorView.Apply(form)
}

func (p *CreationPresenter) Submit() error {
	if p.editorView == nil {
		return ErrNoCreation
	}
	return p.editorView.Submit()
}

// Cancel нажимает кнопку отмены в форме новой точки.
func (p *CreationPresenter) Cancel() error {
	if p.editorView == nil {
		return ErrNoCreation
	}
	return p.editorView.Delete()
}

func (p *CreationPresenter) handleFormSubmit(point models.PointWithDetails) error {
	// Сервер не выдаёт id, поэтому клиентский id остаётся постоянным.
	point.ID = p.newID()
	if err := p.handleDataChange(models.ActionAddPoint, models.UpdateMinor, point); err != nil {
		return err
	}
	p.Destroy()
	return nil
}

func (p *CreationPresenter) handleDeleteClick() error {
	p.Destroy()
	return nil
}

func (p *CreationPresenter) escKeyDownHandler(evt *keys.Event) {
	if keys.IsEscape(evt.Key) {
		evt.PreventDefault()
		p.Destroy()
	}
}

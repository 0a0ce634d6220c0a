package view

// Контейнер списка событий
type ListView struct{ el *Element }

func NewListView() *ListView {
	return &ListView{el: NewElement(nil)}
}

func (v *ListView) Element() *Element {
	if v == nil {
		return nil
	}
	return v.el
}

// ItemView оборачивает один элемент списка.
type ItemView struct{ el *Element }

func NewItemView() *ItemView {
	return &ItemView{el: NewElement(nil)}
}

func (v *ItemView) Element() *Element {
	if v == nil {
		return nil
	}
	return v.el
}

// MessageView показывает служебное сообщение вместо пустого списка.
type MessageView struct {
	el      *Element
	message string
}

const EmptyListMessage = "Click New Event to create your first point"

func NewMessageView(message string) *MessageView {
	v := &MessageView{message: message}
	v.el = NewElement(func() string { return v.message })
	return v
}

func (v *MessageView) Element() *Element {
	if v == nil {
		return nil
	}
	return v.el
}

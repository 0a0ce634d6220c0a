// Package keys моделирует глобальный поток нажатий клавиш как подписку
// с явным дескриптором отмены.
package keys

const (
	Escape = "Escape"
	Esc    = "Esc"
)

// IsEscape распознаёт оба варианта имени клавиши Escape.
func IsEscape(key string) bool {
	return key == Escape || key == Esc
}

// Event описывает одно нажатие клавиши.
type Event struct {
	Key       string
	prevented bool
}

func (e *Event) PreventDefault() { e.prevented = true }

func (e *Event) DefaultPrevented() bool { return e.prevented }

type Handler func(*Event)

// Registration держит слушателя. Release снимает слушателя и идемпотентен.
type Registration struct {
	channel *Channel
	handler Handler
	active  bool
}

func (r *Registration) Release() {
	if r == nil || !r.active {
		return
	}
	r.active = false
	c := r.channel
	for i, reg := range c.listeners {
		if reg == r {
			c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
			return
		}
	}
}

// Active сообщает, что слушатель ещё зарегистрирован.
func (r *Registration) Active() bool {
	return r != nil && r.active
}

// Channel раздаёт нажатия всем зарегистрированным слушателям.
type Channel struct {
	listeners []*Registration
}

func NewChannel() *Channel {
	return &Channel{}
}

// Listen регистрирует обработчик. Вызывающий обязан вызвать Release на каждом пути выхода.
func (c *Channel) Listen(handler Handler) *Registration {
	reg := &Registration{channel: c, handler: handler, active: true}
	c.listeners = append(c.listeners, reg)
	return reg
}

// Dispatch доставляет нажатие и сообщает, был ли вызван PreventDefault.
func (c *Channel) Dispatch(key string) bool {
	evt := &Event{Key: key}
	snapshot := append([]*Registration(nil), c.listeners...)
	for _, reg := range snapshot {
		if reg.active {
			reg.handler(evt)
		}
	}
	return evt.prevented
}

// Len возвращает число активных слушателей.
func (c *Channel) Len() int {
	return len(c.listeners)
}

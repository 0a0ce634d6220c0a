// Package bus реализует синхронную шину уведомлений публикация/подписка.
package bus

import "tripboard/internal/models"

// Handler получает тип обновления и полезную нагрузку.
type Handler[T any] func(updateType models.UpdateType, payload T)

type subscription[T any] struct {
	handler Handler[T]
	active  bool
}

// Bus вызывает подписчиков синхронно, в порядке подписки.
// Очереди нет: обработчик, который публикует снова, уходит в рекурсию.
// Bus не потокобезопасен, как и хранилище, которое им пользуется.
type Bus[T any] struct {
	subs []*subscription[T]
}

// New создает пустую шину.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe регистрирует обработчик и возвращает функцию отписки.
// Повторный вызов отписки ничего не делает.
func (b *Bus[T]) Subscribe(handler Handler[T]) (unsubscribe func()) {
	sub := &subscription[T]{handler: handler, active: true}
	b.subs = append(b.subs, sub)
	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		for i, s := range b.subs {
			if s == sub {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				break
			}
		}
	}
}

// Publish вызывает всех текущих подписчиков и возвращается после последнего.
// Подписчик, отписанный во время рассылки, больше не вызывается.
func (b *Bus[T]) Publish(updateType models.UpdateType, payload T) {
	snapshot := append([]*subscription[T](nil), b.subs...)
	for _, sub := range snapshot {
		if sub.active {
			sub.handler(updateType, payload)
		}
	}
}

// Len возвращает число активных подписчиков.
func (b *Bus[T]) Len() int {
	return len(b.subs)
}

// Package view реализует минимальное дерево представлений: элементы, которые
// монтируются в контейнер, снимаются и заменяются на месте.
package view

import (
	"errors"
	"strings"
)

var ErrNotMounted = errors.New("component is not mounted")

type Position int

const (
	BeforeEnd Position = iota
	AfterBegin
)

// Element представляет узел дерева. Текст узла вычисляется при каждом выводе.
type Element struct {
	parent   *Element
	children []*Element
	text     func() string
}

func NewElement(text func() string) *Element {
	return &Element{text: text}
}

func (e *Element) Parent() *Element { return e.parent }

func (e *Element) Mounted() bool { return e.parent != nil }

func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// Text возвращает собственный текст узла без потомков.
func (e *Element) Text() string {
	if e.text == nil {
		return ""
	}
	return e.text()
}

// String выводит узел и потомков, потомки с отступом.
func (e *Element) String() string {
	var sb strings.Builder
	e.write(&sb, 0)
	return strings.TrimRight(sb.String(), "\n")
}

func (e *Element) write(sb *strings.Builder, depth int) {
	childDepth := depth
	if text := e.Text(); text != "" {
		for _, line := range strings.Split(text, "\n") {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		childDepth++
	}
	for _, child := range e.children {
		child.write(sb, childDepth)
	}
}

func (e *Element) indexOf(child *Element) int {
	for i, c := range e.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (e *Element) detach() {
	if e.parent == nil {
		return
	}
	p := e.parent
	if i := p.indexOf(e); i >= 0 {
		p.children = append(p.children[:i:i], p.children[i+1:]...)
	}
	e.parent = nil
}

// Component умеет отдать свой корневой элемент.
type Component interface {
	Element() *Element
}

// Render монтирует компонент в контейнер.
func Render(component Component, container *Element, pos Position) {
	el := component.Element()
	el.detach()
	el.parent = container
	switch pos {
	case AfterBegin:
		container.children = append([]*Element{el}, container.children...)
	default:
		container.children = append(container.children, el)
	}
}

// Replace ставит newComponent на место oldComponent, не трогая соседей.
func Replace(newComponent, oldComponent Component) error {
	newEl, oldEl := newComponent.Element(), oldComponent.Element()
	if newEl == oldEl {
		return nil
	}
	if oldEl.parent == nil {
		return ErrNotMounted
	}
	newEl.detach()
	parent := oldEl.parent
	i := parent.indexOf(oldEl)
	parent.children[i] = newEl
	newEl.parent = parent
	oldEl.parent = nil
	return nil
}

// Remove снимает компонент. Для несмонтированного или nil ничего не делает.
func Remove(component Component) {
	if component == nil {
		return
	}
	if el := component.Element(); el != nil {
		el.detach()
	}
}

// Clear снимает всех потомков контейнера.
func Clear(container *Element) {
	for _, child := range container.Children() {
		child.detach()
	}
}

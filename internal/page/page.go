// Package page models the elements a view model binds to. Elements are identified by id and only carry a class list.
package page

import (
	"strings"
	"sync"

	"github.com/clambin/go-common/set"
)

// Element is a single element on the page
type Element interface {
	AddClass(tokens ...string)
	RemoveClass(tokens ...string)
	HasClass(token string) bool
	Classes() []string
}

// Page holds the elements of the page, keyed by id.
type Page struct {
	elements map[string]*ClassList
	lock     sync.RWMutex
}

// New returns a Page holding an empty element for each id
func New(ids ...string) *Page {
	p := Page{elements: make(map[string]*ClassList, len(ids))}
	for _, id := range ids {
		p.elements[id] = &ClassList{classes: set.New[string]()}
	}
	return &p
}

// Lookup returns the element matching selector, either "#id" or "id".
// If the page holds no such element, or p is nil, Lookup returns an element that ignores all changes.
func (p *Page) Lookup(selector string) Element {
	if e, ok := p.find(selector); ok {
		return e
	}
	return emptyElement{}
}

// Has reports whether the page holds an element matching selector
func (p *Page) Has(selector string) bool {
	_, ok := p.find(selector)
	return ok
}

func (p *Page) find(selector string) (*ClassList, bool) {
	if p == nil {
		return nil, false
	}
	p.lock.RLock()
	defer p.lock.RUnlock()
	e, ok := p.elements[strings.TrimPrefix(selector, "#")]
	return e, ok
}

var _ Element = &ClassList{}

// ClassList is an Element holding a set of class tokens. It is safe for concurrent use.
type ClassList struct {
	classes set.Set[string]
	lock    sync.RWMutex
}

func (c *ClassList) AddClass(tokens ...string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.classes.Add(tokens...)
}

func (c *ClassList) RemoveClass(tokens ...string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for _, token := range tokens {
		delete(c.classes, token)
	}
}

func (c *ClassList) HasClass(token string) bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.classes.Contains(token)
}

// Classes returns the class tokens, sorted
func (c *ClassList) Classes() []string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.classes.ListOrdered()
}

// emptyElement is returned when a lookup doesn't match any element.
type emptyElement struct{}

func (emptyElement) AddClass(...string)    {}
func (emptyElement) RemoveClass(...string) {}
func (emptyElement) HasClass(string) bool  { return false }
func (emptyElement) Classes() []string     { return nil }

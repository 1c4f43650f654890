// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package surface models the styling slice of one live document: the root
// element's custom properties, the body's class list and the managed <head>
// elements. A Surface is the only writer of that state. Every effective
// change bumps its revision and hands a full Snapshot to the listener, which
// forwards it to the browser.
package surface

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"inkwell/internal/theme"
)

// Managed head element ids.
const (
	StyleID    = theme.StyleElementID
	FontLinkID = "universal-theme-fonts"
)

// DarkClass is the body class present while the dark palette applies.
const DarkClass = "dark"

// Element is a managed <head> element. Style elements carry Content, link
// elements carry Href.
type Element struct {
	Tag     string `json:"tag"`
	ID      string `json:"id"`
	Content string `json:"content,omitempty"`
	Href    string `json:"href,omitempty"`
}

// Snapshot is an immutable copy of a surface at one revision.
type Snapshot struct {
	Revision   uint64            `json:"revision"`
	Properties map[string]string `json:"properties"`
	Classes    []string          `json:"classes"`
	Head       []Element         `json:"head"`
}

// Style returns the content of the managed style element, if present.
func (s Snapshot) Style() (string, bool) {
	for _, el := range s.Head {
		if el.ID == StyleID {
			return el.Content, true
		}
	}
	return "", false
}

// Surface is safe for concurrent use.
type Surface struct {
	mu       sync.Mutex
	props    map[string]string
	classes  []string
	head     []Element
	revision uint64
	listener func(Snapshot)
}

// New creates an empty surface.
func New() *Surface {
	return &Surface{props: make(map[string]string)}
}

// Listen registers fn to receive a snapshot after every change. Passing nil
// removes the listener. fn runs with the surface unlocked.
func (s *Surface) Listen(fn func(Snapshot)) {
	s.mu.Lock()
	s.listener = fn
	s.mu.Unlock()
}

// Update runs fn with exclusive access to the surface. All edits made by fn
// are published as a single revision, or not at all when nothing changed.
func (s *Surface) Update(fn func(e *Editor)) {
	s.mu.Lock()
	e := &Editor{s: s}
	fn(e)
	if !e.changed {
		s.mu.Unlock()
		return
	}
	s.revision++
	snap := s.snapshotLocked()
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener(snap)
	}
}

// Snapshot returns the current state.
func (s *Surface) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Revision returns the number of published changes.
func (s *Surface) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

func (s *Surface) snapshotLocked() Snapshot {
	return Snapshot{
		Revision:   s.revision,
		Properties: maps.Clone(s.props),
		Classes:    slices.Clone(s.classes),
		Head:       slices.Clone(s.head),
	}
}

// Project writes every token as a --theme-* property.
func (s *Surface) Project(tokens theme.TokenSet) {
	s.Update(func(e *Editor) { e.Project(tokens) })
}

// Teardown removes the properties named by tokens and nothing else.
func (s *Surface) Teardown(tokens theme.TokenSet) {
	s.Update(func(e *Editor) { e.Teardown(tokens) })
}

// SetIdentity replaces the theme and page body classes.
func (s *Surface) SetIdentity(themeID, page string) {
	s.Update(func(e *Editor) { e.SetIdentity(themeID, page) })
}

// SetDark adds or removes the dark body class.
func (s *Surface) SetDark(dark bool) {
	s.Update(func(e *Editor) { e.SetDark(dark) })
}

// Inject replaces the content of the managed style element.
func (s *Surface) Inject(css string) {
	s.Update(func(e *Editor) { e.Inject(css) })
}

// Editor mutates a surface inside Update. It must not be retained.
type Editor struct {
	s       *Surface
	changed bool
}

// SetProperty writes one custom property. Names are used verbatim.
func (e *Editor) SetProperty(name, value string) {
	if cur, ok := e.s.props[name]; ok && cur == value {
		return
	}
	e.s.props[name] = value
	e.changed = true
}

// RemoveProperty deletes one custom property.
func (e *Editor) RemoveProperty(name string) {
	if _, ok := e.s.props[name]; !ok {
		return
	}
	delete(e.s.props, name)
	e.changed = true
}

// Project writes every token as a --theme-* property.
func (e *Editor) Project(tokens theme.TokenSet) {
	for name, value := range tokens {
		e.SetProperty(theme.Property(name), value)
	}
}

// Teardown removes the properties named by tokens.
func (e *Editor) Teardown(tokens theme.TokenSet) {
	for name := range tokens {
		e.RemoveProperty(theme.Property(name))
	}
}

// SetIdentity strips every theme-* and page-* class, then adds the classes
// for themeID and page. An empty argument leaves that dimension stripped.
func (e *Editor) SetIdentity(themeID, page string) {
	next := e.s.classes[:0:0]
	for _, c := range e.s.classes {
		if strings.HasPrefix(c, "theme-") || strings.HasPrefix(c, "page-") {
			continue
		}
		next = append(next, c)
	}
	if themeID != "" {
		next = append(next, theme.ThemeClass(themeID))
	}
	if page != "" {
		next = append(next, "page-"+page)
	}
	e.setClasses(next)
}

// SetDark adds or removes the dark class.
func (e *Editor) SetDark(dark bool) {
	has := slices.Contains(e.s.classes, DarkClass)
	switch {
	case dark && !has:
		e.setClasses(append(slices.Clone(e.s.classes), DarkClass))
	case !dark && has:
		e.setClasses(slices.DeleteFunc(slices.Clone(e.s.classes), func(c string) bool { return c == DarkClass }))
	}
}

// AddClass adds an unmanaged body class.
func (e *Editor) AddClass(class string) {
	if class == "" || slices.Contains(e.s.classes, class) {
		return
	}
	e.setClasses(append(slices.Clone(e.s.classes), class))
}

func (e *Editor) setClasses(next []string) {
	if slices.Equal(next, e.s.classes) {
		return
	}
	e.s.classes = next
	e.changed = true
}

// Inject sets the managed style element's content, creating it on first use.
func (e *Editor) Inject(css string) {
	e.upsert(Element{Tag: "style", ID: StyleID, Content: css})
}

// SetFontLink points the managed font stylesheet link at href. An empty href
// removes the link.
func (e *Editor) SetFontLink(href string) {
	if href == "" {
		e.RemoveElement(FontLinkID)
		return
	}
	e.upsert(Element{Tag: "link", ID: FontLinkID, Href: href})
}

// RemoveElement deletes a managed head element.
func (e *Editor) RemoveElement(id string) {
	i := slices.IndexFunc(e.s.head, func(el Element) bool { return el.ID == id })
	if i < 0 {
		return
	}
	e.s.head = slices.Delete(slices.Clone(e.s.head), i, i+1)
	e.changed = true
}

func (e *Editor) upsert(el Element) {
	i := slices.IndexFunc(e.s.head, func(cur Element) bool { return cur.ID == el.ID })
	if i < 0 {
		e.s.head = append(slices.Clone(e.s.head), el)
		e.changed = true
		return
	}
	if e.s.head[i] == el {
		return
	}
	head := slices.Clone(e.s.head)
	head[i] = el
	e.s.head = head
	e.changed = true
}

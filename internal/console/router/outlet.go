package router

import (
	"html/template"
	"strings"
	"sync"
)

// Outlet контейнер, в который отрисовывается текущая страница.
type Outlet struct {
	mu    sync.Mutex
	parts []template.HTML
}

// Reset очищает содержимое.
func (o *Outlet) Reset() {
	o.mu.Lock()
	o.parts = o.parts[:0]
	o.mu.Unlock()
}

// Append добавляет готовый HTML-фрагмент.
func (o *Outlet) Append(h template.HTML) {
	o.mu.Lock()
	o.parts = append(o.parts, h)
	o.mu.Unlock()
}

// Text добавляет экранированный текстовый блок.
func (o *Outlet) Text(s string) {
	o.Append(template.HTML("<div>" + template.HTMLEscapeString(s) + "</div>"))
}

// Write позволяет отрисовывать шаблоны прямо в контейнер.
func (o *Outlet) Write(p []byte) (int, error) {
	o.Append(template.HTML(p))
	return len(p), nil
}

// HTML возвращает текущее содержимое.
func (o *Outlet) HTML() template.HTML {
	o.mu.Lock()
	defer o.mu.Unlock()
	var b strings.Builder
	for _, p := range o.parts {
		b.WriteString(string(p))
	}
	return template.HTML(b.String())
}

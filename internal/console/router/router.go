// Package router сопоставляет фрагмент адреса ("/clients") с функцией
// отрисовки страницы и вызывает её с очищенным контейнером.
//
// Ошибки и паники функций отрисовки не выходят за пределы роутера:
// вместо страницы выводится заглушка.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
)

// Заглушки, которые выводятся вместо страницы.
const (
	NotFoundText     = "route not found"
	RenderFailedText = "render failed"
)

// RenderFunc отрисовывает страницу в контейнер.
type RenderFunc func(ctx context.Context, out *Outlet) error

// Route связывает путь с функцией отрисовки.
type Route struct {
	Path   string
	Render RenderFunc
}

// Router хранит таблицу маршрутов и состояние текущей навигации.
type Router struct {
	mu      sync.RWMutex
	routes  map[string]RenderFunc
	outlet  *Outlet
	current string
	log     *slog.Logger
}

// New создаёт роутер, который отрисовывает навигацию в outlet.
func New(outlet *Outlet, log *slog.Logger, routes ...Route) *Router {
	r := &Router{
		routes: make(map[string]RenderFunc, len(routes)),
		outlet: outlet,
		log:    log,
	}
	for _, rt := range routes {
		r.Handle(rt.Path, rt.Render)
	}
	return r
}

// Handle регистрирует или заменяет маршрут.
func (r *Router) Handle(path string, fn RenderFunc) {
	r.mu.Lock()
	r.routes[Normalize(path)] = fn
	r.mu.Unlock()
}

// Normalize приводит фрагмент к пути: "#/clients" -> "/clients", "" -> "/".
// Параметры запроса не разбираются.
func Normalize(fragment string) string {
	p := strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// Has сообщает, зарегистрирован ли путь.
func (r *Router) Has(fragment string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.routes[Normalize(fragment)]
	return ok
}

// Resolve очищает out и отрисовывает в него страницу фрагмента.
// Возвращает false, если маршрут не найден или отрисовка не удалась.
func (r *Router) Resolve(ctx context.Context, fragment string, out *Outlet) bool {
	path := Normalize(fragment)

	r.mu.RLock()
	fn, ok := r.routes[path]
	r.mu.RUnlock()

	out.Reset()
	if !ok {
		out.Text(NotFoundText)
		return false
	}
	if err := r.render(ctx, fn, out); err != nil {
		r.log.Error("render failed", slog.String("op", "router.render"), slog.String("path", path), sl.Err(err))
		out.Reset()
		out.Text(RenderFailedText)
		return false
	}
	return true
}

func (r *Router) render(ctx context.Context, fn RenderFunc, out *Outlet) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx, out)
}

// Navigate переходит на фрагмент и отрисовывает его в контейнер роутера.
func (r *Router) Navigate(ctx context.Context, fragment string) bool {
	r.mu.Lock()
	r.current = Normalize(fragment)
	r.mu.Unlock()
	return r.Resolve(ctx, fragment, r.outlet)
}

// Current возвращает путь последней навигации.
func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Start один раз отрисовывает начальный маршрут, затем переходит по каждому
// фрагменту из changes, пока канал открыт и ctx не отменён.
func (r *Router) Start(ctx context.Context, initial string, changes <-chan string) {
	r.Navigate(ctx, initial)
	for {
		select {
		case <-ctx.Done():
			return
		case fragment, ok := <-changes:
			if !ok {
				return
			}
			r.Navigate(ctx, fragment)
		}
	}
}

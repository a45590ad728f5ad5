// Package console отдаёт HTML-страницы консоли: фрагмент пути разрешается
// роутером, формы открываются как диалоги modal, вход и выход идут через
// сервис сессии процесса.
package console

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/pandda-console/internal/console/modal"
	"github.com/magabrotheeeer/pandda-console/internal/console/router"
	"github.com/magabrotheeeer/pandda-console/internal/console/views"
	"github.com/magabrotheeeer/pandda-console/internal/http/response"
	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
	"github.com/magabrotheeeer/pandda-console/internal/models"
)

// Resolver отрисовывает страницу фрагмента.
type Resolver interface {
	Has(fragment string) bool
	Resolve(ctx context.Context, fragment string, out *router.Outlet) bool
}

// Forms открывает формы и удаляет записи с проверкой прав.
type Forms interface {
	OpenForm(ctx context.Context, body *modal.Body, kind, id string) (views.Form, *result.Error)
	Delete(ctx context.Context, kind, id string) *result.Error
}

// Auth открывает и закрывает сессию процесса.
type Auth interface {
	Login(ctx context.Context, email, password string) result.Result[models.Session]
	Logout(ctx context.Context) result.Result[struct{}]
	Current() *models.Identity
}

// Handler обслуживает маршруты /console.
type Handler struct {
	log    *slog.Logger
	router Resolver
	forms  Forms
	auth   Auth
	body   *modal.Body
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, r Resolver, forms Forms, auth Auth) *Handler {
	return &Handler{log: log, router: r, forms: forms, auth: auth, body: &modal.Body{}}
}

// Body возвращает блокировку страницы, общую для всех диалогов.
func (h *Handler) Body() *modal.Body { return h.body }

var layoutTmpl = template.Must(template.New("layout").Parse(`<!doctype html>
<html lang="en"><head><meta charset="utf-8"><title>PANDDA</title></head>
<body{{if .Locked}} class="modal-open"{{end}}>
<nav class="nav"><a href="{{.Base}}/clients">Clients</a> <a href="{{.Base}}/plans">Plans</a> <a href="{{.Base}}/apps">Apps</a> <a href="{{.Base}}/servers">Servers</a>
{{if .Signed}}<form method="post" action="{{.Base}}/logout"><button class="btn small" type="submit">Sign out</button></form>{{else}}<a href="{{.Base}}/login">Sign in</a>{{end}}</nav>
<main id="app">{{.Content}}</main>
</body></html>`))

func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, content template.HTML) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	err := layoutTmpl.Execute(w, map[string]any{
		"Base":    views.BasePath,
		"Signed":  h.auth.Current() != nil,
		"Locked":  h.body.Locked(),
		"Content": content,
	})
	if err != nil {
		h.log.Error("failed to write page",
			slog.String("op", "handlers.console.write"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err))
	}
}

func (h *Handler) notice(w http.ResponseWriter, r *http.Request, e *result.Error) {
	out := &router.Outlet{}
	out.Text(e.Message)
	h.write(w, r, response.Status(e.Code), out.HTML())
}

// Page отрисовывает страницу по пути после /console.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	fragment := strings.TrimPrefix(r.URL.Path, views.BasePath)
	out := &router.Outlet{}
	status := http.StatusOK
	if !h.router.Resolve(r.Context(), fragment, out) {
		status = http.StatusInternalServerError
		if !h.router.Has(fragment) {
			status = http.StatusNotFound
		}
	}
	h.write(w, r, status, out.HTML())
}

// Form показывает форму создания (без id) или изменения записи.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	id := r.URL.Query().Get("id")

	form, e := h.forms.OpenForm(r.Context(), h.body, kind, id)
	if e != nil {
		h.notice(w, r, e)
		return
	}
	defer form.Cancel()
	h.renderForm(w, r, http.StatusOK, form, kind, id)
}

// Submit сохраняет форму. При успехе перенаправляет на список,
// при ошибке показывает форму с введёнными значениями и сообщением.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.console.submit"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	kind := chi.URLParam(r, "kind")
	id := r.URL.Query().Get("id")

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		h.notice(w, r, &result.Error{Message: "invalid form", Code: result.CodeBadRequest})
		return
	}

	form, e := h.forms.OpenForm(r.Context(), h.body, kind, id)
	if e != nil {
		h.notice(w, r, e)
		return
	}
	defer form.Cancel()

	values := modal.Values{}
	for name := range r.PostForm {
		values[name] = r.PostForm.Get(name)
	}
	if form.Save(r.Context(), values) {
		log.Info("form saved", slog.String("kind", kind), slog.String("id", id))
		http.Redirect(w, r, views.ListPath(kind), http.StatusSeeOther)
		return
	}

	log.Warn("form rejected", slog.String("kind", kind), slog.String("error", form.Error()))
	form.Fill(values)
	h.renderForm(w, r, http.StatusUnprocessableEntity, form, kind, id)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, form views.Form, kind, id string) {
	html, err := form.Render(views.FormPath(kind, id), views.ListPath(kind))
	if err != nil {
		h.log.Error("failed to render form", slog.String("op", "handlers.console.renderForm"), sl.Err(err))
		h.notice(w, r, &result.Error{Message: router.RenderFailedText, Code: result.CodeGet})
		return
	}
	h.write(w, r, status, html)
}

// Delete удаляет запись и возвращает на список.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	id := chi.URLParam(r, "id")
	if e := h.forms.Delete(r.Context(), kind, id); e != nil {
		h.log.Warn("delete rejected",
			slog.String("op", "handlers.console.delete"),
			slog.String("kind", kind),
			slog.String("id", id),
			sl.Fail(e))
		h.notice(w, r, e)
		return
	}
	http.Redirect(w, r, views.ListPath(kind), http.StatusSeeOther)
}

// Login открывает сессию по данным формы входа.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.notice(w, r, &result.Error{Message: "invalid form", Code: result.CodeBadRequest})
		return
	}
	email := r.PostForm.Get("email")

	res := h.auth.Login(r.Context(), email, r.PostForm.Get("password"))
	if !res.Success {
		out := &router.Outlet{}
		if err := views.RenderLogin(out, email, res.Error.Message); err != nil {
			h.log.Error("failed to render login", sl.Err(err))
		}
		h.write(w, r, response.Status(res.Error.Code), out.HTML())
		return
	}
	http.Redirect(w, r, views.ListPath(models.KindClient), http.StatusSeeOther)
}

// Logout закрывает сессию и возвращает на форму входа.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())
	http.Redirect(w, r, views.BasePath+"/login", http.StatusSeeOther)
}

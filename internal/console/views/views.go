// Package views отрисовывает страницы консоли: списки клиентов, планов,
// приложений и серверов с действиями, доступными текущему пользователю,
// и формы создания и изменения поверх modal.
package views

import (
	"context"
	"html/template"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/pandda-console/internal/access"
	"github.com/magabrotheeeer/pandda-console/internal/console/router"
	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/models"
)

// BasePath префикс, под которым консоль отдаётся по HTTP.
const BasePath = "/console"

// Service операции сервиса данных, которые нужны страницам.
type Service[T, In, P any] interface {
	List(ctx context.Context) result.Result[[]T]
	Get(ctx context.Context, id string) result.Result[*T]
	Create(ctx context.Context, in In) result.Result[T]
	Update(ctx context.Context, id string, patch P) result.Result[T]
	Delete(ctx context.Context, id string) result.Result[T]
}

// Session отдаёт личность текущей сессии.
type Session interface {
	Current() *models.Identity
}

// Deps сервисы, которые потребляют страницы.
type Deps struct {
	Clients Service[models.Client, models.ClientInput, models.ClientPatch]
	Plans   Service[models.Plan, models.PlanInput, models.PlanPatch]
	Apps    Service[models.App, models.AppInput, models.AppPatch]
	Servers Service[models.Server, models.ServerInput, models.ServerPatch]
	Session Session
}

// Views строит функции отрисовки страниц.
type Views struct {
	deps Deps
	log  *slog.Logger
}

// New создаёт Views.
func New(deps Deps, log *slog.Logger) *Views {
	return &Views{deps: deps, log: log}
}

// Routes возвращает маршруты консоли.
func (v *Views) Routes() []router.Route {
	return []router.Route{
		{Path: "/", Render: v.home},
		{Path: "/clients", Render: v.clients},
		{Path: "/plans", Render: v.plans},
		{Path: "/apps", Render: v.apps},
		{Path: "/servers", Render: v.servers},
		{Path: "/login", Render: v.login},
	}
}

// ListPath возвращает путь страницы списка для вида ресурса.
func ListPath(kind string) string {
	return BasePath + "/" + kind + "s"
}

type row struct {
	Title     string
	Meta      string
	EditURL   string
	DeleteURL string
}

type listPage struct {
	Title   string
	Badge   string
	NewURL  string
	NewText string
	Notice  string
	Empty   string
	Rows    []row
}

var pageTmpl = template.Must(template.New("list").Parse(`<div class="container">
<div class="header"><div class="h1">{{.Title}}</div><div class="card badge">{{.Badge}}</div></div>
<div class="controls">{{if .NewURL}}<a class="btn primary" href="{{.NewURL}}">{{.NewText}}</a>{{end}}</div>
{{if .Notice}}<div class="notice error">{{.Notice}}</div>{{end}}<div class="list card">
{{range .Rows}}<div class="list-item"><div><div class="title">{{.Title}}</div><div class="meta">{{.Meta}}</div></div><div class="actions">{{if .EditURL}}<a class="btn small" href="{{.EditURL}}">Edit</a>{{end}}{{if .DeleteURL}}<form method="post" action="{{.DeleteURL}}"><button class="btn small danger" type="submit">Delete</button></form>{{end}}</div></div>
{{else}}<div class="meta">{{.Empty}}</div>
{{end}}</div>
</div>`))

var loginTmpl = template.Must(template.New("login").Parse(`<div class="container login">
<form class="card" method="post" action="{{.Action}}">
<div class="h1">Sign in</div>
<div class="field"><label class="label" for="email">E-mail</label><input class="input" id="email" type="email" name="email" value="{{.Email}}"></div>
<div class="field"><label class="label" for="password">Password</label><input class="input" id="password" type="password" name="password"></div>
{{if .Error}}<div class="modal-error">{{.Error}}</div>{{end}}<button class="btn primary" type="submit">Sign in</button>
</form>
</div>`))

func (v *Views) badge() string {
	id := v.deps.Session.Current()
	if id == nil {
		return "anonymous"
	}
	return id.Email + " (" + id.Role + ")"
}

// page заполняет общую часть списка: действия по политике доступа.
func (v *Views) page(kind, title, newText, empty string) listPage {
	p := listPage{Title: title, Badge: v.badge(), NewText: newText, Empty: empty}
	if access.CanEdit(v.deps.Session.Current(), kind) {
		p.NewURL = FormPath(kind, "")
	}
	return p
}

func (v *Views) row(kind, id, title, meta string) row {
	r := row{Title: title, Meta: meta}
	current := v.deps.Session.Current()
	if access.CanEdit(current, kind) {
		r.EditURL = FormPath(kind, id)
	}
	if access.CanDelete(current, kind) {
		r.DeleteURL = DeletePath(kind, id)
	}
	return r
}

// FormPath возвращает адрес формы создания (id пустой) или изменения.
func FormPath(kind, id string) string {
	p := BasePath + "/forms/" + kind
	if id != "" {
		p += "?id=" + template.URLQueryEscaper(id)
	}
	return p
}

// DeletePath возвращает адрес удаления записи.
func DeletePath(kind, id string) string {
	return BasePath + "/delete/" + kind + "/" + template.URLQueryEscaper(id)
}

func (v *Views) requireSession(out *router.Outlet) bool {
	if v.deps.Session.Current() != nil {
		return true
	}
	out.Append(template.HTML(`<div class="notice">Sign in required. <a href="` + BasePath + `/login">Sign in</a></div>`))
	return false
}

func (v *Views) home(_ context.Context, out *router.Outlet) error {
	target := ListPath(models.KindClient)
	out.Append(template.HTML(`<meta http-equiv="refresh" content="0; url=` + target + `"><a href="` + target + `">Clients</a>`))
	return nil
}

func (v *Views) login(_ context.Context, out *router.Outlet) error {
	return RenderLogin(out, "", "")
}

// RenderLogin отрисовывает форму входа с введённым e-mail и сообщением об ошибке.
func RenderLogin(out *router.Outlet, email, errMsg string) error {
	return loginTmpl.Execute(out, map[string]string{
		"Action": BasePath + "/login",
		"Email":  email,
		"Error":  errMsg,
	})
}

func (v *Views) clients(ctx context.Context, out *router.Outlet) error {
	if !v.requireSession(out) {
		return nil
	}
	p := v.page(models.KindClient, "Clients", "New client", "No clients found.")
	res := v.deps.Clients.List(ctx)
	if !res.Success {
		p.Notice = res.Error.Message
	}
	for _, c := range res.Data {
		p.Rows = append(p.Rows, v.row(models.KindClient, c.ID, c.Name, c.Email+" • "+orDash(c.Phone)))
	}
	return pageTmpl.Execute(out, p)
}

func (v *Views) plans(ctx context.Context, out *router.Outlet) error {
	if !v.requireSession(out) {
		return nil
	}
	p := v.page(models.KindPlan, "Plans", "New plan", "No plans found.")
	res := v.deps.Plans.List(ctx)
	if !res.Success {
		p.Notice = res.Error.Message
	}
	for _, pl := range res.Data {
		meta := formatInt(pl.Screens) + " screens • " + formatInt(pl.ValidityMonths) + " months • R$ " + formatPrice(pl.Price)
		p.Rows = append(p.Rows, v.row(models.KindPlan, pl.ID, pl.Name, meta))
	}
	return pageTmpl.Execute(out, p)
}

func (v *Views) apps(ctx context.Context, out *router.Outlet) error {
	if !v.requireSession(out) {
		return nil
	}
	p := v.page(models.KindApp, "Apps", "New app", "No apps found.")
	res := v.deps.Apps.List(ctx)
	if !res.Success {
		p.Notice = res.Error.Message
	}
	for _, a := range res.Data {
		code := a.AccessCode
		if code == "" {
			code = "-"
		}
		p.Rows = append(p.Rows, v.row(models.KindApp, a.ID, a.Name, code+" • Server: "+orDash(a.ServerID)))
	}
	return pageTmpl.Execute(out, p)
}

func (v *Views) servers(ctx context.Context, out *router.Outlet) error {
	if !v.requireSession(out) {
		return nil
	}
	p := v.page(models.KindServer, "Servers", "New server", "No servers found.")
	res := v.deps.Servers.List(ctx)
	if !res.Success {
		p.Notice = res.Error.Message
	}
	for _, s := range res.Data {
		meta := "No alias"
		if s.Alias != nil && strings.TrimSpace(*s.Alias) != "" {
			meta = "Alias: " + *s.Alias
		}
		p.Rows = append(p.Rows, v.row(models.KindServer, s.ID, s.Name, meta))
	}
	return pageTmpl.Execute(out, p)
}

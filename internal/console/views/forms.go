package views

import (
	"context"
	"html/template"
	"strconv"

	"github.com/magabrotheeeer/pandda-console/internal/access"
	"github.com/magabrotheeeer/pandda-console/internal/console/modal"
	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/models"
)

const (
	msgUnknownKind = "unknown form"
	msgForbidden   = "not allowed"
	msgNotFound    = "record not found"
)

// Form открытая форма создания или изменения записи.
type Form interface {
	Save(ctx context.Context, form modal.Values) bool
	Fill(form modal.Values)
	Render(action, back string) (template.HTML, error)
	Error() string
	Cancel()
}

// entityForm описывает поля и разбор формы одной сущности.
type entityForm[T, In, P any] struct {
	kind   string
	title  string
	fields func(c *modal.Container, initial map[string]any)
	input  func(v modal.Values) In
	patch  func(v modal.Values) P
}

func openEntity[T, In, P any](ctx context.Context, v *Views, body *modal.Body, svc Service[T, In, P], f entityForm[T, In, P], id string) (Form, *result.Error) {
	if id == "" {
		return modal.Open(body, v.log, modal.Options[In, T]{
			Title: "New " + f.title,
			Build: func(c *modal.Container, initial map[string]any) func(modal.Values) In {
				f.fields(c, initial)
				return f.input
			},
			Save: svc.Create,
		}), nil
	}

	got := svc.Get(ctx, id)
	if !got.Success {
		return nil, got.Error
	}
	if got.Data == nil {
		return nil, &result.Error{Message: msgNotFound, Code: result.CodeNotFound}
	}
	initial, err := models.Encode(*got.Data)
	if err != nil {
		return nil, &result.Error{Message: "failed to open form", Code: result.CodeGet}
	}
	return modal.Open(body, v.log, modal.Options[P, T]{
		Title:   "Edit " + f.title,
		Initial: initial,
		Build: func(c *modal.Container, initial map[string]any) func(modal.Values) P {
			f.fields(c, initial)
			return f.patch
		},
		Save: func(ctx context.Context, p P) result.Result[T] {
			return svc.Update(ctx, id, p)
		},
	}), nil
}

// OpenForm открывает форму вида kind: создание при пустом id, иначе изменение.
// Требует права на изменение у текущего пользователя.
func (v *Views) OpenForm(ctx context.Context, body *modal.Body, kind, id string) (Form, *result.Error) {
	if !access.CanEdit(v.deps.Session.Current(), kind) {
		return nil, &result.Error{Message: msgForbidden, Code: result.CodeForbidden}
	}
	switch kind {
	case models.KindClient:
		return openEntity(ctx, v, body, v.deps.Clients, clientForm, id)
	case models.KindPlan:
		return openEntity(ctx, v, body, v.deps.Plans, planForm, id)
	case models.KindApp:
		return openEntity(ctx, v, body, v.deps.Apps, appForm, id)
	case models.KindServer:
		return openEntity(ctx, v, body, v.deps.Servers, serverForm, id)
	default:
		return nil, &result.Error{Message: msgUnknownKind, Code: result.CodeNotFound}
	}
}

// Delete удаляет запись вида kind, если текущему пользователю это разрешено.
func (v *Views) Delete(ctx context.Context, kind, id string) *result.Error {
	if !access.CanDelete(v.deps.Session.Current(), kind) {
		return &result.Error{Message: msgForbidden, Code: result.CodeForbidden}
	}
	var err *result.Error
	switch kind {
	case models.KindClient:
		err = v.deps.Clients.Delete(ctx, id).Error
	case models.KindPlan:
		err = v.deps.Plans.Delete(ctx, id).Error
	case models.KindApp:
		err = v.deps.Apps.Delete(ctx, id).Error
	case models.KindServer:
		err = v.deps.Servers.Delete(ctx, id).Error
	default:
		err = &result.Error{Message: msgUnknownKind, Code: result.CodeNotFound}
	}
	return err
}

var clientForm = entityForm[models.Client, models.ClientInput, models.ClientPatch]{
	kind:  models.KindClient,
	title: "client",
	fields: func(c *modal.Container, initial map[string]any) {
		c.Add(
			modal.BuildField("Name", modal.TextInput(modal.Input{Name: "name", Value: initial["name"], Placeholder: "Company name"})),
			modal.BuildField("E-mail", modal.EmailInput(modal.Input{Name: "email", Value: initial["email"], Placeholder: "email@example.com"})),
			modal.BuildField("Phone", modal.TelInput(modal.Input{Name: "phone", Value: initial["phone"], Placeholder: "+55 63 9xxxx-xxxx"})),
		)
	},
	input: func(v modal.Values) models.ClientInput {
		return models.ClientInput{Name: v.String("name"), Email: v.String("email"), Phone: v.OptString("phone")}
	},
	patch: func(v modal.Values) models.ClientPatch {
		name, email := v.String("name"), v.String("email")
		return models.ClientPatch{Name: &name, Email: &email, Phone: v.OptString("phone")}
	},
}

var planForm = entityForm[models.Plan, models.PlanInput, models.PlanPatch]{
	kind:  models.KindPlan,
	title: "plan",
	fields: func(c *modal.Container, initial map[string]any) {
		c.Add(
			modal.BuildField("Name", modal.TextInput(modal.Input{Name: "name", Value: initial["name"]})),
			modal.BuildField("Screens", modal.NumberInput(modal.Input{Name: "screens", Value: orDefault(initial["screens"], 1)})),
			modal.BuildField("Validity (months)", modal.NumberInput(modal.Input{Name: "validityMonths", Value: orDefault(initial["validityMonths"], 1)})),
			modal.BuildField("Price (R$)", modal.NumberInput(modal.Input{Name: "price", Value: orDefault(initial["price"], 0)})),
		)
	},
	input: func(v modal.Values) models.PlanInput {
		return models.PlanInput{
			Name:           v.String("name"),
			Screens:        v.Int("screens"),
			ValidityMonths: v.Int("validityMonths"),
			Price:          v.Float("price"),
		}
	},
	patch: func(v modal.Values) models.PlanPatch {
		name := v.String("name")
		screens, months, price := v.Int("screens"), v.Int("validityMonths"), v.Float("price")
		return models.PlanPatch{Name: &name, Screens: &screens, ValidityMonths: &months, Price: &price}
	},
}

var appForm = entityForm[models.App, models.AppInput, models.AppPatch]{
	kind:  models.KindApp,
	title: "app",
	fields: func(c *modal.Container, initial map[string]any) {
		c.Add(
			modal.BuildField("Name", modal.TextInput(modal.Input{Name: "name", Value: initial["name"]})),
			modal.BuildField("Access code", modal.TextInput(modal.Input{Name: "accessCode", Value: initial["accessCode"]})),
			modal.BuildField("Android URL", modal.TextInput(modal.Input{Name: "androidUrl", Value: initial["androidUrl"], Placeholder: "https://..."})),
			modal.BuildField("iOS URL", modal.TextInput(modal.Input{Name: "iosUrl", Value: initial["iosUrl"], Placeholder: "https://..."})),
			modal.BuildField("Server", modal.TextInput(modal.Input{Name: "serverId", Value: initial["serverId"]})),
		)
	},
	input: func(v modal.Values) models.AppInput {
		return models.AppInput{
			Name:       v.String("name"),
			AccessCode: v.String("accessCode"),
			AndroidURL: v.OptString("androidUrl"),
			IOSURL:     v.OptString("iosUrl"),
			ServerID:   v.OptString("serverId"),
		}
	},
	patch: func(v modal.Values) models.AppPatch {
		name, code := v.String("name"), v.String("accessCode")
		return models.AppPatch{
			Name:       &name,
			AccessCode: &code,
			AndroidURL: v.OptString("androidUrl"),
			IOSURL:     v.OptString("iosUrl"),
			ServerID:   v.OptString("serverId"),
		}
	},
}

var serverForm = entityForm[models.Server, models.ServerInput, models.ServerPatch]{
	kind:  models.KindServer,
	title: "server",
	fields: func(c *modal.Container, initial map[string]any) {
		c.Add(
			modal.BuildField("Name", modal.TextInput(modal.Input{Name: "name", Value: initial["name"]})),
			modal.BuildField("Alias", modal.TextInput(modal.Input{Name: "alias", Value: initial["alias"]})),
		)
	},
	input: func(v modal.Values) models.ServerInput {
		return models.ServerInput{Name: v.String("name"), Alias: v.OptString("alias")}
	},
	patch: func(v modal.Values) models.ServerPatch {
		name := v.String("name")
		return models.ServerPatch{Name: &name, Alias: v.OptString("alias")}
	},
}

func orDefault(v any, def int) any {
	if v == nil {
		return def
	}
	return v
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

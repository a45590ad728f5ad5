// Package modal реализует диалог ввода: форма строится переданной функцией,
// сохранение выполняется переданным обработчиком, ошибка показывается
// внутри диалога. Пока диалог открыт, страница заблокирована.
package modal

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"sync"

	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
)

// Подписи и сообщения диалога.
const (
	SaveLabel   = "Save"
	SavingLabel = "Saving..."
	CancelLabel = "Cancel"
	CloseLabel  = "Close"

	msgBuildFailed = "failed to build form"
	msgSaveFailed  = "failed to save"
	msgUnexpected  = "unexpected error"
)

// Body блокировка страницы. Заблокирована, пока открыт хотя бы один диалог.
type Body struct {
	mu     sync.Mutex
	active int
}

// Locked сообщает, есть ли открытые диалоги.
func (b *Body) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active > 0
}

func (b *Body) acquire() {
	b.mu.Lock()
	b.active++
	b.mu.Unlock()
}

func (b *Body) release() {
	b.mu.Lock()
	if b.active > 0 {
		b.active--
	}
	b.mu.Unlock()
}

// Options описывает диалог. P задаёт данные, извлечённые из формы, T результат сохранения.
type Options[P, T any] struct {
	Title   string
	Initial map[string]any
	// Build добавляет поля в контейнер и возвращает функцию извлечения данных.
	Build func(c *Container, initial map[string]any) func(Values) P
	// Save сохраняет данные и возвращает единый результат.
	Save func(ctx context.Context, payload P) result.Result[T]
	// Done вызывается с данными успешного сохранения перед закрытием.
	Done func(data T)
}

// Dialog открытый диалог.
type Dialog[P, T any] struct {
	mu      sync.Mutex
	opts    Options[P, T]
	body    *Body
	fields  []Field
	extract func(Values) P
	errLine string
	busy    bool
	closed  bool
	log     *slog.Logger
}

// Open открывает диалог и блокирует body.
func Open[P, T any](body *Body, log *slog.Logger, opts Options[P, T]) *Dialog[P, T] {
	d := &Dialog[P, T]{
		opts: opts,
		body: body,
		log:  log,
		extract: func(Values) P {
			var zero P
			return zero
		},
	}
	body.acquire()
	d.build()
	return d
}

func (d *Dialog[P, T]) build() {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("form builder panicked", slog.String("op", "modal.build"), slog.Any("panic", r))
			d.errLine = msgBuildFailed
		}
	}()
	if d.opts.Build == nil {
		return
	}
	initial := d.opts.Initial
	if initial == nil {
		initial = map[string]any{}
	}
	c := &Container{}
	extract := d.opts.Build(c, initial)
	d.fields = c.Fields()
	if extract != nil {
		d.extract = extract
	}
}

// Save извлекает данные формы и вызывает обработчик сохранения. На время
// вызова кнопка подтверждения заблокирована. При успехе вызывает Done и
// закрывает диалог, при ошибке показывает сообщение и оставляет диалог открытым.
// Возвращает true, если диалог закрылся.
func (d *Dialog[P, T]) Save(ctx context.Context, form Values) bool {
	d.mu.Lock()
	if d.closed || d.busy {
		d.mu.Unlock()
		return d.closed
	}
	d.busy = true
	d.errLine = ""
	d.mu.Unlock()

	res, err := d.run(ctx, form)

	d.mu.Lock()
	d.busy = false
	if err != nil {
		d.errLine = msgUnexpected
		d.mu.Unlock()
		return false
	}
	if !res.Success {
		d.errLine = msgSaveFailed
		if res.Error != nil && res.Error.Message != "" {
			d.errLine = res.Error.Message
		}
		d.mu.Unlock()
		return false
	}
	d.mu.Unlock()

	defer d.Close()
	if d.opts.Done != nil {
		d.opts.Done(res.Data)
	}
	return true
}

func (d *Dialog[P, T]) run(ctx context.Context, form Values) (res result.Result[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("modal.save: %v", r)
			d.log.Error("save panicked", slog.String("op", "modal.save"), slog.Any("panic", r))
		}
	}()
	payload := d.extract(form)
	if d.opts.Save == nil {
		return result.Fail[T]("", msgSaveFailed), nil
	}
	return d.opts.Save(ctx, payload), nil
}

// Cancel закрывает диалог без сохранения.
func (d *Dialog[P, T]) Cancel() { d.Close() }

// ClickOutside закрывает диалог без сохранения.
func (d *Dialog[P, T]) ClickOutside() { d.Close() }

// Close закрывает диалог и снимает блокировку страницы. Повторный вызов ничего не делает.
func (d *Dialog[P, T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.body.release()
}

// Closed сообщает, закрыт ли диалог.
func (d *Dialog[P, T]) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Busy сообщает, выполняется ли сохранение.
func (d *Dialog[P, T]) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// ConfirmLabel возвращает подпись кнопки подтверждения.
func (d *Dialog[P, T]) ConfirmLabel() string {
	if d.Busy() {
		return SavingLabel
	}
	return SaveLabel
}

// Error возвращает сообщение об ошибке внутри диалога.
func (d *Dialog[P, T]) Error() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errLine
}

// Fields возвращает поля формы.
func (d *Dialog[P, T]) Fields() []Field {
	return append([]Field(nil), d.fields...)
}

// Title возвращает заголовок диалога.
func (d *Dialog[P, T]) Title() string { return d.opts.Title }

// Fill подставляет отправленные значения в поля, чтобы после ошибки
// форма показывала введённое.
func (d *Dialog[P, T]) Fill(form Values) {
	for i := range d.fields {
		if v, ok := form[d.fields[i].Name]; ok {
			d.fields[i].Value = v
		}
	}
}

var dialogTmpl = template.Must(template.New("dialog").Parse(`<div class="modal-root" role="dialog" aria-modal="true">
<form class="card" method="post"{{if .Action}} action="{{.Action}}"{{end}}>
<div class="modal-header"><div class="h1">{{.Title}}</div><a class="btn" href="{{.Back}}">{{.CloseLabel}}</a></div>
{{range .Fields}}<div class="field"><label class="label" for="f-{{.Name}}">{{.Label}}</label><input class="input" id="f-{{.Name}}" type="{{.Type}}" name="{{.Name}}" value="{{.Value}}"{{if .Placeholder}} placeholder="{{.Placeholder}}"{{end}}></div>
{{end}}<div class="modal-error">{{.Error}}</div>
<div class="modal-footer"><a class="btn" href="{{.Back}}">{{.CancelLabel}}</a><button class="btn primary" type="submit"{{if .Busy}} disabled{{end}}>{{.ConfirmLabel}}</button></div>
</form>
</div>`))

// Render выводит диалог как HTML-форму. action задаёт адрес отправки формы,
// back куда ведут кнопки отмены и закрытия.
func (d *Dialog[P, T]) Render(action, back string) (template.HTML, error) {
	var b strings.Builder
	err := dialogTmpl.Execute(&b, map[string]any{
		"Action":       action,
		"Back":         back,
		"Title":        d.Title(),
		"Fields":       d.Fields(),
		"Error":        d.Error(),
		"Busy":         d.Busy(),
		"ConfirmLabel": d.ConfirmLabel(),
		"CloseLabel":   CloseLabel,
		"CancelLabel":  CancelLabel,
	})
	if err != nil {
		return "", fmt.Errorf("modal.Render: %w", err)
	}
	return template.HTML(b.String()), nil
}

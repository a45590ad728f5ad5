package modal

import (
	"fmt"
	"strconv"
	"strings"
)

// Типы полей ввода.
const (
	TypeText   = "text"
	TypeEmail  = "email"
	TypeTel    = "tel"
	TypeNumber = "number"
)

// Field одно поле формы.
type Field struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
}

// Input параметры поля ввода.
type Input struct {
	Name        string
	Value       any
	Placeholder string
}

// TextInput строит текстовое поле.
func TextInput(in Input) Field {
	return Field{Name: in.Name, Type: TypeText, Value: formatValue(in.Value), Placeholder: in.Placeholder}
}

// EmailInput строит поле e-mail.
func EmailInput(in Input) Field {
	f := TextInput(in)
	f.Type = TypeEmail
	return f
}

// TelInput строит поле телефона.
func TelInput(in Input) Field {
	f := TextInput(in)
	f.Type = TypeTel
	return f
}

// NumberInput строит числовое поле. Подсказка у него не выводится.
func NumberInput(in Input) Field {
	return Field{Name: in.Name, Type: TypeNumber, Value: formatValue(in.Value)}
}

// BuildField подписывает поле.
func BuildField(label string, f Field) Field {
	f.Label = label
	return f
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Container собирает поля формы в порядке добавления.
type Container struct {
	fields []Field
}

// Add добавляет поля.
func (c *Container) Add(fields ...Field) {
	c.fields = append(c.fields, fields...)
}

// Fields возвращает копию полей.
func (c *Container) Fields() []Field {
	return append([]Field(nil), c.fields...)
}

// Values отправленные значения формы по имени поля.
type Values map[string]string

// String возвращает значение без пробелов по краям.
func (v Values) String(name string) string {
	return strings.TrimSpace(v[name])
}

// OptString возвращает nil для пустого значения.
func (v Values) OptString(name string) *string {
	s := v.String(name)
	if s == "" {
		return nil
	}
	return &s
}

// Float разбирает число, пустое или нечисловое значение даёт 0.
func (v Values) Float(name string) float64 {
	f, err := strconv.ParseFloat(v.String(name), 64)
	if err != nil {
		return 0
	}
	return f
}

// Int разбирает целое, пустое или нечисловое значение даёт 0.
func (v Values) Int(name string) int {
	n, err := strconv.Atoi(v.String(name))
	if err != nil {
		return 0
	}
	return n
}

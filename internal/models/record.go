// Package models содержит доменные структуры консоли: запись хранилища,
// типизированные сущности (клиенты, планы, приложения, серверы, подписки,
// пользователи), входные данные для создания и частичные патчи для обновления.
package models

import (
	"encoding/json"
	"maps"
)

// Имена таблиц хранилища.
const (
	TableClients       = "clients"
	TablePlans         = "plans"
	TableSubscriptions = "subscriptions"
	TableApps          = "apps"
	TableServers       = "servers"
	TableUsers         = "users"
)

// Tables перечисляет таблицы, которые всегда присутствуют в сохранённом состоянии.
var Tables = []string{TableClients, TablePlans, TableSubscriptions, TableApps, TableServers, TableUsers}

// Служебные поля каждой записи.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
)

// Record плоский набор именованных полей одной записи таблицы.
// Значения ограничены JSON-совместимыми типами, даты хранятся строками ISO-8601.
type Record map[string]any

// ID возвращает идентификатор записи или пустую строку.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// Str возвращает строковое поле или пустую строку.
func (r Record) Str(field string) string {
	s, _ := r[field].(string)
	return s
}

// Clone возвращает поверхностную копию записи.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// Merge накладывает поля patch поверх копии записи.
func (r Record) Merge(patch Record) Record {
	merged := r.Clone()
	if merged == nil {
		merged = Record{}
	}
	maps.Copy(merged, patch)
	return merged
}

// Encode превращает структуру с json-тегами в запись.
func Encode(v any) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Decode превращает запись в типизированную сущность.
func Decode[T any](rec Record) (T, error) {
	var out T
	raw, err := json.Marshal(rec)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}

// DecodeAll превращает набор записей в срез сущностей.
func DecodeAll[T any](recs []Record) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		v, err := Decode[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

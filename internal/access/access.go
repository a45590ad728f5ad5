// Package access решает, какие операции доступны текущему пользователю
// над ресурсом данного вида. Проверки не кешируются: личность может
// смениться между вызовами.
package access

import "github.com/magabrotheeeer/pandda-console/internal/models"

// CanEdit разрешает создание и изменение. Администратору можно всё,
// обычному пользователю только клиентов.
func CanEdit(id *models.Identity, kind string) bool {
	if id == nil {
		return false
	}
	switch id.Role {
	case models.RoleAdmin:
		return true
	case models.RoleCommon, models.RoleUser:
		return kind == models.KindClient
	default:
		return false
	}
}

// CanDelete разрешает удаление только администратору.
func CanDelete(id *models.Identity, _ string) bool {
	return id != nil && id.Role == models.RoleAdmin
}

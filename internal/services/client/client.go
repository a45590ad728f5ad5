// Package services содержит сервис данных клиентов.
package services

import (
	"log/slog"

	"github.com/magabrotheeeer/pandda-console/internal/models"
	"github.com/magabrotheeeer/pandda-console/internal/services/crud"
)

// ClientService управляет таблицей клиентов. Имя и e-mail обязательны при создании.
type ClientService struct {
	*crud.Service[models.Client, models.ClientInput, models.ClientPatch]
}

// NewClientService создает новый экземпляр ClientService.
func NewClientService(store crud.Store, log *slog.Logger) *ClientService {
	msgs := crud.MessagesFor("client", "name and email are required")
	return &ClientService{
		Service: crud.New[models.Client, models.ClientInput, models.ClientPatch](store, models.TableClients, msgs, log),
	}
}

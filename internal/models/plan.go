package models

import "time"

// Plan тарифный план: число экранов, срок действия в месяцах и цена.
type Plan struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Screens        int       `json:"screens"`
	ValidityMonths int       `json:"validityMonths"`
	Price          float64   `json:"price"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PlanInput данные для создания плана. Нулевая цена считается отсутствующей.
type PlanInput struct {
	Name           string  `json:"name" validate:"required"`
	Screens        int     `json:"screens"`
	ValidityMonths int     `json:"validityMonths"`
	Price          float64 `json:"price" validate:"required"`
}

// PlanPatch частичное обновление плана.
type PlanPatch struct {
	Name           *string  `json:"name,omitempty"`
	Screens        *int     `json:"screens,omitempty"`
	ValidityMonths *int     `json:"validityMonths,omitempty"`
	Price          *float64 `json:"price,omitempty"`
}

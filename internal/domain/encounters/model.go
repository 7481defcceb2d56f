package encounters

import "time"

// Encounter representa un avistamiento de gato registrado en campo.
type Encounter struct {
	ID          string
	OwnerUserID string

	SpottedAt    time.Time
	LocationName string
	Latitude     *float64
	Longitude    *float64

	Color    CatColor
	CoatType CoatType
	Behavior Behavior

	Notes string

	// PhotoID referencia el blob en el módulo photos. Vacío = sin foto.
	PhotoID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

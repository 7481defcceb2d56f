package photos

import "time"

// Photo es el blob ya procesado (reescalado/reencodeado) de un avistamiento.
type Photo struct {
	ID          string
	OwnerUserID string

	ContentType string // siempre image/jpeg tras el reencode
	Data        []byte

	CreatedAt time.Time
}

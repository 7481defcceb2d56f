package preferences

import (
	"encoding/json"
	"time"
)

// Preferences es el blob de configuración de UI del usuario. El servidor no lo
// interpreta: solo exige JSON válido y lo acarrea en el export/import.
type Preferences struct {
	OwnerUserID string
	Data        json.RawMessage
	UpdatedAt   time.Time
}

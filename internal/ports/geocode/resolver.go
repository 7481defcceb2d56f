package geocode

import "context"

// Resolver traduce coordenadas a un nombre de lugar legible.
// Se usa al crear un avistamiento sin location_name; un error del resolver
// nunca bloquea el registro (el nombre queda vacío).
type Resolver interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

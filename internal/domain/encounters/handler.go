package encounters

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cat-a-log/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/encounters", func(er chi.Router) {
		er.Post("/", createEncounterHandler(svc))
		er.Get("/", listEncountersHandler(svc))

		er.Get("/{encounterID}", getEncounterHandler(svc))
		er.Patch("/{encounterID}", updateEncounterHandler(svc))
		er.Delete("/{encounterID}", deleteEncounterHandler(svc))
	})
}

// createEncounterRequest es el cuerpo para registrar un avistamiento.
type createEncounterRequest struct {
	SpottedAt    string   `json:"spotted_at"` // RFC3339
	LocationName string   `json:"location_name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Color        CatColor `json:"color" enums:"black,white,gray,orange,brown,cream,tabby,calico,tortoiseshell,tuxedo,pointed,other"`
	CoatType     CoatType `json:"coat_type" enums:"shorthair,longhair,hairless,unknown"`
	Behavior     Behavior `json:"behavior" enums:"friendly,shy,playful,sleeping,hunting,eating,grooming,vocal,aggressive,other"`
	Notes        string   `json:"notes"`
}

type updateEncounterRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	SpottedAt    *string `json:"spotted_at"` // RFC3339
	LocationName *string `json:"location_name"`
	// latitude/longitude admiten null explícito para limpiar; se detectan
	// por presencia sobre el raw map (ver handler).
	Color    *CatColor `json:"color"`
	CoatType *CoatType `json:"coat_type"`
	Behavior *Behavior `json:"behavior"`
	Notes    *string   `json:"notes"`
}

// EncounterResponse representa un avistamiento devuelto por la API.
type EncounterResponse struct {
	ID           string    `json:"id"`
	OwnerUserID  string    `json:"owner_user_id"`
	SpottedAt    time.Time `json:"spotted_at"`
	LocationName string    `json:"location_name"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Color        CatColor  `json:"color"`
	CoatType     CoatType  `json:"coat_type"`
	Behavior     Behavior  `json:"behavior"`
	Notes        string    `json:"notes"`
	PhotoID      string    `json:"photo_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// createEncounterHandler godoc
// @Summary Registrar avistamiento
// @Description Registra un nuevo avistamiento de gato para el usuario autenticado. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags encounters
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body createEncounterRequest true "Datos del avistamiento; spotted_at en RFC3339"
// @Success 201 {object} EncounterResponse
// @Failure 400 {string} string "invalid json / spotted_at inválido / valor categórico desconocido"
// @Failure 401 {string} string "unauthorized"
// @Router /encounters [post]
func createEncounterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createEncounterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := time.Parse(time.RFC3339, req.SpottedAt)
		if err != nil {
			http.Error(w, "spotted_at must be RFC3339", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			SpottedAt:    t,
			LocationName: req.LocationName,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
			Color:        req.Color,
			CoatType:     req.CoatType,
			Behavior:     req.Behavior,
			Notes:        req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(e))
	}
}

// listEncountersHandler godoc
// @Summary Listar avistamientos
// @Description Lista los avistamientos del usuario autenticado. Permite filtrar por colores, comportamiento, rango de fechas y texto libre.
// @Tags encounters
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param limit query int false "Máximo de registros a devolver (1-200). Por defecto 50"
// @Param colors query string false "Lista CSV de colores a incluir (ej: black,tabby)"
// @Param behavior query string false "Comportamiento exacto a incluir"
// @Param from query string false "Fecha/hora mínima spotted_at (RFC3339)"
// @Param to query string false "Fecha/hora máxima spotted_at (RFC3339)"
// @Param q query string false "Texto de búsqueda libre en ubicación/notas"
// @Success 200 {array} EncounterResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /encounters [get]
func listEncountersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]EncounterResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getEncounterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "encounterID"))
		if err != nil || e.OwnerUserID != claims.UserID {
			http.Error(w, "encounter not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(e))
	}
}

func updateEncounterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Para soportar latitude/longitude: null necesitamos detectar presencia
		// del campo; decodificamos a map primero (simple y suficiente para este
		// volumen). Campos desconocidos se ignoran.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateEncounterRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		lat, err := parsePatchCoord(raw, "latitude")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		lon, err := parsePatchCoord(raw, "longitude")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var spotted *time.Time
		if req.SpottedAt != nil {
			t, err := time.Parse(time.RFC3339, *req.SpottedAt)
			if err != nil {
				http.Error(w, "spotted_at must be RFC3339", http.StatusBadRequest)
				return
			}
			spotted = &t
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "encounterID"), claims.UserID, UpdateInput{
			SpottedAt:    spotted,
			LocationName: req.LocationName,
			Latitude:     lat,
			Longitude:    lon,
			Color:        req.Color,
			CoatType:     req.CoatType,
			Behavior:     req.Behavior,
			Notes:        req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound) || strings.Contains(strings.ToLower(err.Error()), "not found"):
				http.Error(w, "encounter not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toResponse(updated))
	}
}

func deleteEncounterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "encounterID"), claims.UserID); err != nil {
			http.Error(w, "encounter not found", http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func parsePatchCoord(raw map[string]json.RawMessage, field string) (PatchCoords, error) {
	v, exists := raw[field]
	if !exists {
		return PatchCoords{}, nil
	}
	if string(v) == "null" {
		return PatchCoords{Present: true, Value: nil}, nil
	}
	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		return PatchCoords{}, errors.New(field + " must be a number or null")
	}
	return PatchCoords{Present: true, Value: &f}, nil
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	filter := ListFilter{Limit: limit}

	// colors=black,tabby
	if v := strings.TrimSpace(r.URL.Query().Get("colors")); v != "" {
		parts := strings.Split(v, ",")
		out := make([]CatColor, 0, len(parts))
		for _, p := range parts {
			c := CatColor(strings.TrimSpace(p))
			if c == "" {
				continue
			}
			out = append(out, c)
		}
		if len(out) > 0 {
			filter.Colors = out
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("behavior")); v != "" {
		filter.Behavior = Behavior(v)
	}

	// from/to RFC3339
	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	if v := strings.TrimSpace(r.URL.Query().Get("q")); v != "" {
		filter.Query = v
	}

	return filter, nil
}

func toResponse(e Encounter) EncounterResponse {
	return EncounterResponse{
		ID:           e.ID,
		OwnerUserID:  e.OwnerUserID,
		SpottedAt:    e.SpottedAt,
		LocationName: e.LocationName,
		Latitude:     e.Latitude,
		Longitude:    e.Longitude,
		Color:        e.Color,
		CoatType:     e.CoatType,
		Behavior:     e.Behavior,
		Notes:        e.Notes,
		PhotoID:      e.PhotoID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// (encounters/photos/backup) para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package backup

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cat-a-log/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// maxEnvelopeBytes limita el tamaño de un import (fotos base64 incluidas).
const maxEnvelopeBytes = 64 << 20 // 64MB

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/export", exportHandler(svc))
	r.Post("/import", importHandler(svc))
}

// exportHandler godoc
// @Summary Exportar datos
// @Description Descarga todos los avistamientos del usuario con fotos embebidas en base64 y preferencias, como envelope JSON versionado para backup o transferencia entre dispositivos.
// @Tags backup
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {object} Envelope
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /export [get]
func exportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		env, err := svc.Export(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Disposition", `attachment; filename="cat-a-log-export.json"`)
		writeJSON(w, http.StatusOK, env)
	}
}

// importHandler godoc
// @Summary Importar datos
// @Description Importa un envelope de export. `mode=merge` (default) reconcilia por id con gana-el-más-reciente y devuelve los empates como conflictos; `mode=replace` sustituye la colección completa. Un registro malformado aborta el import entero.
// @Tags backup
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param mode query string false "merge (default) o replace"
// @Param payload body Envelope true "Envelope exportado"
// @Success 200 {object} Report
// @Failure 400 {string} string "json inválido / versión desconocida / registro malformado (se nombra el ofensor)"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /import [post]
func importHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		mode := Mode(strings.TrimSpace(r.URL.Query().Get("mode")))
		if mode == "" {
			mode = ModeMerge
		}

		var env Envelope
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEnvelopeBytes))
		if err := dec.Decode(&env); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		report, err := svc.Import(r.Context(), claims.UserID, env, mode)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrUnknownVersion) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

// writeJSON está duplicado intencionalmente por módulo (ver encounters/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

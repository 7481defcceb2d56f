package backup

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cat-a-log/internal/domain/encounters"
	"cat-a-log/internal/domain/photos"
	"cat-a-log/internal/domain/preferences"
	"cat-a-log/internal/platform/logger"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnknownVersion = errors.New("unknown envelope version")
)

type Mode string

const (
	ModeMerge   Mode = "merge"
	ModeReplace Mode = "replace"
)

// Report resume lo que hizo un import. Los conflictos (mismo instante de
// updated_at) no son errores: salen acá para que el cliente los resuelva.
type Report struct {
	Mode           Mode       `json:"mode"`
	Added          int        `json:"added"`
	Updated        int        `json:"updated"`
	Kept           int        `json:"kept"`
	Conflicts      []Conflict `json:"conflicts"`
	PhotosImported int        `json:"photos_imported"`
}

type Conflict struct {
	Local    Record `json:"local"`
	Imported Record `json:"imported"`
}

type Service struct {
	encountersSvc *encounters.Service
	photosSvc     *photos.Service
	prefsSvc      *preferences.Service

	log logger.Logger
	now func() time.Time
}

func NewService(encountersSvc *encounters.Service, photosSvc *photos.Service, prefsSvc *preferences.Service, log logger.Logger) *Service {
	return &Service{
		encountersSvc: encountersSvc,
		photosSvc:     photosSvc,
		prefsSvc:      prefsSvc,
		log:           log,
		now:           time.Now,
	}
}

// Export arma el envelope completo del owner: registros, fotos referenciadas
// (base64) y preferencias si existen.
func (s *Service) Export(ctx context.Context, ownerUserID string) (Envelope, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Envelope{}, ErrInvalidInput
	}

	items, err := s.encountersSvc.AllByOwner(ctx, ownerUserID)
	if err != nil {
		return Envelope{}, fmt.Errorf("export: list encounters: %w", err)
	}

	records := make([]Record, 0, len(items))
	photoMap := make(map[string]string)
	for _, e := range items {
		records = append(records, toRecord(e))

		if e.PhotoID == "" {
			continue
		}
		p, err := s.photosSvc.GetByID(ctx, e.PhotoID)
		if err != nil || p.OwnerUserID != ownerUserID {
			// Referencia huérfana o a un blob ajeno: se exporta el registro sin su foto.
			continue
		}
		photoMap[p.ID] = base64.StdEncoding.EncodeToString(p.Data)
	}

	env := Envelope{
		Version:    Version,
		ExportedAt: s.now().UTC(),
		Encounters: records,
		Metadata: &Metadata{
			App:         "cat-a-log",
			RecordCount: len(records),
		},
	}
	if len(photoMap) > 0 {
		env.Photos = photoMap
	}

	if p, err := s.prefsSvc.Get(ctx, ownerUserID); err == nil && len(p.Data) > 0 {
		env.Prefs = p.Data
	}

	return env, nil
}

// Import valida el envelope y aplica merge o replace. Cualquier registro
// malformado aborta el import completo nombrando al registro ofensor:
// preferimos rechazar a sesgar la resolución en silencio.
func (s *Service) Import(ctx context.Context, ownerUserID string, env Envelope, mode Mode) (Report, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Report{}, ErrInvalidInput
	}
	if env.Version != Version {
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownVersion, env.Version)
	}
	if mode != ModeMerge && mode != ModeReplace {
		return Report{}, fmt.Errorf("%w: mode must be merge or replace", ErrInvalidInput)
	}

	// Gate estructural: todo registro externo pasa por el validador antes
	// de tocar el merge. El merge confía en sus entradas.
	imported := make([]encounters.Encounter, 0, len(env.Encounters))
	for i, rec := range env.Encounters {
		e, err := parseRecord(i, rec, ownerUserID)
		if err != nil {
			return Report{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		imported = append(imported, e)
	}

	switch mode {
	case ModeReplace:
		return s.importReplace(ctx, ownerUserID, env, imported)
	default:
		return s.importMerge(ctx, ownerUserID, env, imported)
	}
}

func (s *Service) importMerge(ctx context.Context, ownerUserID string, env Envelope, imported []encounters.Encounter) (Report, error) {
	local, err := s.encountersSvc.AllByOwner(ctx, ownerUserID)
	if err != nil {
		return Report{}, fmt.Errorf("import: list local encounters: %w", err)
	}

	result, err := encounters.Merge(local, imported)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Validar todo el envelope antes de persistir nada: un payload inválido
	// no puede dejar la colección reemplazada a medias.
	pending, err := s.decodePhotos(ctx, ownerUserID, env.Photos, result.Merged)
	if err != nil {
		return Report{}, err
	}
	if err := checkPrefs(env.Prefs); err != nil {
		return Report{}, err
	}

	if err := s.encountersSvc.ReplaceCollection(ctx, ownerUserID, result.Merged); err != nil {
		return Report{}, fmt.Errorf("import: persist merged collection: %w", err)
	}

	report := Report{Mode: ModeMerge, Conflicts: make([]Conflict, 0, len(result.Conflicts))}

	localByID := make(map[string]encounters.Encounter, len(local))
	for _, e := range local {
		localByID[e.ID] = e
	}
	for _, c := range result.Conflicts {
		report.Conflicts = append(report.Conflicts, Conflict{
			Local:    toRecord(c.Local),
			Imported: toRecord(c.Imported),
		})
	}
	for _, e := range result.Merged {
		prev, existed := localByID[e.ID]
		switch {
		case !existed:
			report.Added++
		case e.UpdatedAt.After(prev.UpdatedAt):
			report.Updated++
		default:
			// Incluye empates (se retuvo el local) y locales intactos.
			report.Kept++
		}
	}

	report.PhotosImported, err = s.storePhotos(ctx, ownerUserID, pending)
	if err != nil {
		return Report{}, err
	}

	if err := s.importPrefs(ctx, ownerUserID, env.Prefs); err != nil {
		return Report{}, err
	}

	s.log.Info("import merged", map[string]any{
		"owner":     ownerUserID,
		"added":     report.Added,
		"updated":   report.Updated,
		"kept":      report.Kept,
		"conflicts": len(report.Conflicts),
		"photos":    report.PhotosImported,
	})

	return report, nil
}

func (s *Service) importReplace(ctx context.Context, ownerUserID string, env Envelope, imported []encounters.Encounter) (Report, error) {
	// Replace también exige ids únicos; reutilizamos el chequeo del merge
	// contra una colección local vacía.
	if _, err := encounters.Merge(nil, imported); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	pending, err := s.decodePhotos(ctx, ownerUserID, env.Photos, imported)
	if err != nil {
		return Report{}, err
	}
	if err := checkPrefs(env.Prefs); err != nil {
		return Report{}, err
	}

	if err := s.encountersSvc.ReplaceCollection(ctx, ownerUserID, imported); err != nil {
		return Report{}, fmt.Errorf("import: persist collection: %w", err)
	}

	report := Report{Mode: ModeReplace, Added: len(imported), Conflicts: []Conflict{}}

	report.PhotosImported, err = s.storePhotos(ctx, ownerUserID, pending)
	if err != nil {
		return Report{}, err
	}

	if err := s.importPrefs(ctx, ownerUserID, env.Prefs); err != nil {
		return Report{}, err
	}

	s.log.Info("import replaced", map[string]any{
		"owner":   ownerUserID,
		"records": report.Added,
		"photos":  report.PhotosImported,
	})

	return report, nil
}

// decodePhotos valida las fotos del envelope que referencia la colección final,
// antes de que el import persista nada: base64 correcto, tamaño, imagen
// decodificable y ningún id pisando el blob de otro usuario. La foto de un
// registro que perdió el merge se ignora junto con el registro. Devuelve los
// bytes pendientes de guardar.
func (s *Service) decodePhotos(ctx context.Context, ownerUserID string, photoMap map[string]string, final []encounters.Encounter) (map[string][]byte, error) {
	if len(photoMap) == 0 {
		return nil, nil
	}

	referenced := make(map[string]struct{}, len(final))
	for _, e := range final {
		if e.PhotoID != "" {
			referenced[e.PhotoID] = struct{}{}
		}
	}

	pending := make(map[string][]byte)
	for id, b64 := range photoMap {
		if _, ok := referenced[id]; !ok {
			continue
		}
		if p, err := s.photosSvc.GetByID(ctx, id); err == nil {
			if p.OwnerUserID != ownerUserID {
				return nil, fmt.Errorf("%w: photo %s belongs to another user", ErrInvalidInput, id)
			}
			continue // ya la tenemos
		}

		data, err := decodePhoto(b64)
		if err != nil {
			return nil, fmt.Errorf("%w: photo %s: %v", ErrInvalidInput, id, err)
		}
		if len(data) == 0 || len(data) > photos.MaxUploadBytes {
			return nil, fmt.Errorf("%w: photo %s: empty or too large", ErrInvalidInput, id)
		}
		if _, err := photos.Downscale(data); err != nil {
			return nil, fmt.Errorf("%w: photo %s is not a decodable image", ErrInvalidInput, id)
		}
		pending[id] = data
	}
	return pending, nil
}

func (s *Service) storePhotos(ctx context.Context, ownerUserID string, pending map[string][]byte) (int, error) {
	count := 0
	for id, data := range pending {
		if _, err := s.photosSvc.StoreImported(ctx, ownerUserID, id, data); err != nil {
			return count, fmt.Errorf("import: store photo %s: %w", id, err)
		}
		count++
	}
	return count, nil
}

func checkPrefs(prefs json.RawMessage) error {
	if len(prefs) == 0 || string(prefs) == "null" {
		return nil
	}
	if !json.Valid(prefs) {
		return fmt.Errorf("%w: preferences must be valid JSON", ErrInvalidInput)
	}
	return nil
}

func (s *Service) importPrefs(ctx context.Context, ownerUserID string, prefs json.RawMessage) error {
	if len(prefs) == 0 || string(prefs) == "null" {
		return nil
	}
	if _, err := s.prefsSvc.Put(ctx, ownerUserID, prefs); err != nil {
		return fmt.Errorf("%w: preferences must be valid JSON", ErrInvalidInput)
	}
	return nil
}

// decodePhoto acepta base64 plano (nuestros exports) y data URLs
// ("data:image/jpeg;base64,...") de exports del cliente web.
func decodePhoto(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx < 0 {
			return nil, errors.New("malformed data URL")
		}
		s = s[idx+1:]
	}
	return base64.StdEncoding.DecodeString(s)
}

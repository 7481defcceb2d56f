package backup

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	mem "cat-a-log/internal/adapters/storage/memory"
	"cat-a-log/internal/domain/encounters"
	"cat-a-log/internal/domain/photos"
	"cat-a-log/internal/domain/preferences"
	"cat-a-log/internal/platform/logger"
)

type testStack struct {
	backup     *Service
	encounters *encounters.Service
	photos     *photos.Service
	prefs      *preferences.Service
}

func newTestStack() testStack {
	encountersSvc := encounters.NewService(mem.NewEncounterRepo())
	photosSvc := photos.NewService(mem.NewPhotoRepo())
	prefsSvc := preferences.NewService(mem.NewPreferencesRepo())

	log := logger.New(logger.Options{Level: logger.Error})

	return testStack{
		backup:     NewService(encountersSvc, photosSvc, prefsSvc, log),
		encounters: encountersSvc,
		photos:     photosSvc,
		prefs:      prefsSvc,
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func wireRecord(id, updatedAt string) Record {
	return Record{
		ID:        id,
		SpottedAt: updatedAt,
		Color:     encounters.ColorTabby,
		CoatType:  encounters.CoatShorthair,
		Behavior:  encounters.BehaviorFriendly,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}

func TestExport_Empty(t *testing.T) {
	s := newTestStack()

	env, err := s.backup.Export(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Version != Version {
		t.Fatalf("expected version %q, got %q", Version, env.Version)
	}
	if len(env.Encounters) != 0 {
		t.Fatalf("expected empty export, got %d records", len(env.Encounters))
	}
	if env.Metadata == nil || env.Metadata.RecordCount != 0 {
		t.Fatalf("expected metadata with record_count=0, got %+v", env.Metadata)
	}
}

func TestExportImport_RoundTripWithPhotoAndPrefs(t *testing.T) {
	ctx := context.Background()
	src := newTestStack()

	e, err := src.encounters.Create(ctx, "owner-1", encounters.CreateInput{
		SpottedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		LocationName: "Lavapiés",
		Color:        encounters.ColorTuxedo,
		Behavior:     encounters.BehaviorSleeping,
		Notes:        "siesta al sol",
	})
	if err != nil {
		t.Fatalf("create encounter: %v", err)
	}

	p, err := src.photos.Store(ctx, "owner-1", pngBytes(t, 64, 48))
	if err != nil {
		t.Fatalf("store photo: %v", err)
	}
	// AttachPhoto avanza updated_at; comparar contra esta versión, no la del Create.
	e, err = src.encounters.AttachPhoto(ctx, e.ID, "owner-1", p.ID)
	if err != nil {
		t.Fatalf("attach photo: %v", err)
	}

	if _, err := src.prefs.Put(ctx, "owner-1", json.RawMessage(`{"theme":"dark"}`)); err != nil {
		t.Fatalf("put prefs: %v", err)
	}

	env, err := src.backup.Export(ctx, "owner-1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(env.Encounters) != 1 || len(env.Photos) != 1 {
		t.Fatalf("expected 1 record + 1 photo, got %d / %d", len(env.Encounters), len(env.Photos))
	}
	if len(env.Prefs) == 0 {
		t.Fatalf("expected preferences in envelope")
	}

	// Importar en un dispositivo "nuevo" (otro stack, mismo usuario).
	dst := newTestStack()
	report, err := dst.backup.Import(ctx, "owner-1", env, ModeMerge)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Added != 1 || report.Updated != 0 || report.Kept != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %d", len(report.Conflicts))
	}
	if report.PhotosImported != 1 {
		t.Fatalf("expected 1 photo imported, got %d", report.PhotosImported)
	}

	got, err := dst.encounters.AllByOwner(ctx, "owner-1")
	if err != nil || len(got) != 1 {
		t.Fatalf("expected 1 encounter after import, got %d (err=%v)", len(got), err)
	}
	if got[0].ID != e.ID || got[0].Notes != "siesta al sol" {
		t.Fatalf("record did not survive round trip: %+v", got[0])
	}
	if !got[0].UpdatedAt.Equal(e.UpdatedAt) {
		t.Fatalf("updated_at changed in round trip: %v vs %v", got[0].UpdatedAt, e.UpdatedAt)
	}

	if _, err := dst.photos.GetByID(ctx, p.ID); err != nil {
		t.Fatalf("photo missing after import: %v", err)
	}

	prefs, err := dst.prefs.Get(ctx, "owner-1")
	if err != nil || !strings.Contains(string(prefs.Data), "dark") {
		t.Fatalf("preferences missing after import: %v %s", err, prefs.Data)
	}
}

func TestImport_MergeNewerImportedWins(t *testing.T) {
	ctx := context.Background()
	s := newTestStack()

	local, err := s.encounters.Create(ctx, "owner-1", encounters.CreateInput{
		SpottedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Notes:     "versión local",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newer := local.UpdatedAt.Add(time.Hour).UTC().Format(time.RFC3339Nano)
	rec := wireRecord(local.ID, newer)
	rec.SpottedAt = local.SpottedAt.UTC().Format(time.RFC3339Nano)
	rec.Notes = "versión importada"

	report, err := s.backup.Import(ctx, "owner-1", Envelope{
		Version:    Version,
		Encounters: []Record{rec},
	}, ModeMerge)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Updated != 1 || report.Added != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	got, _ := s.encounters.AllByOwner(ctx, "owner-1")
	if len(got) != 1 || got[0].Notes != "versión importada" {
		t.Fatalf("imported record should have won: %+v", got)
	}
}

func TestImport_EqualInstantReportsConflictAndKeepsLocal(t *testing.T) {
	ctx := context.Background()
	s := newTestStack()

	local, err := s.encounters.Create(ctx, "owner-1", encounters.CreateInput{
		SpottedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Notes:     "local",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	same := local.UpdatedAt.UTC().Format(time.RFC3339Nano)
	rec := wireRecord(local.ID, same)
	rec.Notes = "imported"

	report, err := s.backup.Import(ctx, "owner-1", Envelope{
		Version:    Version,
		Encounters: []Record{rec},
	}, ModeMerge)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if len(report.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(report.Conflicts))
	}
	if report.Kept != 1 {
		t.Fatalf("tie must count as kept: %+v", report)
	}
	c := report.Conflicts[0]
	if c.Local.Notes != "local" || c.Imported.Notes != "imported" {
		t.Fatalf("conflict pair mixed up: %+v", c)
	}

	got, _ := s.encounters.AllByOwner(ctx, "owner-1")
	if len(got) != 1 || got[0].Notes != "local" {
		t.Fatalf("tie must retain local record: %+v", got)
	}
}

func TestImport_ReplaceDropsLocalOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestStack()

	if _, err := s.encounters.Create(ctx, "owner-1", encounters.CreateInput{
		SpottedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Notes:     "se va",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rec := wireRecord("imported-1", "2024-06-01T00:00:00Z")
	report, err := s.backup.Import(ctx, "owner-1", Envelope{
		Version:    Version,
		Encounters: []Record{rec},
	}, ModeReplace)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Mode != ModeReplace || report.Added != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	got, _ := s.encounters.AllByOwner(ctx, "owner-1")
	if len(got) != 1 || got[0].ID != "imported-1" {
		t.Fatalf("replace must drop local-only records: %+v", got)
	}
}

func TestImport_RejectsMalformedInput(t *testing.T) {
	ctx := context.Background()
	s := newTestStack()

	// Versión desconocida
	if _, err := s.backup.Import(ctx, "owner-1", Envelope{Version: "99"}, ModeMerge); !errors.Is(err, ErrUnknownVersion) {
		t.Fatalf("expected ErrUnknownVersion, got %v", err)
	}

	// Modo inválido
	if _, err := s.backup.Import(ctx, "owner-1", Envelope{Version: Version}, Mode("upsert")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad mode, got %v", err)
	}

	// Timestamp no parseable: falla todo el import y nombra al registro.
	bad := wireRecord("bad-ts", "2024-06-01T00:00:00Z")
	bad.UpdatedAt = "yesterday-ish"
	_, err := s.backup.Import(ctx, "owner-1", Envelope{
		Version:    Version,
		Encounters: []Record{bad},
	}, ModeMerge)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "bad-ts") {
		t.Fatalf("error should name the offending record: %v", err)
	}

	// Coordenadas fuera de rango
	lat, lon := 95.0, 10.0
	outOfRange := wireRecord("bad-coords", "2024-06-01T00:00:00Z")
	outOfRange.Latitude = &lat
	outOfRange.Longitude = &lon
	if _, err := s.backup.Import(ctx, "owner-1", Envelope{
		Version:    Version,
		Encounters: []Record{outOfRange},
	}, ModeMerge); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad coords, got %v", err)
	}

	// Ids duplicados dentro del envelope
	dup := wireRecord("dup", "2024-06-01T00:00:00Z")
	if _, err := s.backup.Import(ctx, "owner-1", Envelope{
		Version:    Version,
		Encounters: []Record{dup, dup},
	}, ModeMerge); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate ids, got %v", err)
	}

	// Nada debe haberse persistido.
	got, _ := s.encounters.AllByOwner(ctx, "owner-1")
	if len(got) != 0 {
		t.Fatalf("failed imports must not persist records: %+v", got)
	}
}

func TestImport_InvalidPhotoOrPrefsPersistsNothing(t *testing.T) {
	ctx := context.Background()
	s := newTestStack()

	local, err := s.encounters.Create(ctx, "owner-1", encounters.CreateInput{
		SpottedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Notes:     "intacto",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rec := wireRecord("new-rec", "2024-06-01T00:00:00Z")
	rec.PhotoID = "p1"

	// Base64 roto: el import completo falla antes de tocar la colección.
	_, err = s.backup.Import(ctx, "owner-1", Envelope{
		Version:    Version,
		Encounters: []Record{rec},
		Photos:     map[string]string{"p1": "%%%not-base64%%%"},
	}, ModeMerge)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad base64, got %v", err)
	}

	// Bytes que no son una imagen decodificable.
	_, err = s.backup.Import(ctx, "owner-1", Envelope{
		Version:    Version,
		Encounters: []Record{rec},
		Photos:     map[string]string{"p1": base64.StdEncoding.EncodeToString([]byte("no soy una imagen"))},
	}, ModeMerge)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-image bytes, got %v", err)
	}

	// Preferencias con JSON inválido: también aborta el import entero.
	plain := wireRecord("new-rec-2", "2024-06-01T00:00:00Z")
	_, err = s.backup.Import(ctx, "owner-1", Envelope{
		Version:    Version,
		Encounters: []Record{plain},
		Prefs:      json.RawMessage(`{"broken"`),
	}, ModeMerge)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for broken prefs, got %v", err)
	}

	// Lo mismo en modo replace.
	_, err = s.backup.Import(ctx, "owner-1", Envelope{
		Version:    Version,
		Encounters: []Record{rec},
		Photos:     map[string]string{"p1": "%%%not-base64%%%"},
	}, ModeReplace)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput in replace mode, got %v", err)
	}

	// La colección local sigue como estaba: ningún import fallido persiste nada.
	got, _ := s.encounters.AllByOwner(ctx, "owner-1")
	if len(got) != 1 || got[0].ID != local.ID || got[0].Notes != "intacto" {
		t.Fatalf("failed import must not replace the collection: %+v", got)
	}
	if _, err := s.photos.GetByID(ctx, "p1"); err == nil {
		t.Fatalf("failed import must not store photos")
	}
	if _, err := s.prefs.Get(ctx, "owner-1"); err == nil {
		t.Fatalf("failed import must not store preferences")
	}
}

func TestImportExport_PhotoOwnershipScoped(t *testing.T) {
	ctx := context.Background()
	s := newTestStack()

	// Otro usuario ya tiene un blob con este id.
	foreign, err := s.photos.Store(ctx, "owner-2", pngBytes(t, 16, 16))
	if err != nil {
		t.Fatalf("store foreign photo: %v", err)
	}

	rec := wireRecord("rec-1", "2024-06-01T00:00:00Z")
	rec.PhotoID = foreign.ID

	// El envelope trae bytes bajo el id ajeno: rechazar, no pisar el blob.
	_, err = s.backup.Import(ctx, "owner-1", Envelope{
		Version:    Version,
		Encounters: []Record{rec},
		Photos:     map[string]string{foreign.ID: base64.StdEncoding.EncodeToString(pngBytes(t, 16, 16))},
	}, ModeMerge)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for foreign photo id, got %v", err)
	}
	if !strings.Contains(err.Error(), foreign.ID) {
		t.Fatalf("error should name the photo id: %v", err)
	}
	kept, err := s.photos.GetByID(ctx, foreign.ID)
	if err != nil || kept.OwnerUserID != "owner-2" {
		t.Fatalf("foreign blob must stay untouched: %+v err=%v", kept, err)
	}

	// Sin bytes en el envelope el registro entra con su photo_id colgante,
	// pero el export no arrastra el blob de otro usuario.
	if _, err := s.backup.Import(ctx, "owner-1", Envelope{
		Version:    Version,
		Encounters: []Record{rec},
	}, ModeMerge); err != nil {
		t.Fatalf("import without photo bytes: %v", err)
	}

	env, err := s.backup.Export(ctx, "owner-1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(env.Photos) != 0 {
		t.Fatalf("export must not embed another user's photo, got %d", len(env.Photos))
	}
}

func TestImport_AcceptsDataURLPhotos(t *testing.T) {
	ctx := context.Background()
	s := newTestStack()

	// Primero metemos la foto por el camino normal para obtener un JPEG válido.
	tmp := newTestStack()
	p, err := tmp.photos.Store(ctx, "owner-1", pngBytes(t, 32, 32))
	if err != nil {
		t.Fatalf("store: %v", err)
	}

	rec := wireRecord("with-photo", "2024-06-01T00:00:00Z")
	rec.PhotoID = "photo-1"

	env := Envelope{
		Version:    Version,
		Encounters: []Record{rec},
		Photos: map[string]string{
			"photo-1": "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(p.Data),
		},
	}

	report, err := s.backup.Import(ctx, "owner-1", env, ModeMerge)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.PhotosImported != 1 {
		t.Fatalf("expected 1 photo imported, got %d", report.PhotosImported)
	}
	if _, err := s.photos.GetByID(ctx, "photo-1"); err != nil {
		t.Fatalf("photo missing: %v", err)
	}
}

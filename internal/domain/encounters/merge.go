package encounters

import "fmt"

// ConflictPair es un empate exacto de updated_at entre el registro local y el
// importado. El merge retiene el local; quien llama decide qué hacer con el par.
type ConflictPair struct {
	Local    Encounter
	Imported Encounter
}

type MergeResult struct {
	Merged    []Encounter
	Conflicts []ConflictPair
}

// Merge reconcilia la colección local con una importada por id:
//   - id solo en imported => entra tal cual (registro nuevo)
//   - id en ambas => gana el updated_at estrictamente más reciente
//   - updated_at igual => conflicto; se retiene el local y el par sale en Conflicts
//   - id solo en local => se conserva tal cual
//
// Orden de salida: registros importados/matcheados en el orden de imported,
// luego los solo-locales en su orden original.
//
// Precondiciones (violarlas es error, no adivinamos): ids únicos dentro de cada
// colección y updated_at distinto de cero en todos los registros. No se mutan
// las entradas; Merged y Conflicts son slices nuevos.
func Merge(local, imported []Encounter) (MergeResult, error) {
	byID := make(map[string]Encounter, len(local))
	for _, e := range local {
		if e.ID == "" {
			return MergeResult{}, fmt.Errorf("merge: local record without id")
		}
		if e.UpdatedAt.IsZero() {
			return MergeResult{}, fmt.Errorf("merge: local record %s has zero updated_at", e.ID)
		}
		if _, dup := byID[e.ID]; dup {
			return MergeResult{}, fmt.Errorf("merge: duplicate id %s in local collection", e.ID)
		}
		byID[e.ID] = e
	}

	seen := make(map[string]struct{}, len(imported))
	merged := make([]Encounter, 0, len(local)+len(imported))
	var conflicts []ConflictPair

	for _, imp := range imported {
		if imp.ID == "" {
			return MergeResult{}, fmt.Errorf("merge: imported record without id")
		}
		if imp.UpdatedAt.IsZero() {
			return MergeResult{}, fmt.Errorf("merge: imported record %s has zero updated_at", imp.ID)
		}
		if _, dup := seen[imp.ID]; dup {
			return MergeResult{}, fmt.Errorf("merge: duplicate id %s in imported collection", imp.ID)
		}
		seen[imp.ID] = struct{}{}

		loc, ok := byID[imp.ID]
		if !ok {
			merged = append(merged, imp)
			continue
		}
		delete(byID, imp.ID)

		switch {
		case imp.UpdatedAt.After(loc.UpdatedAt):
			merged = append(merged, imp)
		case loc.UpdatedAt.After(imp.UpdatedAt):
			merged = append(merged, loc)
		default:
			// Mismo instante: retener lo pre-existente.
			conflicts = append(conflicts, ConflictPair{Local: loc, Imported: imp})
			merged = append(merged, loc)
		}
	}

	// Barrido final: locales que nunca aparecieron en imported, en su orden original.
	for _, e := range local {
		if _, pending := byID[e.ID]; pending {
			merged = append(merged, e)
		}
	}

	return MergeResult{Merged: merged, Conflicts: conflicts}, nil
}

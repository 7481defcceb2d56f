package encounters

import (
	"testing"
	"time"
)

func validRecord() Encounter {
	lat, lon := 40.4168, -3.7038
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return Encounter{
		ID:           "enc-1",
		OwnerUserID:  "owner-1",
		SpottedAt:    t0,
		LocationName: "Parque del Retiro",
		Latitude:     &lat,
		Longitude:    &lon,
		Color:        ColorTabby,
		CoatType:     CoatShorthair,
		Behavior:     BehaviorFriendly,
		CreatedAt:    t0,
		UpdatedAt:    t0,
	}
}

func TestValidate_OK(t *testing.T) {
	if errs := Validate(validRecord()); len(errs) != 0 {
		t.Fatalf("expected valid record, got %v", errs)
	}

	// Coordenadas y categóricos son opcionales.
	e := validRecord()
	e.Latitude = nil
	e.Longitude = nil
	e.Color = ""
	e.CoatType = ""
	e.Behavior = ""
	if errs := Validate(e); len(errs) != 0 {
		t.Fatalf("expected valid record without optionals, got %v", errs)
	}
}

func TestValidate_Failures(t *testing.T) {
	outLat := 91.0
	outLon := -181.0
	lon := 10.0

	cases := []struct {
		name   string
		mutate func(*Encounter)
		field  string
	}{
		{"missing id", func(e *Encounter) { e.ID = "  " }, "id"},
		{"zero updated_at", func(e *Encounter) { e.UpdatedAt = time.Time{} }, "updated_at"},
		{"zero spotted_at", func(e *Encounter) { e.SpottedAt = time.Time{} }, "spotted_at"},
		{"latitude out of range", func(e *Encounter) { e.Latitude = &outLat }, "latitude"},
		{"longitude out of range", func(e *Encounter) { e.Longitude = &outLon }, "longitude"},
		{"lonely coordinate", func(e *Encounter) { e.Latitude = nil; e.Longitude = &lon }, "coordinates"},
		{"unknown color", func(e *Encounter) { e.Color = "plaid" }, "color"},
		{"unknown coat type", func(e *Encounter) { e.CoatType = "curly" }, "coat_type"},
		{"unknown behavior", func(e *Encounter) { e.Behavior = "levitating" }, "behavior"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := validRecord()
			tc.mutate(&e)

			errs := Validate(e)
			if len(errs) == 0 {
				t.Fatalf("expected validation error for %s", tc.name)
			}
			found := false
			for _, fe := range errs {
				if fe.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected error on field %s, got %v", tc.field, errs)
			}
		})
	}
}

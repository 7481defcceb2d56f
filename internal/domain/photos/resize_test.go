package photos

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 60, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid jpeg: %v", err)
	}
	return img
}

func TestDownscale_SmallImageKeepsSize(t *testing.T) {
	out, err := Downscale(encodePNG(t, 640, 480))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img := decodeJPEG(t, out)
	b := img.Bounds()
	if b.Dx() != 640 || b.Dy() != 480 {
		t.Fatalf("small image must not be scaled, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestDownscale_LargeImageCapsLongEdge(t *testing.T) {
	// Landscape
	out, err := Downscale(encodePNG(t, 3200, 1800))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := decodeJPEG(t, out).Bounds()
	if b.Dx() != MaxEdge {
		t.Fatalf("expected long edge %d, got %d", MaxEdge, b.Dx())
	}
	if b.Dy() != 900 {
		t.Fatalf("aspect ratio not preserved, got %dx%d", b.Dx(), b.Dy())
	}

	// Portrait
	out, err = Downscale(encodePNG(t, 1800, 3200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b = decodeJPEG(t, out).Bounds()
	if b.Dy() != MaxEdge || b.Dx() != 900 {
		t.Fatalf("portrait not capped correctly, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestDownscale_RejectsNonImage(t *testing.T) {
	if _, err := Downscale([]byte("definitivamente no es una imagen")); err == nil {
		t.Fatalf("expected error for non-image data")
	}
}

// -------------------------
// Service
// -------------------------

type testPhotoRepo struct {
	byID map[string]Photo
}

func newTestPhotoRepo() *testPhotoRepo {
	return &testPhotoRepo{byID: map[string]Photo{}}
}

func (r *testPhotoRepo) Put(ctx context.Context, p Photo) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testPhotoRepo) GetByID(ctx context.Context, id string) (Photo, error) {
	p, ok := r.byID[id]
	if !ok {
		return Photo{}, ErrNotFound
	}
	return p, nil
}

func (r *testPhotoRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *testPhotoRepo) ListByOwner(ctx context.Context, owner string) ([]Photo, error) {
	out := make([]Photo, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestService_Store_DownscalesAndAssignsID(t *testing.T) {
	svc := NewService(newTestPhotoRepo())
	ctx := context.Background()

	p, err := svc.Store(ctx, "owner-1", encodePNG(t, 2000, 1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
	if p.ContentType != "image/jpeg" {
		t.Fatalf("stored photos must be jpeg, got %q", p.ContentType)
	}
	b := decodeJPEG(t, p.Data).Bounds()
	if b.Dx() != MaxEdge {
		t.Fatalf("expected downscaled width %d, got %d", MaxEdge, b.Dx())
	}

	if _, err := svc.Store(ctx, "owner-1", []byte("garbage")); err == nil {
		t.Fatalf("expected error for non-image upload")
	}
	if _, err := svc.Store(ctx, "owner-1", nil); err == nil {
		t.Fatalf("expected error for empty upload")
	}
}

func TestService_StoreImported_KeepsGivenID(t *testing.T) {
	svc := NewService(newTestPhotoRepo())
	ctx := context.Background()

	p, err := svc.StoreImported(ctx, "owner-1", "photo-abc", encodePNG(t, 100, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "photo-abc" {
		t.Fatalf("imported photo must keep its id, got %q", p.ID)
	}

	got, err := svc.GetByID(ctx, "photo-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ContentType != "image/jpeg" {
		t.Fatalf("imported photos are reencoded to jpeg, got %q", got.ContentType)
	}
}

func TestService_Delete_OwnerScoped(t *testing.T) {
	svc := NewService(newTestPhotoRepo())
	ctx := context.Background()

	p, err := svc.Store(ctx, "owner-1", encodePNG(t, 32, 32))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(ctx, p.ID, "owner-2"); err == nil {
		t.Fatalf("expected error deleting foreign photo")
	}
	if err := svc.Delete(ctx, p.ID, "owner-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetByID(ctx, p.ID); err == nil {
		t.Fatalf("expected not found after delete")
	}
}

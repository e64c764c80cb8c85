package uploads

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestService(t *testing.T) (*Service, *Store) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewStore(filepath.Join(dir, "meta.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	svc, err := NewService(Options{
		Dir:          filepath.Join(dir, "files"),
		MaxSizeBytes: 1024,
		AllowedMIMEs: []string{"text/plain", "image/png"},
	}, store)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func multipartFile(t *testing.T, name, mime string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="file"; filename="` + name + `"`}
	h["Content-Type"] = []string{mime}
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	part.Write(content)
	w.Close()

	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	file, header, err := req.FormFile("file")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	return file, header
}

func TestSaveAndRecord(t *testing.T) {
	svc, store := newTestService(t)

	file, header := multipartFile(t, "notes.txt", "text/plain", []byte("hello"))
	att, err := svc.Save(context.Background(), file, header, "alice")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if att.OriginalName != "notes.txt" || att.Mime != "text/plain" || att.Size != 5 {
		t.Fatalf("unexpected attachment: %+v", att)
	}

	// The file should exist on disk under the service dir.
	matches, _ := filepath.Glob(filepath.Join(svc.Dir(), "*.txt"))
	if len(matches) != 1 {
		t.Fatalf("expected 1 stored file, found %d", len(matches))
	}

	// Metadata should be queryable.
	expired, err := store.ExpiredBefore(context.Background(), time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("ExpiredBefore: %v", err)
	}
	if len(expired) != 1 || expired[0].UploadedBy != "alice" {
		t.Fatalf("unexpected metadata rows: %+v", expired)
	}
}

func TestRejectsDisallowedMime(t *testing.T) {
	svc, _ := newTestService(t)

	file, header := multipartFile(t, "payload.bin", "application/octet-stream", []byte{0x1})
	if _, err := svc.Save(context.Background(), file, header, "bob"); err != ErrRejectedType {
		t.Fatalf("err = %v, want ErrRejectedType", err)
	}
}

func TestRejectsOversizedFile(t *testing.T) {
	svc, _ := newTestService(t)

	big := bytes.Repeat([]byte("x"), 2048)
	file, header := multipartFile(t, "big.txt", "text/plain", big)
	if _, err := svc.Save(context.Background(), file, header, "bob"); err != ErrTooLarge {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

func TestSweepExpiredRemovesFileAndRow(t *testing.T) {
	svc, store := newTestService(t)

	file, header := multipartFile(t, "old.txt", "text/plain", []byte("stale"))
	if _, err := svc.Save(context.Background(), file, header, "alice"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	removed, err := svc.SweepExpired(context.Background(), time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	matches, _ := filepath.Glob(filepath.Join(svc.Dir(), "*"))
	if len(matches) != 0 {
		t.Fatalf("expected empty upload dir, found %v", matches)
	}

	rows, err := store.ExpiredBefore(context.Background(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("ExpiredBefore: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no metadata rows, found %d", len(rows))
	}
}

func TestSweepSkipsFreshFiles(t *testing.T) {
	svc, _ := newTestService(t)

	file, header := multipartFile(t, "fresh.txt", "text/plain", []byte("new"))
	if _, err := svc.Save(context.Background(), file, header, "alice"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	removed, err := svc.SweepExpired(context.Background(), time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}

	if _, err := os.Stat(svc.Dir()); err != nil {
		t.Fatalf("upload dir missing: %v", err)
	}
}

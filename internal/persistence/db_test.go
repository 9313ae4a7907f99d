package persistence

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/gravscroll/internal/gravity"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "params.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadParams_Empty(t *testing.T) {
	db := openTemp(t)

	p, err := db.LoadParams(gravity.DefaultParams())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p != gravity.DefaultParams() {
		t.Errorf("expected defaults, got %+v", p)
	}
}

func TestSaveLoadParams(t *testing.T) {
	db := openTemp(t)

	saved := gravity.DefaultParams()
	saved.G = 3.71
	saved.ScrollMultiplier = 75
	if err := db.SaveParams(saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	saved.G = 1.62
	if err := db.SaveParams(saved); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	p, err := db.LoadParams(gravity.DefaultParams())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p != saved {
		t.Errorf("expected %+v, got %+v", saved, p)
	}

	stored, at, err := db.Stored()
	if err != nil {
		t.Fatalf("stored failed: %v", err)
	}
	if len(stored) != 8 {
		t.Errorf("expected 8 rows, got %d", len(stored))
	}
	if at.IsZero() {
		t.Error("expected an update time")
	}
}

func TestLoadParams_SkipsUnknown(t *testing.T) {
	db := openTemp(t)

	if _, err := db.conn.Exec("INSERT INTO params (name, value, updated_at) VALUES ('mass', 3, 0), ('friction', 4, 0)"); err != nil {
		t.Fatal(err)
	}

	p, err := db.LoadParams(gravity.DefaultParams())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p.Friction != 4 {
		t.Errorf("expected friction 4, got %f", p.Friction)
	}
}

func TestResetParams(t *testing.T) {
	db := openTemp(t)

	p := gravity.DefaultParams()
	p.BounceFactor = 0.9
	if err := db.SaveParams(p); err != nil {
		t.Fatal(err)
	}
	if err := db.ResetParams(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	loaded, err := db.LoadParams(gravity.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if loaded != gravity.DefaultParams() {
		t.Errorf("expected defaults after reset, got %+v", loaded)
	}
}

func TestLoadParams_WarnsThroughLogger(t *testing.T) {
	db := openTemp(t)
	var buf bytes.Buffer
	db.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	if _, err := db.conn.Exec("INSERT INTO params (name, value, updated_at) VALUES ('mass', 3, 0)"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.LoadParams(gravity.DefaultParams()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !strings.Contains(buf.String(), "name=mass") {
		t.Errorf("expected a warning naming mass, got %q", buf.String())
	}
}

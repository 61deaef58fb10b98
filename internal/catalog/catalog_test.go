package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinCatalog(t *testing.T) {
	c := Builtin()

	def, ok := c.Get("date")
	if !ok {
		t.Fatalf("builtin catalog missing date")
	}
	if def.Label == "" || def.DefaultWidth <= 0 || def.DefaultHeight <= 0 {
		t.Fatalf("date definition incomplete: %+v", def)
	}

	if _, ok := c.Get("unknown-field"); ok {
		t.Fatalf("unexpected hit for unknown field")
	}

	if len(c.List()) == 0 {
		t.Fatalf("builtin catalog is empty")
	}
}

func TestLoadMissingFileFallsBackToBuiltin(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if _, ok := c.Get("payee"); !ok {
		t.Fatalf("fallback catalog missing payee")
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `
- key: date
  label: Issue Date
  default_width: 90
  default_height: 20
- key: routingNumber
  label: Routing Number
  default_width: 140
  default_height: 24
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write catalog file error: %v", err)
	}

	c := Load(path)

	date, ok := c.Get("date")
	if !ok || date.Label != "Issue Date" || date.DefaultWidth != 90 {
		t.Fatalf("override not applied: %+v", date)
	}
	extra, ok := c.Get("routingNumber")
	if !ok || extra.Label != "Routing Number" {
		t.Fatalf("new entry not loaded: %+v", extra)
	}
	// 预置条目仍然在
	if _, ok := c.Get("memo"); !ok {
		t.Fatalf("builtin entry lost after override load")
	}
}

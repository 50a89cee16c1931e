package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if !c.Query.FilterLanguage {
		t.Error("default config disables language filtering")
	}
}

func TestValidate(t *testing.T) {
	c := &Config{}
	if err := c.Validate(); err == nil {
		t.Error("empty search path passed validation")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
bundles:
  search_path:
    - /opt/lv2
  watch: true
query:
  filter_language: false
  languages: [de, en]
nats:
  url: nats://localhost:4222
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if len(c.Bundles.SearchPath) != 1 || c.Bundles.SearchPath[0] != "/opt/lv2" {
		t.Errorf("search path = %v", c.Bundles.SearchPath)
	}
	if !c.Bundles.Watch {
		t.Error("watch not parsed")
	}
	if c.Query.FilterLanguage {
		t.Error("filter_language override lost")
	}
	if len(c.Query.Languages) != 2 || c.Query.Languages[0] != "de" {
		t.Errorf("languages = %v", c.Query.Languages)
	}
	if c.NATS.URL != "nats://localhost:4222" {
		t.Errorf("nats url = %q", c.NATS.URL)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/no/such/file.yaml"); err == nil {
		t.Error("missing file did not error")
	}
}

func TestLoadFromFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("malformed file did not error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	orig := DefaultConfig()
	orig.Bundles.SearchPath = []string{"/opt/lv2"}
	orig.Query.Languages = []string{"fr"}

	if err := orig.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}
	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if loaded.Bundles.SearchPath[0] != "/opt/lv2" || loaded.Query.Languages[0] != "fr" {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}

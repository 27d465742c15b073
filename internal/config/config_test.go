package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.App.ModelDir = "model"
	cfg.Ensemble.DNN = 0.6
	cfg.Ensemble.Tree = 0.4
	cfg.Detector.EscalateCount = 4
	cfg.Analysis.BatchLimit = 50
	cfg.Enrichment.LookupPerHost = 0.5
	return cfg
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	if err := SaveAtomic(path, validConfig()); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.App.Port != 38471 || got.App.ModelDir != "model" {
		t.Fatalf("app section lost: %+v", got.App)
	}
	if got.Ensemble.DNN != 0.6 || got.Ensemble.Tree != 0.4 {
		t.Fatalf("ensemble lost: %+v", got.Ensemble)
	}
}

func TestSaveAtomicKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	if err := SaveAtomic(path, validConfig()); err != nil {
		t.Fatal(err)
	}
	second := validConfig()
	second.App.Port = 39000
	if err := SaveAtomic(path, second); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Fatalf("expected a .bak: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.App.Port != 39000 {
		t.Fatalf("got port %d", got.App.Port)
	}
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	cfg := validConfig()
	cfg.App.Port = -1
	if err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), cfg); err == nil {
		t.Fatal("expected validation failure")
	}
}

func TestValidation(t *testing.T) {
	_, vr := NormalizeAndValidate(validConfig())
	if !vr.OK() {
		t.Fatalf("valid config rejected: %v", vr.Errors)
	}

	bad := validConfig()
	bad.App.Port = 0
	bad.Detector.CapsRatio = 2
	bad.Ensemble.DNN = -1
	_, vr = NormalizeAndValidate(bad)
	if vr.OK() {
		t.Fatal("invalid config accepted")
	}
	if len(vr.Errors) < 3 {
		t.Fatalf("expected three errors, got %v", vr.Errors)
	}
}

func TestValidationWarnsOnUnsetLimits(t *testing.T) {
	cfg := validConfig()
	cfg.Analysis.BatchLimit = 0
	cfg.Detector.EscalateCount = 0
	_, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		t.Fatalf("warnings became errors: %v", vr.Errors)
	}
	if len(vr.Warnings) < 2 {
		t.Fatalf("expected warnings, got %v", vr.Warnings)
	}
}

func TestNormalizeBlockedDomains(t *testing.T) {
	cfg := validConfig()
	cfg.Enrichment.DomainsBlocked = []string{" Example.com ", "example.com", "", "other.net"}
	out, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		t.Fatalf("unexpected errors: %v", vr.Errors)
	}
	got := out.Enrichment.DomainsBlocked
	if len(got) != 2 || got[0] != "example.com" || got[1] != "other.net" {
		t.Fatalf("got %v", got)
	}
}

func TestEnsureUserConfigCopiesDefault(t *testing.T) {
	dir := t.TempDir()
	defaultPath := filepath.Join(dir, "default.yml")
	if err := os.WriteFile(defaultPath, []byte("app:\n  port: 1234\n  model_dir: m\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dataDir := filepath.Join(dir, "data")
	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(userPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Port != 1234 {
		t.Fatalf("seeded config lost: %+v", cfg.App)
	}

	// A second call must not clobber the user's copy.
	if err := os.WriteFile(userPath, []byte("app:\n  port: 9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureUserConfig(dataDir, defaultPath); err != nil {
		t.Fatal(err)
	}
	cfg, _ = Load(userPath)
	if cfg.App.Port != 9999 {
		t.Fatal("existing user config was overwritten")
	}
}

func TestBuildDetectorDefaults(t *testing.T) {
	det, err := BuildDetector(validConfig())
	if err != nil {
		t.Fatal(err)
	}
	if det.Catalog == nil {
		t.Fatal("nil catalog")
	}
	if det.EscalateCount != 4 {
		t.Fatalf("escalate count = %d", det.EscalateCount)
	}
}

func TestBuildDetectorMissingCatalogFallsBack(t *testing.T) {
	cfg := validConfig()
	cfg.Detector.CatalogPath = filepath.Join(t.TempDir(), "absent.yml")
	det, err := BuildDetector(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if det.Catalog == nil {
		t.Fatal("expected built-in catalog fallback")
	}
}

func TestBuildDetectorBrokenCatalogFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	if err := os.WriteFile(path, []byte("rules:\n  - name: x\n    severity: nope\n    any: [y]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := validConfig()
	cfg.Detector.CatalogPath = path
	if _, err := BuildDetector(cfg); err == nil {
		t.Fatal("expected an error for a broken catalog")
	}
}

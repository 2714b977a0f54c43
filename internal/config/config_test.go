package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_KeyPrefix(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.KeyPrefix = "dlf"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for key prefix without separator")
	}
	if !strings.Contains(err.Error(), "storage.key_prefix") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_RowsOrder(t *testing.T) {
	cfg := validConfig()
	cfg.Index.DefaultRows = 50
	cfg.Index.MaxRows = 10

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when default rows exceed max rows")
	}
}

func TestValidate_EmptyFileGroup(t *testing.T) {
	cfg := validConfig()
	cfg.Documents.FileGroups = []string{"DEFAULT", " "}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty file group")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 60 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected http defaults: %+v", cfg.HTTP)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Relational.Path != "data/dlfindex.db" {
		t.Errorf("expected default relational path, got %q", cfg.Relational.Path)
	}
	if cfg.Storage.KeyPrefix != "dlf:" {
		t.Errorf("expected KeyPrefix=dlf:, got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Index.DefaultRows != 20 || cfg.Index.MaxRows != 500 {
		t.Errorf("unexpected row defaults: %+v", cfg.Index)
	}
	if cfg.Index.MaxBatchSize != 100 || cfg.Index.BulkConcurrency != 4 {
		t.Errorf("unexpected bulk defaults: %+v", cfg.Index)
	}
	if cfg.Documents.CacheSize != 256 || cfg.Documents.FetchTimeoutSec != 30 || cfg.Documents.MaxBytes != 32<<20 {
		t.Errorf("unexpected document defaults: %+v", cfg.Documents)
	}
	if !reflect.DeepEqual(cfg.Documents.FileGroups, []string{"DEFAULT", "AUDIO", "FULLTEXT"}) {
		t.Errorf("unexpected file groups: %v", cfg.Documents.FileGroups)
	}
	if !reflect.DeepEqual(cfg.Documents.MediaGroups, []string{"AUDIO", "DEFAULT"}) {
		t.Errorf("unexpected media groups: %v", cfg.Documents.MediaGroups)
	}
}

func TestApplyDefaults_KeepsValues(t *testing.T) {
	cfg := Config{
		Index:     IndexConfig{DefaultRows: 5, MaxRows: 50},
		Documents: DocumentsConfig{FileGroups: []string{"MIN"}},
	}
	cfg.ApplyDefaults()

	if cfg.Index.DefaultRows != 5 || cfg.Index.MaxRows != 50 {
		t.Errorf("explicit rows overwritten: %+v", cfg.Index)
	}
	if !reflect.DeepEqual(cfg.Documents.FileGroups, []string{"MIN"}) {
		t.Errorf("explicit file groups overwritten: %v", cfg.Documents.FileGroups)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DLF_TEST_ADDR", "valkey:6379")
	t.Setenv("DLF_TEST_EMPTY", "")

	in := "a: ${DLF_TEST_ADDR}\nb: ${DLF_TEST_EMPTY:-fallback}\nc: ${DLF_TEST_UNSET}\nd: ${DLF_TEST_ADDR:-x}"
	want := "a: valkey:6379\nb: fallback\nc: \nd: valkey:6379"

	if got := string(expandEnvVars([]byte(in))); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o750); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: ${DLF_TEST_PORT:-9090}
database:
  addrs: ["localhost:6379"]
relational:
  path: /var/lib/dlf/index.db
documents:
  media_groups: [AUDIO]
auth:
  api_keys: ["${DLF_TEST_KEY}"]
`
	if err := os.WriteFile(filepath.Join(dir, "config", "unit.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DLF_TEST_KEY", "secret")
	t.Chdir(dir)

	cfg, err := Load("unit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Relational.Path != "/var/lib/dlf/index.db" {
		t.Errorf("relational path = %q", cfg.Relational.Path)
	}
	if !reflect.DeepEqual(cfg.Documents.MediaGroups, []string{"AUDIO"}) {
		t.Errorf("media groups = %v", cfg.Documents.MediaGroups)
	}
	if !reflect.DeepEqual(cfg.Auth.APIKeys, []string{"secret"}) {
		t.Errorf("api keys = %v", cfg.Auth.APIKeys)
	}
	if cfg.Storage.KeyPrefix != "dlf:" {
		t.Errorf("defaults not applied: %q", cfg.Storage.KeyPrefix)
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("got %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("got %q, want prod", got)
	}
}

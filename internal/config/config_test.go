package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contractgen/pkg/contract"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contractgen.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	timeout, err := cfg.Timeout()
	if err != nil || timeout != 30*time.Second {
		t.Fatalf("Timeout() = %v, %v", timeout, err)
	}
	if cfg.ContractVariant() != contract.VariantFull {
		t.Fatalf("variant = %s", cfg.ContractVariant())
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
variant: banking
request_timeout: 5s
endpoints:
  render: https://render.example.com/
server:
  listen: 127.0.0.1:9000
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	want.Variant = "banking"
	want.RequestTimeout = "5s"
	want.Endpoints.Render = "https://render.example.com/"
	want.Server.Listen = "127.0.0.1:9000"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "variant: banking\n")
	t.Setenv("CONTRACTGEN_VARIANT", "minimal")
	t.Setenv("CONTRACTGEN_DATABASE_URL", "postgres://localhost/contracts")
	t.Setenv("CONTRACTGEN_NEXT_NUMBER_URL", "http://127.0.0.1:8080/next-number")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ContractVariant() != contract.VariantMinimal {
		t.Fatalf("variant = %s", cfg.Variant)
	}
	if cfg.Database.URL != "postgres://localhost/contracts" {
		t.Fatalf("database url = %q", cfg.Database.URL)
	}
	if cfg.Endpoints.NextNumber != "http://127.0.0.1:8080/next-number" {
		t.Fatalf("next number url = %q", cfg.Endpoints.NextNumber)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"variant":   "variant: premium\n",
		"timeout":   "request_timeout: soon\n",
		"negative":  "request_timeout: -1s\n",
		"endpoint":  "endpoints:\n  upload: ftp://example.com\n",
		"log level": "logging:\n  level: loud\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "variant: [unterminated\n"))
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

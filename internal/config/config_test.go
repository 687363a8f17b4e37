package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("STORAGE_PATH", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("RATE_LIMIT_RPS", "")

	cfg := Load()
	if cfg.NATSSubject != "documents.received" {
		t.Fatalf("expected default subject documents.received, got %q", cfg.NATSSubject)
	}
	if cfg.StoragePath != "./data/documents" {
		t.Fatalf("expected default storage path, got %q", cfg.StoragePath)
	}
	if cfg.MaxUploadBytes != 20<<20 {
		t.Fatalf("expected default upload limit 20MiB, got %d", cfg.MaxUploadBytes)
	}
	if cfg.RateLimitRPS != 20 {
		t.Fatalf("expected default rate limit 20 rps, got %d", cfg.RateLimitRPS)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "documents.uploaded")
	t.Setenv("EXPORT_LIMIT", "250")
	t.Setenv("FORMAT_CORRECTIONS_PATH", "/etc/extractor/corrections.yaml")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg := Load()
	if cfg.NATSSubject != "documents.uploaded" {
		t.Fatalf("expected subject override, got %q", cfg.NATSSubject)
	}
	if cfg.ExportLimit != 250 {
		t.Fatalf("expected export limit 250, got %d", cfg.ExportLimit)
	}
	if cfg.FormatCorrectionsPath != "/etc/extractor/corrections.yaml" {
		t.Fatalf("expected corrections path override, got %q", cfg.FormatCorrectionsPath)
	}
	if cfg.RateLimitBurst != 40 {
		t.Fatalf("expected invalid burst to fall back to 40, got %d", cfg.RateLimitBurst)
	}
}

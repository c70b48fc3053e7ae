package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "/tmp/registry")
	t.Setenv("PARSE_WORKERS", "0")
	t.Setenv("PDF_WORD_GAP", "0.5")
	t.Setenv("IMAP_SECURE", "off")
	t.Setenv("MAIL_LISTENER_FETCH_MAX", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "/tmp/registry" {
		t.Fatalf("output dir=%s", cfg.OutputDir)
	}
	if cfg.ParseWorkers != 1 {
		t.Fatalf("workers=%d", cfg.ParseWorkers)
	}
	if cfg.PDFWordGap != 0.5 || cfg.PDFRowTolerance != 2.5 {
		t.Fatalf("pdf opts=%v %v", cfg.PDFWordGap, cfg.PDFRowTolerance)
	}
	if cfg.IMAPSecure {
		t.Fatal("imap secure should be off")
	}
	if cfg.MailListenerFetchMax != 20 {
		t.Fatalf("fetch max=%d", cfg.MailListenerFetchMax)
	}
}

func TestRequire(t *testing.T) {
	var cfg Config
	if err := cfg.Require("IMAP_HOST", "  "); err == nil || !strings.Contains(err.Error(), "IMAP_HOST") {
		t.Fatalf("err=%v", err)
	}
	if err := cfg.Require("IMAP_HOST", "mail.example.org"); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTablesDefaults(t *testing.T) {
	tables, err := LoadTables("")
	if err != nil {
		t.Fatal(err)
	}
	if tables.DepartmentDir("AI&DS") != "aid" || len(tables.Weekdays) != 6 {
		t.Fatalf("unexpected defaults: %+v", tables)
	}
}

func TestLoadTablesOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	body := `
departments:
  BIO: bt
abbreviations:
  - key: bioinformatics
    short: BI
default_year: "2026"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	tables, err := LoadTables(path)
	if err != nil {
		t.Fatal(err)
	}
	if tables.DepartmentDir("bio") != "bt" || tables.DepartmentDir("CSE") != "cse" {
		t.Fatalf("departments=%v", tables.Departments)
	}
	if len(tables.Abbreviations) != 1 || tables.Abbreviations[0].Short != "BI" {
		t.Fatalf("abbreviations=%v", tables.Abbreviations)
	}
	if tables.DefaultYear != "2026" || tables.SemesterYear["8"] != "2022" {
		t.Fatalf("years=%s %v", tables.DefaultYear, tables.SemesterYear)
	}
}

func TestLoadTablesRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	if err := os.WriteFile(path, []byte("weekday: [Monday]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTables(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadTablesEmptyWeekdays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	if err := os.WriteFile(path, []byte("weekdays: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTables(path); err == nil {
		t.Fatal("expected error for empty weekdays")
	}
}

func TestLoadTablesMissingFile(t *testing.T) {
	if _, err := LoadTables(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

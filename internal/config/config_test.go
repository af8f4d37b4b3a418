package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.json")
	content := `{"server_address": ":9000", "database_dsn": "postgres://file", "log_level": "debug"}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG", path)
	t.Setenv("DATABASE_DSN", "postgres://env")

	opts := Parse()

	if opts.Port != ":9000" {
		t.Errorf("Port = %q; want %q", opts.Port, ":9000")
	}
	if opts.DatabaseDSN != "postgres://env" {
		t.Errorf("DatabaseDSN = %q; want env override", opts.DatabaseDSN)
	}
	if opts.LogLevel != "debug" {
		t.Errorf("LogLevel = %q; want %q", opts.LogLevel, "debug")
	}
	if opts.SessionTTL <= 0 {
		t.Errorf("SessionTTL = %v; want positive default", opts.SessionTTL)
	}
}

func TestOptions_TLSEnabled(t *testing.T) {
	cases := []struct {
		cert, key string
		want      bool
	}{
		{"", "", false},
		{"a.crt", "", false},
		{"", "a.key", false},
		{"a.crt", "a.key", true},
	}
	for _, tc := range cases {
		o := &Options{TLSCert: tc.cert, TLSKey: tc.key}
		if got := o.TLSEnabled(); got != tc.want {
			t.Errorf("TLSEnabled(%q, %q) = %v; want %v", tc.cert, tc.key, got, tc.want)
		}
	}
}

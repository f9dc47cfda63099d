package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	errs "github.com/matzehuels/gfak/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Config
		wantErr errs.Code
	}{
		{
			name: "Empty",
			text: "",
			want: Config{RenderFormat: "svg"},
		},
		{
			name: "AllKeys",
			text: "block_order = true\nversion = \"2\"\nwalks = true\nno_cache = true\nrender_format = \"png\"\nlabels = true\nmax_nodes = 50\ncache_url = \"redis://localhost:6379/1\"\n",
			want: Config{BlockOrder: true, Version: "2", Walks: true, NoCache: true, RenderFormat: "png", Labels: true, MaxNodes: 50, CacheURL: "redis://localhost:6379/1"},
		},
		{
			name:    "BadVersion",
			text:    "version = \"3\"\n",
			wantErr: errs.ErrCodeInvalidVersion,
		},
		{
			name:    "BadFormat",
			text:    "render_format = \"pdf\"\n",
			wantErr: errs.ErrCodeInvalidFormat,
		},
		{
			name:    "NegativeLimit",
			text:    "max_nodes = -1\n",
			wantErr: errs.ErrCodeInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.text))
			if tt.wantErr != "" {
				if !errs.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.BlockOrder != tt.want.BlockOrder || got.Version != tt.want.Version ||
				got.Walks != tt.want.Walks || got.NoCache != tt.want.NoCache ||
				got.RenderFormat != tt.want.RenderFormat || got.Labels != tt.want.Labels ||
				got.MaxNodes != tt.want.MaxNodes || got.CacheURL != tt.want.CacheURL {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	if _, err := Parse([]byte("block_order = = true")); err == nil {
		t.Error("expected TOML syntax error")
	}
}

func TestParseUnknownKeys(t *testing.T) {
	cfg, err := Parse([]byte("colour = \"red\"\nblock_order = true\nzoom = 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(cfg.Unknown, []string{"colour", "zoom"}) {
		t.Errorf("Unknown = %v", cfg.Unknown)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("walks = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Walks || cfg.Source != path || cfg.RenderFormat != "svg" {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errs.Is(err, errs.ErrCodeSourceUnavailable) {
		t.Errorf("missing explicit file: %v", err)
	}
}

func TestLoadDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default file: %v", err)
	}
	if cfg.Source != "" || cfg.RenderFormat != "svg" {
		t.Errorf("cfg = %+v", cfg)
	}

	if err := os.MkdirAll(filepath.Join(dir, "gfak"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "gfak", FileName), []byte("block_order = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil || !cfg.BlockOrder {
		t.Errorf("cfg = %+v, err = %v", cfg, err)
	}
}

package config_test

import (
	"testing"

	"github.com/km-arc/go-ioc/config"
)

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load("testdata/absent.env")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"App.Name", cfg.App.Name, "go-ioc"},
		{"App.Env", cfg.App.Env, "local"},
		{"App.Port", cfg.App.Port, "8000"},
		{"Log.Level", cfg.Log.Level, "info"},
		{"Log.Format", cfg.Log.Format, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "MyApp")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.Load("testdata/absent.env")

	if cfg.App.Name != "MyApp" {
		t.Errorf("App.Name: got %q want %q", cfg.App.Name, "MyApp")
	}
	if cfg.App.Port != "9000" {
		t.Errorf("App.Port: got %q want %q", cfg.App.Port, "9000")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level: got %q want %q", cfg.Log.Level, "debug")
	}
}

// ── Raw getters ──────────────────────────────────────────────────────────────

func TestGet_Fallback(t *testing.T) {
	if got := config.Get("NEVER_SET_KEY", "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	if got := config.GetInt("SOME_INT", 7); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
	if got := config.GetInt("SOME_INT_MISSING", 7); got != 7 {
		t.Errorf("got %d, want default 7", got)
	}
	t.Setenv("SOME_BAD_INT", "abc")
	if got := config.GetInt("SOME_BAD_INT", 7); got != 7 {
		t.Errorf("got %d, want default 7 on parse failure", got)
	}
}

func TestGetBool(t *testing.T) {
	t.Setenv("SOME_BOOL", "true")
	if !config.GetBool("SOME_BOOL", false) {
		t.Error("got false, want true")
	}
	if config.GetBool("SOME_BOOL_MISSING", false) {
		t.Error("got true, want default false")
	}
}

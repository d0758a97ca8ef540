package config

import (
	"testing"
	"time"
)

const testYAML = `
app:
  name: "otpreg"
  debug: true
  workers: 4
timeouts:
  read_seconds: 15
  session_minutes: 60
secrets:
  key_b64: "aGVsbG8="
lists:
  origins: "http://a.test,http://b.test"
`

func newTestConfig(t *testing.T) *Viper {
	t.Helper()

	cfg, err := NewViperFromBytes("yaml", []byte(testYAML))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}
	return cfg
}

func TestViperGetters(t *testing.T) {
	cfg := newTestConfig(t)

	if got := cfg.GetString("app.name"); got != "otpreg" {
		t.Fatalf("GetString = %q", got)
	}
	if !cfg.GetBool("app.debug") {
		t.Fatal("GetBool = false, want true")
	}
	if got := cfg.GetInt("app.workers"); got != 4 {
		t.Fatalf("GetInt = %d", got)
	}
}

func TestViperDurations(t *testing.T) {
	cfg := newTestConfig(t)

	if got := cfg.GetSecond("timeouts.read_seconds"); got != 15*time.Second {
		t.Fatalf("GetSecond = %v", got)
	}
	if got := cfg.GetMinute("timeouts.session_minutes"); got != time.Hour {
		t.Fatalf("GetMinute = %v", got)
	}
}

func TestViperGetBinary(t *testing.T) {
	cfg := newTestConfig(t)

	if got := string(cfg.GetBinary("secrets.key_b64")); got != "hello" {
		t.Fatalf("GetBinary = %q", got)
	}
	if got := cfg.GetBinary("secrets.missing"); len(got) != 0 {
		t.Fatalf("GetBinary for missing key = %q", got)
	}
}

func TestViperGetArray(t *testing.T) {
	cfg := newTestConfig(t)

	got := cfg.GetArray("lists.origins")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("GetArray = %v", got)
	}
}

package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "DB_DRIVER", "OCR_TIMEOUT", "SESSION_TTL", "TOKEN_TTL", "MAX_UPLOAD_BYTES", "CORS_ORIGINS_OFFLINE"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.Mode != ModeOffline || c.HTTPAddr != ":8080" || c.DBDriver != "sqlite" {
		t.Fatalf("unexpected defaults %+v", c)
	}
	if c.OCRTimeout != time.Minute || c.SessionTTL != 2*time.Hour || c.MaxUploadBytes != 10<<20 {
		t.Fatalf("unexpected durations %+v", c)
	}
	if c.TokenTTL <= c.SessionTTL {
		t.Fatalf("token ttl %v must outlast idle ttl %v", c.TokenTTL, c.SessionTTL)
	}
	if len(c.CORSOrigins()) != 2 {
		t.Fatalf("offline origins = %v", c.CORSOrigins())
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("OCR_TIMEOUT", "90")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("TOKEN_TTL", "3h")
	t.Setenv("CORS_ORIGINS_ONLINE", " https://a.example , ,https://b.example")
	t.Setenv("MAX_UPLOAD_BYTES", "nope")
	c := FromEnv()
	if c.OCRTimeout != 90*time.Second || c.SessionTTL != 15*time.Minute {
		t.Fatalf("durations = %v %v", c.OCRTimeout, c.SessionTTL)
	}
	if c.TokenTTL != 3*time.Hour {
		t.Fatalf("token ttl = %v", c.TokenTTL)
	}
	got := c.CORSOrigins()
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("origins = %v", got)
	}
	if c.MaxUploadBytes != 10<<20 {
		t.Fatalf("bad int accepted: %d", c.MaxUploadBytes)
	}
}

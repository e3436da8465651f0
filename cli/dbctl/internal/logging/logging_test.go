package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestLevel(t *testing.T) {
	cases := []struct {
		debug, level string
		want         log.Level
	}{
		{"", "", log.WarnLevel},
		{"", "info", log.InfoLevel},
		{"1", "error", log.DebugLevel},
		{"", "loud", log.WarnLevel},
	}
	for _, tc := range cases {
		t.Setenv("DBLAB_DEBUG", tc.debug)
		t.Setenv("DBLAB_LOG_LEVEL", tc.level)
		if got := Level(); got != tc.want {
			t.Fatalf("debug=%q level=%q: got %v want %v", tc.debug, tc.level, got, tc.want)
		}
	}
}

func TestSetupWritesToWriter(t *testing.T) {
	t.Setenv("DBLAB_DEBUG", "1")
	t.Setenv("DBLAB_LOG_LEVEL", "")
	var buf bytes.Buffer
	Setup(&buf)
	t.Cleanup(func() {
		log.SetLevel(defaultLevel)
		log.SetOutput(os.Stderr)
	})
	log.Debug("resolving engine")
	if !strings.Contains(buf.String(), "resolving engine") {
		t.Fatalf("log output=%q", buf.String())
	}
}

package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
	}{
		{name: "debug level keeps debug records", level: "debug", wantDebug: true},
		{name: "info level drops debug records", level: "info", wantDebug: false},
		{name: "unknown level falls back to info", level: "verbose", wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.level)

			log.Debug(context.Background(), "dbg", "k", "v")
			log.Info(context.Background(), "inf")

			out := buf.String()
			assert.Contains(t, out, "inf")
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("dbg")))
		})
	}
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info").With("component", "api")

	log.Info(context.Background(), "ping")

	require.Contains(t, buf.String(), "component=api")
}

func TestNewNop_DiscardsEverything(t *testing.T) {
	log := NewNop()
	// must not panic
	log.Error(context.Background(), "ignored", "k", 1)
}

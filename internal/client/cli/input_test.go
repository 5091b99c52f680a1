package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain line", input: "admin\n", want: "admin"},
		{name: "surrounding spaces trimmed", input: "  admin  \n", want: "admin"},
		{name: "eof after partial line", input: "admin", want: "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(bufio.NewReader(strings.NewReader(tt.input)), "Enter name", &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Enter name")
		})
	}
}

func TestGetSimpleText_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(bufio.NewReader(strings.NewReader("")), "Enter name", &out)
	require.Error(t, err)
}

func TestGetPassword_UsesTerminalReader(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) {
		return []byte("hunter2"), nil
	}

	var out bytes.Buffer
	pw, err := GetPassword(&out)

	require.NoError(t, err)
	assert.Equal(t, "hunter2", pw)
	assert.Contains(t, out.String(), "Enter password")
}

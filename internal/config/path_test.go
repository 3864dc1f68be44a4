package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("WHEELHOUSE_TEST_DIR", "/var/lib/wheelhouse")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "bare tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/.local/share/wheelhouse/shop.db", want: filepath.Join(home, ".local/share/wheelhouse/shop.db")},
		{name: "env var", in: "$WHEELHOUSE_TEST_DIR/shop.db", want: "/var/lib/wheelhouse/shop.db"},
		{name: "plain path", in: "/tmp/shop.db", want: "/tmp/shop.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

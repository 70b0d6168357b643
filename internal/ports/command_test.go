package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"zstd", Command{Name: "zstd", Args: []string{}}},
		{"xz --lzma2=dict=1536Mi,nice=273 -q", Command{Name: "xz", Args: []string{"--lzma2=dict=1536Mi,nice=273", "-q"}}},
		{"  gzip\t-9 \n", Command{Name: "gzip", Args: []string{"-9"}}},
		{`sh -c "exit 1"`, Command{Name: "sh", Args: []string{"-c", `"exit`, `1"`}}},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseCommand(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseCommand_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := ParseCommand(input)
		assert.ErrorIs(t, err, ErrEmptyCommand, "input %q", input)
	}
}

func TestCommandString(t *testing.T) {
	cmd, err := ParseCommand("  xz   -9  -q ")
	require.NoError(t, err)
	assert.Equal(t, "xz -9 -q", cmd.String())
	assert.Equal(t, "zstd", Command{Name: "zstd"}.String())
}

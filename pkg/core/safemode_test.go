package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalConfirmer(t *testing.T) {
	for _, toPin := range []struct {
		input    string
		expected bool
	}{
		{input: "Y\n", expected: true},
		{input: "y\n", expected: true},
		{input: "  yes \n", expected: true},
		{input: "YES", expected: true},
		{input: "N\n", expected: false},
		{input: "no\n", expected: false},
		{input: "\n", expected: false},
		{input: "", expected: false},
		{input: "yep\n", expected: false},
	} {
		fixture := toPin
		t.Run(strings.TrimSpace(fixture.input), func(t *testing.T) {
			var out bytes.Buffer
			c := NewTerminalConfirmer(strings.NewReader(fixture.input), &out)

			ok, err := c.Confirm(ConfirmationPrompt)
			require.NoError(t, err)
			assert.Equal(t, fixture.expected, ok)
			assert.Equal(t, ConfirmationPrompt, out.String())
		})
	}
}

func TestSafeModeGate(t *testing.T) {
	for _, toPin := range []struct {
		name      string
		files     map[string]string
		dirs      []string
		yes       bool
		expected  bool
		wantAsked bool
	}{
		{
			name:     "missing root",
			expected: true,
		},
		{
			name:     "empty root",
			dirs:     []string{"/locales"},
			expected: true,
		},
		{
			name:     "only empty directories",
			dirs:     []string{"/locales/a/b", "/locales/c"},
			expected: true,
		},
		{
			name:      "file at the root, declined",
			files:     map[string]string{"/locales/en.yml": "en: {}"},
			expected:  false,
			wantAsked: true,
		},
		{
			name:      "nested file, declined",
			files:     map[string]string{"/locales/a/b/notes.txt": "keep me"},
			expected:  false,
			wantAsked: true,
		},
		{
			name:      "nested file, accepted",
			files:     map[string]string{"/locales/a/b/notes.txt": "keep me"},
			yes:       true,
			expected:  true,
			wantAsked: true,
		},
	} {
		fixture := toPin
		t.Run(fixture.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			for _, dir := range fixture.dirs {
				require.NoError(t, fs.MkdirAll(dir, 0755))
			}
			writeFiles(t, fs, fixture.files)

			var out bytes.Buffer
			confirmer := &answer{yes: fixture.yes}
			gate := NewSafeModeGate(fs, confirmer, &out)

			ok, err := gate.Confirm(testRoot)
			require.NoError(t, err)
			assert.Equal(t, fixture.expected, ok)

			if !fixture.wantAsked {
				assert.Equal(t, 0, confirmer.asked)
				assert.Empty(t, out.String())
				return
			}
			assert.Equal(t, 1, confirmer.asked)
			assert.Contains(t, out.String(), "The target directory /locales is not empty!")
		})
	}
}

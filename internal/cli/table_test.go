package cli

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestWriteTableAlignsVisibleWidth(t *testing.T) {
	var buf bytes.Buffer
	styled := lipgloss.NewStyle().Bold(true).Render("ok")

	err := writeTable(&buf, []string{"DAY", "NOTE"}, [][]string{
		{"1", styled},
		{"14", "日本"},
		{"3"},
	})
	require.NoError(t, err)

	want := "" +
		"DAY  NOTE\n" +
		"1    " + styled + "\n" +
		"14   日本\n" +
		"3    \n"
	require.Equal(t, want, buf.String())
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, nil, nil))
	require.Empty(t, buf.String())
}

func TestFormatHelpers(t *testing.T) {
	v := uint64(42)
	require.Equal(t, "42", formatResult(&v))
	require.Equal(t, "-", formatResult(nil))
	require.Equal(t, "yes", formatYesNo(true))
	require.Equal(t, "no", formatYesNo(false))
	require.Equal(t, "abcdefgh", shortID("abcdefghijkl"))
	require.Equal(t, "abc", shortID("abc"))
}

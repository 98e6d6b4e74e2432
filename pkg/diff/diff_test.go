package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnifiedIdenticalContent(t *testing.T) {
	t.Parallel()

	doc := []byte("colors:\n  primary:\n    value: \"#2563EB\"\n")
	require.Empty(t, Unified(doc, doc, "light", "dark"))
}

func TestUnifiedMarksChangedLines(t *testing.T) {
	t.Parallel()

	light := []byte("primary: \"#2563EB\"\nsecondary: \"#10B981\"\n")
	dark := []byte("primary: \"#60A5FA\"\nsecondary: \"#10B981\"\n")

	out := Unified(light, dark, "tokens.yaml", "tokens.dark.yaml")

	require.Contains(t, out, "--- tokens.yaml")
	require.Contains(t, out, "+++ tokens.dark.yaml")
	require.Contains(t, out, "#60A5FA")

	// Hunks stay on line boundaries: changed rows carry the whole line.
	require.Contains(t, out, "-primary: \"#2563EB\"\n")
	require.Contains(t, out, "+primary: \"#60A5FA\"\n")
	require.Contains(t, out, " secondary: \"#10B981\"\n")
}

func TestUnifiedTruncatesHugeDiffs(t *testing.T) {
	t.Parallel()

	var a, b strings.Builder
	for i := 0; i < maxDiffLines+100; i++ {
		a.WriteString("left line\n")
		b.WriteString("right line\n")
	}

	out := Unified([]byte(a.String()), []byte(b.String()), "a", "b")
	require.Contains(t, out, truncateMessage)
	require.LessOrEqual(t, len(strings.Split(out, "\n")), maxDiffLines+10)
}

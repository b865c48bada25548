package btxt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/btangle/btxt"
)

func TestHeadingParser(t *testing.T) {
	hp := btxt.HeadingParser{Marker: '#'}

	for _, tc := range []struct {
		name  string
		in    string
		kind  btxt.MatchKind
		level int
		text  string
	}{
		{"level 1", "# Title\n", btxt.Matched, 1, "Title"},
		{"level 3", "### Sub section\n", btxt.Matched, 3, "Sub section"},
		{"no space", "#Title\n", btxt.NoMatch, 0, ""},
		{"empty text", "#  \n", btxt.NoMatch, 0, ""},
		{"too deep", "########## Title\n", btxt.NoMatch, 0, ""},
		{"leading space disqualifies", " # Title\n", btxt.NoMatch, 0, ""},
		{"not a heading at all", "plain text\n", btxt.NoMatch, 0, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := hp.Parse([]byte(tc.in))
			assert.Equal(t, tc.kind, r.Kind)
			if tc.kind == btxt.Matched {
				assert.Equal(t, tc.level, r.Part.Level)
				assert.Equal(t, tc.text, string(r.Part.Heading))
			}
		})
	}
}

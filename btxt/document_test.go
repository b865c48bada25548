package btxt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/btangle/btxt"
)

func mustParse(t *testing.T, input string) btxt.Document {
	t.Helper()
	doc, err := btxt.Parse([]byte(input), btxt.DefaultParsers(), false)
	require.NoError(t, err)
	return doc
}

func TestParseBasicTangle(t *testing.T) {
	doc := mustParse(t, "<?btxt filename='main.go' ?>\n```go\npackage main\n```\n")

	require.Len(t, doc.CodeBlocks, 1)
	assert.Equal(t, "main.go", string(doc.CodeBlocks[0].Effective.Filename.Bytes))
	assert.Equal(t, "package main\n", string(doc.CodeBlocks[0].Part.Contents))
}

func TestParseLanguageOverride(t *testing.T) {
	doc := mustParse(t, ""+
		"<?btxt filename='combined.txt' ?>\n"+
		"<?btxt+go filename='main.go' ?>\n"+
		"```go\npackage main\n```\n"+
		"```py\nprint(1)\n```\n",
	)

	require.Len(t, doc.CodeBlocks, 2)
	assert.Equal(t, "main.go", string(doc.CodeBlocks[0].Effective.Filename.Bytes))
	assert.Equal(t, "combined.txt", string(doc.CodeBlocks[1].Effective.Filename.Bytes))
}

func TestParseSiblingInsulation(t *testing.T) {
	doc := mustParse(t, ""+
		"# A\n"+
		"<?btxt filename='a.go' ?>\n"+
		"```go\npackage a\n```\n"+
		"# B\n"+
		"```go\npackage b\n```\n",
	)

	require.Len(t, doc.Root.Children, 2)
	require.Len(t, doc.CodeBlocks, 2)
	assert.Equal(t, "a.go", string(doc.CodeBlocks[0].Effective.Filename.Bytes))
	assert.False(t, doc.CodeBlocks[1].Effective.Filename.Present,
		"sibling section B must not inherit A's filename override")
}

func TestParseLevelJumpReattachesToImmediateParent(t *testing.T) {
	doc := mustParse(t, ""+
		"# A\n"+
		"## B\n"+
		"### C\n"+
		"# D\n",
	)

	require.Len(t, doc.Root.Children, 2)
	a, d := doc.Root.Children[0], doc.Root.Children[1]
	assert.Equal(t, "A", string(a.Part.Heading))
	assert.Equal(t, "D", string(d.Part.Heading))
	require.Len(t, a.Children, 1)
	assert.Equal(t, "B", string(a.Children[0].Part.Heading))
	require.Len(t, a.Children[0].Children, 1)
	assert.Equal(t, "C", string(a.Children[0].Children[0].Part.Heading))
	assert.Empty(t, d.Children)
}

func TestParseInlineCodeAnnotation(t *testing.T) {
	doc := mustParse(t, `<?btxt+python filename='main.go' code=|||print(1)||| ?>`+"\n")

	require.Len(t, doc.CodeBlocks, 1)
	assert.Equal(t, "main.go", string(doc.CodeBlocks[0].Effective.Filename.Bytes))
	assert.Equal(t, "print(1)", string(doc.CodeBlocks[0].Part.Contents))
	assert.Equal(t, "python", string(doc.CodeBlocks[0].Part.Lang))
}

func TestParseInlineCodePropertyDoesNotLeakToNextBlock(t *testing.T) {
	doc := mustParse(t, ""+
		`<?btxt filename='main.go' code=|||print(1)||| ?>`+"\n"+
		"```go\npackage main\n```\n",
	)

	require.Len(t, doc.CodeBlocks, 2)
	assert.False(t, doc.CodeBlocks[1].Effective.Code.Present,
		"a later block must not inherit the inline annotation's code= property")
}

func TestParseIgnoreConsistency(t *testing.T) {
	doc := mustParse(t, ""+
		"<?btxt ignore=true ?>\n"+
		"```go\npackage ignored\n```\n"+
		"<?btxt ignore=false filename='main.go' ?>\n"+
		"```go\npackage main\n```\n",
	)

	require.Len(t, doc.CodeBlocks, 1)
	for _, c := range doc.CodeBlocks {
		assert.NotEqual(t, btxt.True, c.Effective.Ignore)
	}
	assert.Equal(t, "main.go", string(doc.CodeBlocks[0].Effective.Filename.Bytes))
}

func TestParseStrictModeSyntaxError(t *testing.T) {
	_, err := btxt.Parse([]byte("<?btxt bogus=1 ?>\n"), btxt.DefaultParsers(), true)
	require.Error(t, err)
	var synErr *btxt.SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestParseByteSlicesAliasInput(t *testing.T) {
	input := []byte("# Title\n```go\npackage main\n```\n")
	doc, err := btxt.Parse(input, btxt.DefaultParsers(), false)
	require.NoError(t, err)

	require.Len(t, doc.CodeBlocks, 1)
	contents := doc.CodeBlocks[0].Part.Contents
	require.NotEmpty(t, contents)

	// mutate the underlying input and see the parsed slice reflect it,
	// proving Contents is a sub-slice and not a copy
	idx := indexOf(input, contents)
	require.GreaterOrEqual(t, idx, 0)
	orig := input[idx]
	input[idx] = 'X'
	assert.Equal(t, byte('X'), contents[0])
	input[idx] = orig
}

func indexOf(haystack, needle []byte) int {
	if len(needle) == 0 {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

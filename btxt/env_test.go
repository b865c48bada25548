package btxt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/btangle/btxt"
)

func TestPropertyEnvResolveFallsThroughToGlobal(t *testing.T) {
	var env btxt.PropertyEnv
	env.Update(nil, btxt.Properties{
		Filename: btxt.OptionalBytes{Bytes: []byte("main.go"), Present: true},
	})

	resolved := env.Resolve([]byte("go"))
	assert.Equal(t, "main.go", string(resolved.Filename.Bytes))
}

func TestPropertyEnvLanguageOverrideWinsOverGlobal(t *testing.T) {
	var env btxt.PropertyEnv
	env.Update(nil, btxt.Properties{
		Filename: btxt.OptionalBytes{Bytes: []byte("main.go"), Present: true},
	})
	env.Update([]byte("go"), btxt.Properties{
		Filename: btxt.OptionalBytes{Bytes: []byte("main_go.go"), Present: true},
	})

	assert.Equal(t, "main_go.go", string(env.Resolve([]byte("go")).Filename.Bytes))
	assert.Equal(t, "main.go", string(env.Resolve([]byte("rust")).Filename.Bytes),
		"an unrelated language still falls through to global")
}

func TestPropertyEnvLanguageEntryDoesNotAbsorbGlobal(t *testing.T) {
	var env btxt.PropertyEnv
	env.Update([]byte("go"), btxt.Properties{
		Tag: btxt.OptionalBytes{Bytes: []byte("impl"), Present: true},
	})
	env.Update(nil, btxt.Properties{
		Filename: btxt.OptionalBytes{Bytes: []byte("main.go"), Present: true},
	})

	resolved := env.Resolve([]byte("go"))
	assert.Equal(t, "impl", string(resolved.Tag.Bytes))
	assert.Equal(t, "main.go", string(resolved.Filename.Bytes),
		"a later global update must still be visible through Resolve")
}

func TestPropertyEnvCloneIsIndependent(t *testing.T) {
	var env btxt.PropertyEnv
	env.Update([]byte("go"), btxt.Properties{
		Tag: btxt.OptionalBytes{Bytes: []byte("impl"), Present: true},
	})

	clone := env.Clone()
	clone.Update([]byte("go"), btxt.Properties{
		Tag: btxt.OptionalBytes{Bytes: []byte("test"), Present: true},
	})

	assert.Equal(t, "impl", string(env.Resolve([]byte("go")).Tag.Bytes))
	assert.Equal(t, "test", string(clone.Resolve([]byte("go")).Tag.Bytes))
}

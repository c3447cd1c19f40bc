package meta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"adapter-generator/internal/meta"
	mt "adapter-generator/internal/meta/metatest"
)

func TestParseDirective(t *testing.T) {
	kind, names, ok := meta.ParseDirective("//adapt:out remaining total")
	assert.True(t, ok)
	assert.Equal(t, meta.ParamOut, kind)
	assert.Equal(t, []string{"remaining", "total"}, names)

	kind, _, ok = meta.ParseDirective("  //adapt:readonly key")
	assert.True(t, ok)
	assert.Equal(t, meta.ParamRefReadonly, kind)

	for _, bad := range []string{"// adapt:out x", "//adapt:out", "//adapt:sideways x", "//go:generate x"} {
		_, _, ok := meta.ParseDirective(bad)
		assert.False(t, ok, bad)
	}
}

func TestPointerParam(t *testing.T) {
	cfg := mt.Named(pkg, "Config", mt.Struct())

	kind, typ := meta.PointerParam(mt.Ptr(mt.Int), meta.ParamNone, false)
	assert.Equal(t, meta.ParamRef, kind, "pointers to non-structs default to ref")
	assert.True(t, meta.Equal(mt.Int, typ))

	kind, typ = meta.PointerParam(mt.Ptr(cfg), meta.ParamNone, false)
	assert.Equal(t, meta.ParamNone, kind, "pointers to structs are plain values")
	assert.True(t, meta.Equal(mt.Ptr(cfg), typ))

	kind, _ = meta.PointerParam(mt.Ptr(cfg), meta.ParamOut, true)
	assert.Equal(t, meta.ParamOut, kind, "directives apply to struct pointers too")

	kind, _ = meta.PointerParam(mt.Ptr(mt.Int), meta.ParamNone, true)
	assert.Equal(t, meta.ParamNone, kind, "ptr directive opts out")

	kind, _ = meta.PointerParam(mt.Int, meta.ParamOut, true)
	assert.Equal(t, meta.ParamNone, kind, "non-pointers are never by reference")
}

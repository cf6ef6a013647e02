package python

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImports_ImportStatements(t *testing.T) {
	source := `
import os
import sys as system
import pkg.module, other
`
	imports, err := ParseImports([]byte(source))

	require.NoError(t, err)
	assert.Equal(t, []ImportStatement{
		{Module: "os"},
		{Module: "sys"},
		{Module: "pkg.module"},
		{Module: "other"},
	}, imports)
}

func TestParseImports_ImportFromStatements(t *testing.T) {
	source := `
from collections import defaultdict
from . import helpers, models as m
from ..utils import slugify
from .pkg.sub import api
from .wild import *
`
	imports, err := ParseImports([]byte(source))

	require.NoError(t, err)
	require.Len(t, imports, 5)

	assert.Equal(t, ImportStatement{Module: "collections", Names: []string{"defaultdict"}, IsFrom: true}, imports[0])
	assert.Equal(t, ImportStatement{Level: 1, Names: []string{"helpers", "models"}, IsFrom: true}, imports[1])
	assert.Equal(t, ImportStatement{Module: "utils", Level: 2, Names: []string{"slugify"}, IsFrom: true}, imports[2])
	assert.Equal(t, ImportStatement{Module: "pkg.sub", Level: 1, Names: []string{"api"}, IsFrom: true}, imports[3])
	assert.Equal(t, "wild", imports[4].Module)
	assert.Empty(t, imports[4].Names)
}

func TestParseImports_ParenthesizedNames(t *testing.T) {
	source := `
from . import (
    alpha,
    beta,
)
`
	imports, err := ParseImports([]byte(source))

	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, []string{"alpha", "beta"}, imports[0].Names)
	assert.True(t, imports[0].IsRelative())
}

func TestParseImports_NestedImports(t *testing.T) {
	source := `
def load():
    import lazy.module

class Plugin:
    try:
        from .optional import feature
    except ImportError:
        feature = None
`
	imports, err := ParseImports([]byte(source))

	require.NoError(t, err)
	require.Len(t, imports, 2)
	assert.Equal(t, "lazy.module", imports[0].Module)
	assert.Equal(t, "optional", imports[1].Module)
	assert.Equal(t, 1, imports[1].Level)
}

func TestParseImports_FutureImport(t *testing.T) {
	imports, err := ParseImports([]byte("from __future__ import annotations\n"))

	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, "__future__", imports[0].Module)
	assert.Equal(t, 0, imports[0].Level)
}

func TestParseImports_SyntaxError(t *testing.T) {
	source := `
import os
def broken(:
    pass
`
	imports, err := ParseImports([]byte(source))

	assert.ErrorIs(t, err, ErrSyntax)
	assert.Empty(t, imports)
}

func TestParseImports_Python2StatementIsSyntaxError(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "print statement", source: "import b\nprint \"hello\"\n"},
		{name: "exec statement", source: "import b\nexec \"x = 1\"\n"},
		{name: "nested print statement", source: "import b\ndef f():\n    print b.VALUE\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			imports, err := ParseImports([]byte(tc.source))

			assert.ErrorIs(t, err, ErrSyntax)
			assert.Empty(t, imports)
		})
	}
}

func TestParseImports_Python3PrintAndExecCalls(t *testing.T) {
	source := `
import b
print("hello")
exec("x = 1")
`
	imports, err := ParseImports([]byte(source))

	require.NoError(t, err)
	assert.Equal(t, []ImportStatement{{Module: "b"}}, imports)
}

func TestParseImports_EmptySource(t *testing.T) {
	imports, err := ParseImports(nil)

	require.NoError(t, err)
	assert.Empty(t, imports)
}

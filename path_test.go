package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPath(t *testing.T) {
	p, err := NewPath("")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewPath("transit.base")
	require.NoError(t, err)
	assert.False(t, p.IsFile())
	assert.Equal(t, "transit", p.DB)
	assert.Equal(t, "base", p.Coll)
	assert.Equal(t, "transit.base", p.String())

	file := filepath.Join(t.TempDir(), "base.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))
	p, err = NewPath(file)
	require.NoError(t, err)
	assert.True(t, p.IsFile())
	assert.Equal(t, file, p.String())

	_, err = NewPath("a.b.c")
	assert.Error(t, err)
	_, err = NewPath(".coll")
	assert.Error(t, err)
}

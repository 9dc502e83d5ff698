package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalSaveWritesUnderClientDir(t *testing.T) {
	root := t.TempDir()
	sink := NewLocal(root)

	ref, err := sink.Save(context.Background(), "Acme S.A.", "comprobante.pdf", strings.NewReader("proof-bytes"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, root), "reference must stay under the upload root")
	assert.Equal(t, filepath.Join(root, "Acme_S.A", "comprobante.pdf"), ref)

	data, err := os.ReadFile(ref)
	assert.NoError(t, err)
	assert.Equal(t, "proof-bytes", string(data))
}

func TestLocalSaveReusesClientDir(t *testing.T) {
	root := t.TempDir()
	sink := NewLocal(root)
	ctx := context.Background()

	first, err := sink.Save(ctx, "Acme", "a.pdf", strings.NewReader("a"))
	assert.NoError(t, err)
	second, err := sink.Save(ctx, "Acme", "b.pdf", strings.NewReader("b"))
	assert.NoError(t, err)

	assert.Equal(t, filepath.Dir(first), filepath.Dir(second))
}

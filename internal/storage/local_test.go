package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPutScopesKeyByFolder(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")

	res, err := l.Put(context.Background(), strings.NewReader("img"), PutInput{
		Folder:   "products",
		Filename: "photo.jpg",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Key, "products/"), "key %q", res.Key)
	assert.True(t, strings.HasSuffix(res.Key, ".jpg"), "key %q", res.Key)
	assert.Equal(t, "/uploads/"+res.Key, res.URL)

	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.Key)))
	require.NoError(t, err)
	assert.Equal(t, "img", string(b))

	require.NoError(t, l.Delete(context.Background(), res.Key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(res.Key)))
	assert.True(t, os.IsNotExist(err))
}

func TestSafeFolder(t *testing.T) {
	assert.Equal(t, "shippers", safeFolder("shippers"))
	assert.Equal(t, "shippers", safeFolder("/shippers/"))
	assert.Equal(t, "", safeFolder(""))
	assert.Equal(t, "", safeFolder("."))
	assert.Equal(t, "", safeFolder("../etc"))
	assert.Equal(t, "", safeFolder(`a\b`))
}

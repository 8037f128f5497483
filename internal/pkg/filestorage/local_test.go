package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("Image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["Image"][0]
}

func TestSaveAndDeleteFile(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	saved, err := ls.SaveFileWithPath(fileHeader(t, "Foto.PNG", []byte("png-bytes")), "communities")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(saved, "uploads/communities/"))
	assert.True(t, strings.HasSuffix(saved, ".png"))

	data, err := os.ReadFile(ls.GetFullPath(saved))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, ls.DeleteFile(saved))
	_, err = os.Stat(ls.GetFullPath(saved))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ls.DeleteFile(saved), "deleting twice is fine")
}

func TestSaveNilHeader(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	saved, err := ls.SaveFileWithPath(nil, "users")
	require.NoError(t, err)
	assert.Equal(t, "", saved)
}

func TestGetFullPathStaysInsideBase(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	got := ls.GetFullPath("uploads/../../etc/passwd")
	assert.True(t, strings.HasPrefix(got, ls.BasePath()))
	assert.Equal(t, "", ls.GetFullPath("uploads"))
}

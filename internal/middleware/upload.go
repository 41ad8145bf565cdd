package middleware

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const uploadKey ctxKey = "upload"

// 10 MB en memoria antes de pasar a disco temporal.
const maxUploadMemory = 10 << 20

// GetUploadedFile devuelve el nombre del archivo almacenado por el
// colaborador de upload, si hay.
func GetUploadedFile(ctx context.Context) (string, bool) {
	v := ctx.Value(uploadKey)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StoreUpload es el colaborador de upload: si el request trae un archivo
// multipart en el campo "cat", lo guarda bajo dir con nombre generado y deja
// el nombre en el contexto como referencia opaca. Sin archivo el request
// sigue igual (el core no exige la referencia). Nada de procesamiento de
// imagen: guardar y listo.
func StoreUpload(dir string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				next.ServeHTTP(w, r)
				return
			}

			if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
				http.Error(w, "invalid multipart body", http.StatusBadRequest)
				return
			}

			file, header, err := r.FormFile("cat")
			if err != nil {
				// Campo ausente: seguimos sin referencia.
				next.ServeHTTP(w, r)
				return
			}
			defer file.Close()

			name := uuid.NewString() + filepath.Ext(header.Filename)
			if err := saveFile(file, filepath.Join(dir, name)); err != nil {
				http.Error(w, "could not store upload", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), uploadKey, name)))
		})
	}
}

func saveFile(src io.Reader, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

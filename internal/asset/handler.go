package asset

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/menucraft/menucraft/internal/typeid"
)

const maxUploadSize = 10 << 20 // 10MB

// UploadResponse describes a stored image: dish photos and page background
// images both go through this endpoint. The natural dimensions feed image
// element creation in the layout editor.
type UploadResponse struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	NaturalWidth  int    `json:"naturalWidth"`
	NaturalHeight int    `json:"naturalHeight"`
	Name          string `json:"name"`
}

// Handler serves image upload and retrieval.
type Handler struct {
	dir string
}

func NewHandler(dir string) *Handler {
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("create asset dir", "error", err, "dir", dir)
	}
	return &Handler{dir: dir}
}

// Dir exposes the storage directory so the editor's image cache can watch
// it for changes.
func (h *Handler) Dir() string { return h.dir }

// Upload handles a multipart form with a "file" field. Images are
// normalized to PNG on disk so the serving side is uniform.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "file too large (max 10MB)", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/png") && !strings.HasPrefix(contentType, "image/jpeg") {
		http.Error(w, "only PNG and JPEG images are supported", http.StatusBadRequest)
		return
	}

	img, _, err := image.Decode(file)
	if err != nil {
		http.Error(w, "invalid image: "+err.Error(), http.StatusBadRequest)
		return
	}
	bounds := img.Bounds()

	assetID := typeid.NewAssetID()
	filename := assetID + ".png"
	filePath := filepath.Join(h.dir, filename)

	out, err := os.Create(filePath)
	if err != nil {
		slog.Error("create asset file", "error", err)
		http.Error(w, "failed to save file", http.StatusInternalServerError)
		return
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		slog.Error("encode png", "error", err)
		os.Remove(filePath)
		http.Error(w, "failed to encode image", http.StatusInternalServerError)
		return
	}

	resp := UploadResponse{
		ID:            assetID,
		URL:           fmt.Sprintf("/assets/%s", filename),
		NaturalWidth:  bounds.Dx(),
		NaturalHeight: bounds.Dy(),
		Name:          header.Filename,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Serve returns a handler for stored files. Asset ids are unique, so the
// files never change and can be cached aggressively.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.StripPrefix("/assets/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}))
}

// Delete removes a stored image, used when a menu item's photo is replaced.
func (h *Handler) Delete(assetID string) error {
	path := filepath.Join(h.dir, assetID+".png")
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("asset not found: %s", assetID)
	}
	return nil
}

package web

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"strconv"
	"strings"

	"github.com/rook-computer/cursorgen/internal/cursorerr"
	"github.com/rook-computer/cursorgen/internal/generate"
	"github.com/rook-computer/cursorgen/internal/manifest"
	"github.com/rook-computer/cursorgen/internal/palette"
	"github.com/rook-computer/cursorgen/internal/render"
)

const (
	cursorContentType = "image/vnd.microsoft.icon"
	previewFile       = "preview.png"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type styleResponse struct {
	Name        string `json:"name"`
	WorkingSize int    `json:"workingSize"`
}

type hotspotResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type cursorResponse struct {
	Role    string          `json:"role"`
	File    string          `json:"file"`
	Size    int             `json:"size"`
	CID     string          `json:"cid"`
	Hotspot hotspotResponse `json:"hotspot"`
}

type styleDetailResponse struct {
	Style   string           `json:"style"`
	Cursors []cursorResponse `json:"cursors"`
	Failed  []string         `json:"failed,omitempty"`
}

func apiV1Router(lib *Library) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/styles", func(w http.ResponseWriter, r *http.Request) { handleStyles(w, r, lib) })
	mux.HandleFunc("/styles/", func(w http.ResponseWriter, r *http.Request) { handleStyle(w, r, lib) })
	return mux
}

func handleStyles(w http.ResponseWriter, r *http.Request, lib *Library) {
	if !allowRead(w, r) {
		return
	}
	var resp []styleResponse
	for _, s := range palette.Styles() {
		resp = append(resp, styleResponse{Name: string(s), WorkingSize: s.WorkingSize(lib.Size)})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleStyle serves
//   GET /styles/{style}          -> cursor list with content ids
//   GET /styles/{style}/{file}   -> raw .cur bytes, or the contact sheet for preview.png
func handleStyle(w http.ResponseWriter, r *http.Request, lib *Library) {
	if !allowRead(w, r) {
		return
	}
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/styles/"), "/")
	styleName, file, _ := strings.Cut(rest, "/")
	if styleName == "" || strings.Contains(file, "/") {
		writeAPIError(w, http.StatusNotFound, "not_found", "not found")
		return
	}

	batch, err := lib.Batch(r.Context(), palette.Style(styleName))
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	switch file {
	case "":
		writeStyleDetail(w, batch)
	case previewFile:
		writePreview(w, r, batch)
	default:
		data, ok := batch.Files()[file]
		if !ok {
			writeAPIError(w, http.StatusNotFound, "not_found", "no cursor named "+file)
			return
		}
		writeBytes(w, r, cursorContentType, data)
	}
}

func writeStyleDetail(w http.ResponseWriter, batch *generate.Batch) {
	m, err := manifest.Build(batch)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "manifest_failed", err.Error())
		return
	}
	resp := styleDetailResponse{Style: m.Style}
	files := map[string]manifest.Entry{}
	for _, e := range m.Entries {
		files[e.File] = e
	}
	for _, res := range batch.Results {
		if res.Err != nil {
			resp.Failed = append(resp.Failed, res.Err.Error())
			continue
		}
		e := files[res.Entry.File]
		hs := res.Entry.Hotspot(render.TargetSize)
		resp.Cursors = append(resp.Cursors, cursorResponse{
			Role:    e.Role,
			File:    e.File,
			Size:    e.Size,
			CID:     e.CID,
			Hotspot: hotspotResponse{X: int(hs.X), Y: int(hs.Y)},
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func writePreview(w http.ResponseWriter, r *http.Request, batch *generate.Batch) {
	tiles, err := batch.Tiles()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "preview_failed", err.Error())
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, render.ContactSheet(tiles, render.DefaultPreviewConfig())); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "preview_failed", err.Error())
		return
	}
	writeBytes(w, r, "image/png", buf.Bytes())
}

func writeGenerateError(w http.ResponseWriter, err error) {
	switch cursorerr.KindOf(err) {
	case cursorerr.KindInvalidStyle:
		writeAPIError(w, http.StatusNotFound, "invalid_style", err.Error())
	case cursorerr.KindCanceled:
		writeAPIError(w, http.StatusServiceUnavailable, "canceled", err.Error())
	default:
		writeAPIError(w, http.StatusInternalServerError, "generate_failed", err.Error())
	}
}

func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return false
	}
	return true
}

func writeBytes(w http.ResponseWriter, r *http.Request, contentType string, data []byte) {
	id, err := manifest.ContentID(data)
	if err == nil {
		etag := `"` + id.String() + `"`
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(data)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}

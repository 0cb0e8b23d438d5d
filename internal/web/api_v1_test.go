package web

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rook-computer/cursorgen/internal/catalog"
	"github.com/rook-computer/cursorgen/internal/curfile"
	"github.com/rook-computer/cursorgen/internal/generate"
	"github.com/rook-computer/cursorgen/internal/palette"
)

func newTestServer(t *testing.T, cfg ServerConfig) *httptest.Server {
	t.Helper()
	lib := NewLibrary(generate.New(catalog.Default()), 32)
	srv := httptest.NewServer(NewDefaultMux(lib, cfg))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestListStyles(t *testing.T) {
	srv := newTestServer(t, ServerConfig{})
	resp := get(t, srv.URL+"/api/v1/styles", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var got []styleResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	var want []styleResponse
	for _, s := range palette.Styles() {
		want = append(want, styleResponse{Name: string(s), WorkingSize: s.WorkingSize(32)})
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("styles mismatch (-want +got):\n%s", diff)
	}
}

func TestStyleDetail(t *testing.T) {
	srv := newTestServer(t, ServerConfig{})
	resp := get(t, srv.URL+"/api/v1/styles/neon_pink", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var got styleDetailResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Style != "neon_pink" || len(got.Cursors) != catalog.Default().Len() || len(got.Failed) != 0 {
		t.Fatalf("unexpected detail: style=%q cursors=%d failed=%v", got.Style, len(got.Cursors), got.Failed)
	}
	for _, c := range got.Cursors {
		e, _ := catalog.Default().Lookup(c.File)
		hs := e.Hotspot(32)
		if c.Hotspot.X != int(hs.X) || c.Hotspot.Y != int(hs.Y) {
			t.Errorf("%s: hotspot %+v, want %+v", c.File, c.Hotspot, hs)
		}
		if c.CID == "" || c.Size == 0 {
			t.Errorf("%s: missing cid or size", c.File)
		}
	}
}

func TestCursorDownload(t *testing.T) {
	srv := newTestServer(t, ServerConfig{})
	resp := get(t, srv.URL+"/api/v1/styles/rainbow/arrow.cur", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != cursorContentType {
		t.Errorf("content type %q", ct)
	}
	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	f, err := curfile.Decode(buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if f.Width != 32 || f.Hotspot != (curfile.Hotspot{}) {
		t.Errorf("unexpected file: %dx%d hotspot %+v", f.Width, f.Height, f.Hotspot)
	}

	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}
	again := get(t, srv.URL+"/api/v1/styles/rainbow/arrow.cur", http.Header{"If-None-Match": {etag}})
	if again.StatusCode != http.StatusNotModified {
		t.Errorf("conditional GET status %d, want 304", again.StatusCode)
	}
}

func TestPreviewSheet(t *testing.T) {
	srv := newTestServer(t, ServerConfig{})
	resp := get(t, srv.URL+"/api/v1/styles/minimal/preview.png", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if _, err := png.Decode(resp.Body); err != nil {
		t.Fatalf("preview decode failed: %v", err)
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t, ServerConfig{})
	for _, tc := range []struct {
		path string
		code string
		want int
	}{
		{"/api/v1/styles/purple", "invalid_style", http.StatusNotFound},
		{"/api/v1/styles/modern_black/nope.cur", "not_found", http.StatusNotFound},
		{"/api/v1/styles/modern_black/a/b", "not_found", http.StatusNotFound},
	} {
		resp := get(t, srv.URL+tc.path, nil)
		if resp.StatusCode != tc.want {
			t.Errorf("%s: status %d, want %d", tc.path, resp.StatusCode, tc.want)
			continue
		}
		var e apiError
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error != tc.code {
			t.Errorf("%s: error %+v (%v), want code %s", tc.path, e, err, tc.code)
		}
	}

	resp, err := http.Post(srv.URL+"/api/v1/styles", "text/plain", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST status %d", resp.StatusCode)
	}
}

func TestDevCORS(t *testing.T) {
	srv := newTestServer(t, ServerConfig{DevMode: true})
	resp := get(t, srv.URL+"/api/v1/styles", http.Header{"Origin": {"http://localhost:5173"}})
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow origin %q", got)
	}
}

func TestLibraryCachesBatch(t *testing.T) {
	lib := NewLibrary(generate.New(catalog.Default()), 32)
	a, err := lib.Batch(context.Background(), palette.ModernWhite)
	if err != nil {
		t.Fatal(err)
	}
	b, err := lib.Batch(context.Background(), palette.ModernWhite)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("second request regenerated the style")
	}
}

func TestLibraryDoesNotCacheUnknownStyles(t *testing.T) {
	g := generate.New(catalog.Default())
	g.Resolver.Policy = palette.FallbackDefault
	lib := NewLibrary(g, 32)

	for i := 0; i < 20; i++ {
		b, err := lib.Batch(context.Background(), palette.Style("junk"+strconv.Itoa(i)))
		if err != nil {
			t.Fatalf("fallback Batch failed: %v", err)
		}
		if len(b.Failed()) != 0 {
			t.Fatalf("fallback batch has failures: %v", b.Err())
		}
	}
	if n := lib.Len(); n > 1 {
		t.Fatalf("cache holds %d batches after unknown styles, want at most 1", n)
	}
	if _, err := lib.Batch(context.Background(), palette.Minimal); err != nil {
		t.Fatal(err)
	}
	if n := lib.Len(); n != 1 {
		t.Fatalf("cache holds %d batches, want 1", n)
	}
}

func TestLibraryServesCachedWhileGenerating(t *testing.T) {
	var block atomic.Bool
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	g := generate.New(catalog.Default())
	g.Encode = func(img image.Image, hs curfile.Hotspot) ([]byte, error) {
		if block.Load() {
			once.Do(func() { close(started) })
			<-release
		}
		return curfile.Encode(img, hs)
	}
	lib := NewLibrary(g, 32)
	if _, err := lib.Batch(context.Background(), palette.ModernBlack); err != nil {
		t.Fatal(err)
	}

	block.Store(true)
	done := make(chan error, 1)
	go func() {
		_, err := lib.Batch(context.Background(), palette.NeonPink)
		done <- err
	}()
	<-started

	got := make(chan struct{})
	go func() {
		_, _ = lib.Batch(context.Background(), palette.ModernBlack)
		close(got)
	}()
	select {
	case <-got:
	case <-time.After(5 * time.Second):
		t.Fatal("cached style blocked behind an in-progress generation")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("generation failed: %v", err)
	}
}

func TestHTTPServerStartStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewHTTPServer(ServerConfig{ListenAddr: "127.0.0.1:0"}, http.NotFoundHandler())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if s.ListenAddr() == nil {
		t.Fatal("no listen address")
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := s.Start(ctx); err == nil {
		t.Error("Start after Stop succeeded")
	}
}

package reprise

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func doJSON(t *testing.T, h http.Handler, method, target string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func TestAPIHealth(t *testing.T) {
	svc, _ := newTestService(t)
	r := Router(svc)
	w, body := doJSON(t, r, "GET", "/health", nil)
	if w.Code != 200 || body["status"] != "ok" {
		t.Fatalf("health: %d %v", w.Code, body)
	}
}

func TestAPIOpenAndList(t *testing.T) {
	// WHAT: POST /api/open records the file; GET /api/recent renders it with
	// index, id, name, and timestamp.
	// WHY: This is the contract the front-end list view is built on.
	svc, _ := newTestService(t)
	r := Router(svc)
	dir := t.TempDir()
	path := writeClip(t, dir, "show.mp4")

	w, body := doJSON(t, r, "POST", "/api/open", map[string]string{"path": path})
	if w.Code != 200 {
		t.Fatalf("open: %d %s", w.Code, w.Body)
	}
	if body["remembered"] != true {
		t.Errorf("remembered: %v", body["remembered"])
	}

	req := httptest.NewRequest("GET", "/api/recent", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list: %v", list)
	}
	if list[0]["name"] != "show.mp4" || list[0]["index"] != float64(0) {
		t.Errorf("entry: %v", list[0])
	}
	if list[0]["id"] == "" || list[0]["last_watched"] == float64(0) {
		t.Errorf("entry missing fields: %v", list[0])
	}
}

func TestAPIOpenValidation(t *testing.T) {
	svc, _ := newTestService(t)
	r := Router(svc)
	if w, _ := doJSON(t, r, "POST", "/api/open", map[string]string{}); w.Code != 400 {
		t.Errorf("missing path: got %d, want 400", w.Code)
	}
	if w, _ := doJSON(t, r, "POST", "/api/open", nil); w.Code != 400 {
		t.Errorf("empty body: got %d, want 400", w.Code)
	}
}

func TestAPIPlayRecentNotFound(t *testing.T) {
	// WHAT: Playing an index that does not exist returns 404.
	svc, _ := newTestService(t)
	r := Router(svc)
	if w, _ := doJSON(t, r, "POST", "/api/recent/3/play", nil); w.Code != 404 {
		t.Errorf("got %d, want 404", w.Code)
	}
	if w, _ := doJSON(t, r, "POST", "/api/recent/x/play", nil); w.Code != 400 {
		t.Errorf("bad index: got %d, want 400", w.Code)
	}
}

func TestAPIPlayAndRemove(t *testing.T) {
	svc, session := newTestService(t)
	r := Router(svc)
	dir := t.TempDir()
	a := writeClip(t, dir, "a.mp4")
	b := writeClip(t, dir, "b.mp4")

	doJSON(t, r, "POST", "/api/open", map[string]string{"path": a})
	doJSON(t, r, "POST", "/api/open", map[string]string{"path": b})

	// Play the older entry (index 1), which promotes it.
	w, body := doJSON(t, r, "POST", "/api/recent/1/play", nil)
	if w.Code != 200 {
		t.Fatalf("play: %d %s", w.Code, w.Body)
	}
	if session.Path() != a {
		t.Errorf("player path: got %q, want %q", session.Path(), a)
	}
	list := body["recent"].([]any)
	if head := list[0].(map[string]any); head["name"] != "a.mp4" {
		t.Errorf("head after promote: %v", head)
	}

	w, body = doJSON(t, r, "DELETE", "/api/recent/0", nil)
	if w.Code != 200 {
		t.Fatalf("delete: %d", w.Code)
	}
	if got := len(body["recent"].([]any)); got != 1 {
		t.Errorf("list after delete: %d entries", got)
	}
}

func TestAPITransport(t *testing.T) {
	svc, _ := newTestService(t)
	r := Router(svc)
	dir := t.TempDir()
	doJSON(t, r, "POST", "/api/open", map[string]string{"path": writeClip(t, dir, "a.mp4")})

	if w, body := doJSON(t, r, "POST", "/api/player/rate", map[string]float64{"rate": 2.0}); w.Code != 200 || body["rate"] != 2.0 {
		t.Errorf("rate: %d %v", w.Code, body)
	}
	if w, _ := doJSON(t, r, "POST", "/api/player/rate", map[string]float64{"rate": -1}); w.Code != 400 {
		t.Errorf("negative rate: got %d, want 400", w.Code)
	}
	if w, _ := doJSON(t, r, "POST", "/api/player/seek", map[string]float64{"seconds": -15}); w.Code != 200 {
		t.Errorf("seek: got %d", w.Code)
	}
	if w, _ := doJSON(t, r, "POST", "/api/player/pause", nil); w.Code != 200 {
		t.Errorf("pause: got %d", w.Code)
	}
	if _, body := doJSON(t, r, "GET", "/api/player", nil); body["rate"] != float64(0) {
		t.Errorf("rate after pause: %v", body["rate"])
	}
}

func TestAPIMetricsExposed(t *testing.T) {
	svc, _ := newTestService(t)
	r := Router(svc)
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("metrics: %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("go_goroutines")) {
		t.Errorf("metrics body looks empty: %d bytes", w.Body.Len())
	}
}

package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-qr-tags/internal/adapters/auth/jwtsession"
	"pet-qr-tags/internal/platform/credentials"
	"pet-qr-tags/internal/platform/logger"
	"pet-qr-tags/internal/router"
)

const (
	code   = "MTRX01"
	pin    = "2222"
	device = "browser-1"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Backends:    router.Memory(logger.Nop()),
		Tokens:      jwtsession.New("test-secret", time.Hour),
		Hasher:      credentials.NewArgon2(credentials.LightParams),
		AdminAPIKey: "admin",
		Version:     "1.3.0",
		SeedTags:    map[string]string{code: pin},
	}))
	t.Cleanup(ts.Close)
	return ts
}

type client struct {
	t      *testing.T
	base   string
	device string
	token  string
}

func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.base+path, rd)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.device != "" {
		req.Header.Set("X-Device-ID", c.device)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return send(c.t, req)
}

func send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer res.Body.Close()
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}

func decode(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("decode %s: %v", string(b), err)
	}
	return out
}

func screen(t *testing.T, b []byte) string {
	t.Helper()
	st, _ := decode(t, b)["state"].(map[string]any)
	s, _ := st["screen"].(string)
	return s
}

func TestHTTP_EndToEnd_OwnerAndFinder(t *testing.T) {
	ts := newServer(t)
	owner := &client{t: t, base: ts.URL, device: device}

	// 1) Escaneo de etiqueta nueva
	st, body := owner.do("POST", "/v1/app/boot", map[string]any{"path": "/qr/" + code})
	if st != http.StatusOK || screen(t, body) != "Login" || decode(t, body)["classification"] != "NEW" {
		t.Fatalf("boot: %d %s", st, body)
	}

	// 2) PIN incorrecto / correcto
	if st, _ := owner.do("POST", "/v1/app/login", map[string]any{"code": code, "pin": "0000"}); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a wrong PIN, got %d", st)
	}
	st, body = owner.do("POST", "/v1/app/login", map[string]any{"code": code, "pin": pin})
	if st != http.StatusOK || screen(t, body) != "Registration" {
		t.Fatalf("login: %d %s", st, body)
	}
	owner.token, _ = decode(t, body)["token"].(string)

	// 3) Foto + registro
	photoURL := uploadPhoto(t, owner)
	st, body = owner.do("POST", "/v1/app/register", map[string]any{"owner": map[string]any{}, "pet": map[string]any{}})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for an empty form, got %d %s", st, body)
	}
	st, body = owner.do("POST", "/v1/app/register", map[string]any{
		"owner": map[string]any{"full_name": "Ayşe Yılmaz", "email": "ayse@example.com", "phone": "0555", "city": "Ankara", "district": "Çankaya"},
		"pet": map[string]any{
			"name":        map[string]any{"value": "Pamuk", "is_public": true},
			"type":        "OTHER",
			"custom_type": "Tavşan",
			"photo_url":   map[string]any{"value": photoURL, "is_public": true},
		},
	})
	if st != http.StatusCreated || screen(t, body) != "OwnerDashboard" {
		t.Fatalf("register: %d %s", st, body)
	}

	// Etiqueta registrada y no perdida: sin vista pública ni contacto
	stranger := &client{t: t, base: ts.URL, device: "stranger"}
	st, body = stranger.do("GET", "/v1/tags/"+code, nil)
	if st != http.StatusOK || decode(t, body)["classification"] != "REGISTERED" {
		t.Fatalf("classify registered: %d %s", st, body)
	}
	st, body = stranger.do("GET", "/v1/finder/"+code, nil)
	if st != http.StatusNotFound || bytes.Contains(body, []byte("contact")) || bytes.Contains(body, []byte("0555")) {
		t.Fatalf("safe pet must have no public view, got %d %s", st, body)
	}

	// 4) Modo perdido
	if st, body := owner.do("POST", "/v1/app/navigate", map[string]any{"to": "LostModeEditor"}); st != http.StatusOK {
		t.Fatalf("navigate: %d %s", st, body)
	}
	owner.do("POST", "/v1/app/lost/toggle", map[string]any{"active": true, "location": map[string]any{"lat": 39.92, "lng": 32.85}})
	st, body = owner.do("POST", "/v1/app/navigate", map[string]any{"to": "Settings"})
	if st != http.StatusConflict || decode(t, body)["prompt"] == "" {
		t.Fatalf("expected 409 with prompt, got %d %s", st, body)
	}
	owner.do("PUT", "/v1/app/lost/message", map[string]any{"message": "ürkek"})
	if st, body := owner.do("POST", "/v1/app/lost/save", nil); st != http.StatusOK {
		t.Fatalf("save: %d %s", st, body)
	}
	st, body = stranger.do("GET", "/v1/finder/"+code, nil)
	if st != http.StatusOK {
		t.Fatalf("lost pet public view: %d %s", st, body)
	}
	if c, _ := decode(t, body)["contact"].(map[string]any); c["phone"] != "0555" {
		t.Fatalf("lost pet must expose the contact, got %s", body)
	}

	st, body = owner.do("GET", "/v1/tags/"+code, nil)
	if st != http.StatusOK || decode(t, body)["classification"] != "LOST" {
		t.Fatalf("classify: %d %s", st, body)
	}

	// 5) Quien la encuentra
	finder := &client{t: t, base: ts.URL, device: "finder-phone"}
	st, body = finder.do("POST", "/v1/app/boot", map[string]any{"path": "/qr/" + code})
	if st != http.StatusOK || screen(t, body) != "FinderView" {
		t.Fatalf("finder boot: %d %s", st, body)
	}
	view, _ := decode(t, body)["finder"].(map[string]any)
	if view["name"] != "Pamuk" || view["type"] != "Tavşan" {
		t.Fatalf("unexpected finder view %v", view)
	}
	st, body = finder.do("POST", "/v1/app/finder/consent", map[string]any{"location": map[string]any{"lat": 41.0, "lng": 29.0}})
	if st != http.StatusOK || decode(t, body)["logged"] != true {
		t.Fatalf("consent: %d %s", st, body)
	}

	// 6) El dueño ve el escaneo
	st, body = owner.do("GET", "/v1/app/scans", nil)
	if st != http.StatusOK {
		t.Fatalf("scans: %d %s", st, body)
	}
	var list []map[string]any
	_ = json.Unmarshal(body, &list)
	if len(list) != 1 {
		t.Fatalf("expected one scan, got %s", body)
	}

	// 7) Volver a Safe exige la contraseña
	owner.do("POST", "/v1/app/lost/toggle", map[string]any{"active": false})
	if st, _ := owner.do("POST", "/v1/app/lost/save", map[string]any{"password": "nope"}); st != http.StatusForbidden {
		t.Fatalf("expected 403 for a wrong password, got %d", st)
	}
	if st, body := owner.do("POST", "/v1/app/lost/save", map[string]any{"password": pin}); st != http.StatusOK {
		t.Fatalf("save safe: %d %s", st, body)
	}

	// 8) Logout entrando por la etiqueta
	st, body = owner.do("POST", "/v1/app/logout", nil)
	if st != http.StatusOK {
		t.Fatalf("logout: %d %s", st, body)
	}
	eff, _ := decode(t, body)["effect"].(map[string]any)
	if eff["reload"] != true || eff["clear_session"] != true {
		t.Fatalf("unexpected effect %v", eff)
	}
}

func uploadPhoto(t *testing.T, c *client) string {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="photo"; filename="pamuk.png"`}
	h["Content-Type"] = []string{"image/png"}
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("part: %v", err)
	}
	_, _ = part.Write([]byte("\x89PNG fake"))
	_ = mw.Close()

	req, _ := http.NewRequest("POST", c.base+"/v1/app/pet/photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Device-ID", c.device)
	req.Header.Set("Authorization", "Bearer "+c.token)
	st, body := send(t, req)
	if st != http.StatusCreated && st != http.StatusOK {
		t.Fatalf("upload: %d %s", st, body)
	}
	url, _ := decode(t, body)["url"].(string)
	if !strings.HasPrefix(url, router.MediaPrefix+"/") {
		t.Fatalf("unexpected photo url %q", url)
	}

	// La foto se sirve desde el mismo server.
	req, _ = http.NewRequest("GET", c.base+url, nil)
	if st, _ := send(t, req); st != http.StatusOK {
		t.Fatalf("media: %d", st)
	}
	return url
}

func TestHTTP_AdminProvisioning(t *testing.T) {
	ts := newServer(t)
	c := &client{t: t, base: ts.URL}

	if st, _ := c.do("POST", "/v1/admin/tags", map[string]any{"code": "NEW001", "pin": "1234"}); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without admin key, got %d", st)
	}

	b, _ := json.Marshal(map[string]any{"code": "NEW001", "pin": "1234"})
	req, _ := http.NewRequest("POST", ts.URL+"/v1/admin/tags", bytes.NewReader(b))
	req.Header.Set("X-Admin-Key", "admin")
	if st, body := send(t, req); st != http.StatusCreated {
		t.Fatalf("provision: %d %s", st, body)
	}

	st, body := c.do("GET", "/v1/tags/NEW001", nil)
	if st != http.StatusOK || decode(t, body)["classification"] != "NEW" {
		t.Fatalf("classify: %d %s", st, body)
	}
}

func TestHTTP_HealthAndSwagger(t *testing.T) {
	ts := newServer(t)
	c := &client{t: t, base: ts.URL}
	if st, body := c.do("GET", "/health", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, body)
	}
	if st, body := c.do("GET", "/swagger/doc.json", nil); st != http.StatusOK || !strings.Contains(string(body), "/v1/app/boot") {
		t.Fatalf("swagger: %d", st)
	}
}

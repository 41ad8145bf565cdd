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

	"cat-api/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	// Options en cero: repos in-memory, auth por headers de debug
	return httptest.NewServer(router.NewRouter(router.Options{}))
}

func TestHTTP_OwnershipScenario(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	// 1) u1 crea C1 en (24.9, 60.2)
	catID := createCat(t, ts.URL, "u1", "24.9", "60.2")

	// 2) u2 intenta subirle el peso: 404, no 401 (no filtramos existencia)
	{
		st, body := doJSON(t, ts.URL, "PUT", "/cats/"+catID, "u2", "", map[string]any{"weight": 5})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for non-owner update, got %d body=%s", st, body)
		}
	}

	// 3) u1 hace el mismo update y queda aplicado
	{
		st, body := doJSON(t, ts.URL, "PUT", "/cats/"+catID, "u1", "", map[string]any{"weight": 5})
		if st != http.StatusOK {
			t.Fatalf("expected 200 for owner update, got %d body=%s", st, body)
		}
		var resp map[string]any
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp["weight"] != 5.0 {
			t.Fatalf("expected weight 5, got %v", resp["weight"])
		}
	}

	// 4) sin actor: 401
	{
		st, _ := doJSON(t, ts.URL, "PUT", "/cats/"+catID, "", "", map[string]any{"weight": 6})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without actor, got %d", st)
		}
	}
}

func TestHTTP_BoundingBox(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c1 := createCat(t, ts.URL, "u1", "24.9", "60.2")
	_ = createCat(t, ts.URL, "u2", "26.0", "62.0")

	// Lectura pública: sin header de usuario a propósito
	st, body := doJSON(t, ts.URL, "GET", "/cats/area?bottomLeft=24.0,60.0&topRight=25.0,61.0", "", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, body)
	}

	var items []map[string]any
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected exactly 1 cat in box, got %d", len(items))
	}
	if items[0]["id"] != c1 {
		t.Fatalf("expected %s in box, got %v", c1, items[0]["id"])
	}
}

func TestHTTP_AdminOwnerTransfer(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	catID := createCat(t, ts.URL, "u1", "24.9", "60.2")

	// Un user común no puede usar el endpoint admin
	{
		st, _ := doJSON(t, ts.URL, "PUT", "/cats/admin/"+catID, "u2", "", map[string]any{"owner": "u3"})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 for non-admin, got %d", st)
		}
	}

	// Admin transfiere el owner a u3
	{
		st, body := doJSON(t, ts.URL, "PUT", "/cats/admin/"+catID, "a1", "admin", map[string]any{"owner": "u3"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 for admin transfer, got %d body=%s", st, body)
		}
	}

	// El dueño original ya no puede mutar; el nuevo sí
	{
		st, _ := doJSON(t, ts.URL, "PUT", "/cats/"+catID, "u1", "", map[string]any{"weight": 6})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for previous owner, got %d", st)
		}
		st, _ = doJSON(t, ts.URL, "PUT", "/cats/"+catID, "u3", "", map[string]any{"weight": 6})
		if st != http.StatusOK {
			t.Fatalf("expected 200 for new owner, got %d", st)
		}
	}

	// Admin también puede borrar cualquier gato
	{
		st, _ := doJSON(t, ts.URL, "DELETE", "/cats/admin/"+catID, "a1", "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 for admin delete, got %d", st)
		}
		st, _ = doJSON(t, ts.URL, "GET", "/cats/"+catID, "", "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
}

func TestHTTP_DeleteIsTerminal(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	catID := createCat(t, ts.URL, "u5", "10.0", "10.0")

	st, _ := doJSON(t, ts.URL, "DELETE", "/cats/"+catID, "u5", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 deleting own cat, got %d", st)
	}

	if st, _ := doJSON(t, ts.URL, "GET", "/cats/"+catID, "", "", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", st)
	}
	if st, _ := doJSON(t, ts.URL, "DELETE", "/cats/"+catID, "u5", "", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 deleting twice, got %d", st)
	}
}

func TestHTTP_CreateRequiresActorAndCoordinates(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	// Sin actor
	{
		st, _ := postCatForm(t, ts.URL, "", map[string]string{
			"cat_name": "Milo", "weight": "4.2", "birthdate": "2024-03-01",
			"longitude": "24.9", "latitude": "60.2",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without actor, got %d", st)
		}
	}

	// Sin coordenadas derivables
	{
		st, body := postCatForm(t, ts.URL, "u1", map[string]string{
			"cat_name": "Milo", "weight": "4.2", "birthdate": "2024-03-01",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 without coordinates, got %d body=%s", st, body)
		}
	}

	// Birthdate futura: validación del core
	{
		st, _ := postCatForm(t, ts.URL, "u1", map[string]string{
			"cat_name": "Milo", "weight": "4.2", "birthdate": "2099-01-01",
			"longitude": "24.9", "latitude": "60.2",
		})
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 for future birthdate, got %d", st)
		}
	}
}

func TestHTTP_ResponsesRedactOwner(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	// Registramos un usuario real para que el owner se resuelva con perfil
	var userID string
	{
		st, body := doJSON(t, ts.URL, "POST", "/users", "", "", map[string]any{
			"user_name": "ada", "email": "ada@example.com", "password": "hunter22",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 creating user, got %d body=%s", st, body)
		}
		var resp map[string]any
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		userID, _ = resp["id"].(string)
		if userID == "" {
			t.Fatalf("expected user id in response")
		}
	}

	catID := createCat(t, ts.URL, userID, "24.9", "60.2")

	st, body := doJSON(t, ts.URL, "GET", "/cats/"+catID, "", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}

	lower := strings.ToLower(string(body))
	for _, banned := range []string{"password", "role"} {
		if strings.Contains(lower, banned) {
			t.Fatalf("response leaks %q: %s", banned, body)
		}
	}
	if !strings.Contains(lower, `"user_name":"ada"`) {
		t.Fatalf("expected resolved owner profile, got %s", body)
	}
	if !strings.Contains(lower, `"type":"point"`) {
		t.Fatalf("expected geojson location, got %s", body)
	}
}

func TestHTTP_ListByOwner(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	createCat(t, ts.URL, "u1", "24.9", "60.2")
	createCat(t, ts.URL, "u2", "26.0", "62.0")

	// Sin actor: 401
	if st, _ := doJSON(t, ts.URL, "GET", "/cats/user", "", "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without actor")
	}

	st, body := doJSON(t, ts.URL, "GET", "/cats/user", "u1", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	var items []map[string]any
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected only u1's cat, got %d", len(items))
	}
}

// -------------------------
// Helpers
// -------------------------

func createCat(t *testing.T, baseURL, userID, lon, lat string) string {
	t.Helper()

	st, body := postCatForm(t, baseURL, userID, map[string]string{
		"cat_name":  "Milo",
		"weight":    "4.2",
		"birthdate": "2024-03-01",
		"longitude": lon,
		"latitude":  lat,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating cat, got %d body=%s", st, body)
	}

	var resp map[string]any
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal create response: %v", err)
	}
	id, _ := resp["id"].(string)
	if id == "" {
		t.Fatalf("expected cat id in response: %s", body)
	}
	return id
}

func postCatForm(t *testing.T, baseURL, debugUserID string, fields map[string]string) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req, err := http.NewRequest("POST", baseURL+"/cats", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, body
}

func doJSON(t *testing.T, baseURL, method, path, debugUserID, debugRole string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	if debugRole != "" {
		req.Header.Set("X-Debug-Role", debugRole)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

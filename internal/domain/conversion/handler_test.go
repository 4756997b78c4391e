package conversion

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _ := newTestService()
	return NewHandler(svc), echo.New()
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Convert(t *testing.T) {
	h, e := newTestHandler()

	c, rec := postJSON(e, "/api/v1/convert/patients",
		`{"record":{"Id":"p1","FIRST":"Jane","LAST":"Doe","GENDER":"F"}}`)
	c.SetParamNames("kind")
	c.SetParamValues("patients")

	if err := h.Convert(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp convertResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Documents) != 1 {
		t.Fatalf("documents = %d, want 1", len(resp.Documents))
	}
	if resp.Documents[0].Type() != "Patient" {
		t.Errorf("resourceType = %q, want Patient", resp.Documents[0].Type())
	}
}

func TestHandler_Convert_UnknownKind(t *testing.T) {
	h, e := newTestHandler()

	c, _ := postJSON(e, "/api/v1/convert/widgets", `{"record":{}}`)
	c.SetParamNames("kind")
	c.SetParamValues("widgets")

	err := h.Convert(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_Convert_OverridesApplied(t *testing.T) {
	h, e := newTestHandler()

	c, rec := postJSON(e, "/api/v1/convert/conditions",
		`{"record":{"PATIENT":"p1","CODE":"22298006"},"overrides":{"patient":"Patient/real-id"}}`)
	c.SetParamNames("kind")
	c.SetParamValues("conditions")

	if err := h.Convert(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp convertResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	subject, _ := resp.Documents[0]["subject"].(map[string]interface{})
	if ref, _ := subject["reference"].(string); ref != "Patient/real-id" {
		t.Errorf("subject = %q, want Patient/real-id", ref)
	}
}

func TestHandler_Revert(t *testing.T) {
	h, e := newTestHandler()

	c, rec := postJSON(e, "/api/v1/revert/patients",
		`{"resourceType":"Patient","id":"p1","gender":"male"}`)
	c.SetParamNames("kind")
	c.SetParamValues("patients")

	if err := h.Revert(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp revertResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(resp.Records))
	}
	if resp.Records[0]["GENDER"] != "M" {
		t.Errorf("GENDER = %q, want M", resp.Records[0]["GENDER"])
	}
}

func TestHandler_Revert_WrongResourceType(t *testing.T) {
	h, e := newTestHandler()

	c, _ := postJSON(e, "/api/v1/revert/patients", `{"resourceType":"Device"}`)
	c.SetParamNames("kind")
	c.SetParamValues("patients")

	err := h.Revert(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_Bundle(t *testing.T) {
	h, e := newTestHandler()

	c, rec := postJSON(e, "/api/v1/bundles", `{
		"patient": {"Id":"p1","FIRST":"Jane","LAST":"Doe","GENDER":"F"},
		"encounters": [{"Id":"e1","PATIENT":"p1","ENCOUNTERCLASS":"emergency"}],
		"conditions": [{"PATIENT":"p1","ENCOUNTER":"e1","CODE":"22298006"}]
	}`)

	if err := h.Bundle(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var bundle map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &bundle); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if bundle["resourceType"] != "Bundle" {
		t.Errorf("resourceType = %v, want Bundle", bundle["resourceType"])
	}
	entries, _ := bundle["entry"].([]interface{})
	if len(entries) != 3 {
		t.Errorf("entries = %d, want 3", len(entries))
	}
}

func TestHandler_Extract(t *testing.T) {
	h, e := newTestHandler()

	// Round-trip through the bundle endpoint first.
	c, rec := postJSON(e, "/api/v1/bundles", `{
		"patient": {"Id":"p1","FIRST":"Jane","LAST":"Doe","GENDER":"F"},
		"encounters": [{"Id":"e1","PATIENT":"p1","ENCOUNTERCLASS":"emergency"}]
	}`)
	if err := h.Bundle(c); err != nil {
		t.Fatalf("bundle error: %v", err)
	}

	c2, rec2 := postJSON(e, "/api/v1/bundles/extract", rec.Body.String())
	if err := h.Extract(c2); err != nil {
		t.Fatalf("extract error: %v", err)
	}

	var resp extractResponse
	if err := json.Unmarshal(rec2.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Patients) != 1 {
		t.Fatalf("patients = %d, want 1", len(resp.Patients))
	}
	if resp.Patients[0]["FIRST"] != "Jane" {
		t.Errorf("FIRST = %q, want Jane", resp.Patients[0]["FIRST"])
	}
	if len(resp.Encounters) != 1 {
		t.Errorf("encounters = %d, want 1", len(resp.Encounters))
	}
}

func TestHandler_ListConversions(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	// Serve one conversion so the list has content.
	c, _ := postJSON(e, "/api/v1/convert/patients", `{"record":{"Id":"p1"}}`)
	c.SetParamNames("kind")
	c.SetParamValues("patients")
	if err := h.Convert(c); err != nil {
		t.Fatalf("convert error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversions", nil)
	rec := httptest.NewRecorder()
	if err := h.ListConversions(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
}

func TestHandler_ListKinds(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/kinds", nil)
	rec := httptest.NewRecorder()
	if err := h.ListKinds(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Kinds []string `json:"kinds"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Kinds) != 18 {
		t.Errorf("kinds = %d, want 18", len(resp.Kinds))
	}
}

func TestRegisterRoutes_StatelessSkipsConversions(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())
	h := NewHandler(svc)
	e := echo.New()
	h.RegisterRoutes(e.Group("/api/v1"))

	for _, route := range e.Routes() {
		if strings.HasPrefix(route.Path, "/api/v1/conversions") {
			t.Errorf("conversions route registered without a store: %s", route.Path)
		}
	}
}

package validator_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tocampus/governance/pkg/httpx"
	pkgvalidator "github.com/tocampus/governance/pkg/validator"
)

type submitReq struct {
	Kind    string   `json:"kind"     validate:"required,oneofci=EVENT ANNOUNCEMENT"`
	Title   string   `json:"title"    validate:"required,notblank,max=20"`
	ShareTo []string `json:"share_to" validate:"max=2,dive,oneofci=TWITTER LINKEDIN"`
}

func TestFormatValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		req   submitReq
		field string
		want  string
	}{
		{"missing kind", submitReq{Title: "Fair"}, "kind", "This field is required"},
		{"unknown kind", submitReq{Kind: "POLL", Title: "Fair"}, "kind", "Must be one of: EVENT ANNOUNCEMENT"},
		{"blank title", submitReq{Kind: "EVENT", Title: "   "}, "title", "Must not be blank"},
		{"long title", submitReq{Kind: "EVENT", Title: strings.Repeat("a", 21)}, "title", "Maximum length is 20"},
		{"too many platforms", submitReq{Kind: "EVENT", Title: "Fair", ShareTo: []string{"TWITTER", "LINKEDIN", "TWITTER"}}, "share_to", "Must contain at most 2 items"},
		{"unknown platform", submitReq{Kind: "EVENT", Title: "Fair", ShareTo: []string{"twitter", "MYSPACE"}}, "share_to[1]", "Must be one of: TWITTER LINKEDIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgvalidator.Validate(&tt.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			m := pkgvalidator.FormatValidationErrors(err)
			if m[tt.field] != tt.want {
				t.Errorf("%s: got %q, want %q (all: %v)", tt.field, m[tt.field], tt.want, m)
			}
		})
	}
}

func TestValidate_CaseInsensitiveEnums(t *testing.T) {
	req := submitReq{Kind: "event", Title: "Fair", ShareTo: []string{"linkedin"}}
	if err := pkgvalidator.Validate(&req); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		limit     int64
		wantOK    bool
		wantCode  int
		wantInMsg string
	}{
		{name: "valid", body: `{"kind":"EVENT","title":"Welcome Fair"}`, wantOK: true},
		{name: "malformed json", body: `{bad json`, wantCode: http.StatusBadRequest, wantInMsg: "Invalid JSON"},
		{name: "missing title", body: `{"kind":"EVENT"}`, wantCode: http.StatusUnprocessableEntity, wantInMsg: "Validation failed"},
		{name: "body over limit", body: `{"kind":"EVENT","title":"Welcome Fair"}`, limit: 8, wantCode: http.StatusRequestEntityTooLarge, wantInMsg: "too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				got *submitReq
				ok  bool
			)
			h := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, ok = pkgvalidator.ValidateRequest[submitReq](w, r)
				if ok {
					w.WriteHeader(http.StatusOK)
				}
			}))
			if tt.limit > 0 {
				h = httpx.RequestBodyLimit(tt.limit)(h)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))

			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v (body %s)", ok, tt.wantOK, w.Body.String())
			}
			if tt.wantOK {
				if got.Title != "Welcome Fair" {
					t.Errorf("title: got %q", got.Title)
				}
				return
			}
			if w.Code != tt.wantCode {
				t.Errorf("code: got %d, want %d", w.Code, tt.wantCode)
			}
			if !strings.Contains(w.Body.String(), tt.wantInMsg) {
				t.Errorf("body %q does not contain %q", w.Body.String(), tt.wantInMsg)
			}
		})
	}
}

func TestValidateRequest_FieldsUseJSONNames(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Fair"}`))
	if _, ok := pkgvalidator.ValidateRequest[submitReq](w, r); ok {
		t.Fatal("expected ok=false")
	}
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, found := body.Fields["kind"]; !found {
		t.Errorf("expected error keyed by json name, got %v", body.Fields)
	}
}

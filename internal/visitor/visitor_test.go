package visitor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var seen string
	h := Middleware(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func TestMiddleware_IssuesCookie(t *testing.T) {
	rec, id := serve(t, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("id %q is not a uuid", id)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].Value != id {
		t.Fatalf("cookies = %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("cookie not HttpOnly")
	}
}

func TestMiddleware_KeepsExistingID(t *testing.T) {
	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: existing})

	rec, id := serve(t, req)
	if id != existing {
		t.Errorf("id = %q, want %q", id, existing)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("cookie reissued for known visitor")
	}
}

func TestMiddleware_ReplacesMalformedID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "../../etc"})

	_, id := serve(t, req)
	if id == "../../etc" || id == "" {
		t.Errorf("malformed id kept: %q", id)
	}
}

func TestFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := FromContext(req.Context()); got != "" {
		t.Errorf("FromContext = %q", got)
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(e *testEnv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure", e.handler.sessionMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "session": currentSession(c).ID()})
	})
	return r
}

func TestSessionMiddleware_Errors(t *testing.T) {
	type want struct {
		code   int
		errMsg string
	}
	cases := []struct {
		name     string
		header   string
		parseErr error
		want     want
	}{
		{
			name:   "missing header",
			header: "",
			want:   want{code: http.StatusUnauthorized, errMsg: "missing Authorization header"},
		},
		{
			name:   "invalid scheme",
			header: "Token abc",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:   "bearer without token",
			header: "Bearer",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:     "expired/invalid token",
			header:   "Bearer expired",
			parseErr: errors.New("expired"),
			want:     want{code: http.StatusUnauthorized, errMsg: "invalid or expired token"},
		},
		{
			name:   "unknown session",
			header: "Bearer tok-no-such-session",
			want:   want{code: http.StatusUnauthorized, errMsg: "session not found"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEnv()
			e.tokens.parseErr = tc.parseErr
			r := newMiddlewareOnlyRouter(e)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != tc.want.code {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.want.code, w.Body.String())
			}

			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tc.want.errMsg {
				t.Fatalf("error message: got %q, want %q", out.Error, tc.want.errMsg)
			}
		})
	}
}

func TestSessionMiddleware_SuccessSetsSessionAndProceeds(t *testing.T) {
	e := newTestEnv()
	s := e.sessions.Create()
	r := newMiddlewareOnlyRouter(e)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer tok-"+s.ID())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		OK      bool   `json:"ok"`
		Session string `json:"session"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.OK || resp.Session != s.ID() {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

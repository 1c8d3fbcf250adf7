package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)

	testCases := []struct {
		name           string
		requestID      string
		handler        gin.HandlerFunc
		wantStatusCode int
		wantLevel      string
	}{
		{
			name: "GeneratedRequestID",
			handler: func(gctx *gin.Context) {
				zerolog.Ctx(gctx.Request.Context()).Info().Msg("inside handler")
				gctx.Status(http.StatusOK)
			},
			wantStatusCode: http.StatusOK,
			wantLevel:      `"level":"info"`,
		},
		{
			name:      "ForwardedRequestID",
			requestID: "req-42",
			handler: func(gctx *gin.Context) {
				gctx.Status(http.StatusNoContent)
			},
			wantStatusCode: http.StatusNoContent,
			wantLevel:      `"level":"info"`,
		},
		{
			name: "Panic",
			handler: func(gctx *gin.Context) {
				panic("boom")
			},
			wantStatusCode: http.StatusInternalServerError,
			wantLevel:      `"level":"error"`,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			server := gin.New()
			server.Use(RequestLogger(zerolog.New(&buf)))
			server.GET("/", tc.handler)

			request, err := http.NewRequest(http.MethodGet, "/", nil)
			if err != nil {
				t.Fatalf("http.NewRequest() returned error: %v", err)
			}

			if tc.requestID != "" {
				request.Header.Set(RequestIDHeader, tc.requestID)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, request)

			if recorder.Code != tc.wantStatusCode {
				t.Errorf("recorder.Code = %v, want %v", recorder.Code, tc.wantStatusCode)
			}

			gotID := recorder.Header().Get(RequestIDHeader)
			if gotID == "" {
				t.Fatalf("response has no %s header", RequestIDHeader)
			}

			if tc.requestID != "" && gotID != tc.requestID {
				t.Errorf("%s = %q, want %q", RequestIDHeader, gotID, tc.requestID)
			}

			logs := buf.String()
			if !bytes.Contains([]byte(logs), []byte(`"request_id":"`+gotID+`"`)) {
				t.Errorf("logs %q do not carry request id %q", logs, gotID)
			}

			if !bytes.Contains([]byte(logs), []byte(tc.wantLevel)) {
				t.Errorf("logs %q do not contain %s", logs, tc.wantLevel)
			}
		})
	}
}

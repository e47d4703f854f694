package testhelpers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-middleware"
	"github.com/stretchr/testify/require"
)

// BuildAuthRequest builds a request carrying jwtString in the token cookie.
// An empty jwtString yields an anonymous request.
func (h *TestHelper) BuildAuthRequest(method, reqURL, jwtString string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case []byte:
			buf.Write(b)
		case string:
			buf.WriteString(b)
		default:
			require.NoError(h.T, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, reqURL, &buf)
	if jwtString != "" {
		req.AddCookie(&http.Cookie{
			Name:  middleware.AccessTokenCookieName,
			Value: jwtString,
			Path:  "/",
		})
	}
	if buf.Len() > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// Do serves req through handler and returns the recorder.
func (h *TestHelper) Do(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// DecodeJSON unmarshals a recorded body into a generic map.
func (h *TestHelper) DecodeJSON(rr *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	require.NoError(h.T, json.Unmarshal(rr.Body.Bytes(), &out), "body: %s", rr.Body.String())
	return out
}

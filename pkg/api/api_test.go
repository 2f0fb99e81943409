package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"des-go/pkg/des"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Api.ServeHTTP(rec, req)
	return rec
}

func TestEncryptDecrypt(t *testing.T) {
	s := NewServer(4)
	rec := do(t, s, http.MethodPost, "/v1/encrypt", `{"key":"133457799BBCDFF1","block":"0123456789ABCDEF"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp BlockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "85e813540f0ab405", resp.Block)

	rec = do(t, s, http.MethodPost, "/v1/decrypt", `{"key":"0x133457799bbcdff1","block":"85e813540f0ab405"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0123456789abcdef", resp.Block)

	assert.Len(t, s.ciphers, 1, "one cached cipher per key")
	assert.Equal(t, des.KeyScheduled, s.cipher(0x133457799BBCDFF1).State())
}

func TestInvalidInput(t *testing.T) {
	s := NewServer(4)
	cases := []struct {
		body, want string
	}{
		{`{"key":"1ffffffffffffffff","block":"00"}`, "invalid key"},
		{`{"key":"00","block":"10000000000000000"}`, "invalid block"},
		{`{"key":"","block":"00"}`, "invalid key"},
	}
	for _, tc := range cases {
		rec := do(t, s, http.MethodPost, "/v1/encrypt", tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), tc.want)
	}
	rec := do(t, s, http.MethodPost, "/v1/decrypt", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.ciphers)
}

func TestTrace(t *testing.T) {
	s := NewServer(4)
	rec := do(t, s, http.MethodPost, "/v1/trace?group=8", `{"key":"133457799BBCDFF1","block":"0123456789ABCDEF"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "encrypt 0123456789abcdef\n"))
	assert.Contains(t, body, "L0: 11001100 00000000 11001100 11111111\n")

	rec = do(t, s, http.MethodPost, "/v1/trace?op=decrypt", `{"key":"133457799BBCDFF1","block":"85E813540F0AB405"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "decrypt 85e813540f0ab405\n"))

	rec = do(t, s, http.MethodPost, "/v1/trace?op=sideways", `{"key":"00","block":"00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, s, http.MethodPost, "/v1/trace?group=x", `{"key":"00","block":"00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGraphDOT(t *testing.T) {
	s := NewServer(4)
	rec := do(t, s, http.MethodPost, "/v1/graph", `{"key":"133457799BBCDFF1","block":"0123456789ABCDEF"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "digraph rounds {"))
}

func TestSelfTest(t *testing.T) {
	s := NewServer(4)
	rec := do(t, s, http.MethodGet, "/v1/selftest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp SelfTestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, len(des.KnownAnswers), resp.Vectors)
}

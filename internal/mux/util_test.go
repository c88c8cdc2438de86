package mux

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pineapple-server/internal/config"
	"pineapple-server/internal/jwt"
	"pineapple-server/pkg/history"
	"pineapple-server/pkg/pineapple"
	"pineapple-server/pkg/room"
)

func setupJWT() {
	os.Setenv("PINEAPPLE_JWT_PUBLIC_KEY", "testdata/public.pem")
	os.Setenv("PINEAPPLE_JWT_PRIVATE_KEY", "testdata/private.key")
	if err := config.Load(); err != nil {
		panic(err)
	}

	jwt.LoadKeys()
}

func testMux(t *testing.T) (*Mux, *history.Memory) {
	t.Helper()
	setupJWT()

	recorder := history.NewMemory()
	lobby := room.NewLobby(room.NewMemoryStore(), recorder, pineapple.DefaultOptions())
	lobby.StartShift()

	return NewMux("", lobby, recorder), recorder
}

func playerToken(t *testing.T, playerID string) string {
	t.Helper()
	setupJWT()

	signedToken, err := jwt.Sign(playerID)
	assert.NoError(t, err)
	return signedToken
}

func Test_remoteAddr(t *testing.T) {
	r := &http.Request{RemoteAddr: "127.0.0.1:5000"}
	assert.Equal(t, "127.0.0.1", remoteAddr(r))

	r.RemoteAddr = "[::1]:5000"
	assert.Equal(t, "[::1]", remoteAddr(r))
}

func Test_parseRows(t *testing.T) {
	req := func(queryString string) *http.Request {
		req, _ := http.NewRequest(http.MethodGet, "https://example.domain/"+queryString, nil)
		return req
	}

	rows, err := parseRows(req(""))
	assert.NoError(t, err)
	assert.Equal(t, defaultRows, rows)

	rows, err = parseRows(req("?rows=25"))
	assert.NoError(t, err)
	assert.Equal(t, 25, rows)

	rows, err = parseRows(req("?rows=0"))
	assert.EqualError(t, err, "rows must be greater than zero")
	assert.Equal(t, 0, rows)

	rows, err = parseRows(req(fmt.Sprintf("?rows=%d", maxRows+1)))
	assert.EqualError(t, err, fmt.Sprintf("rows cannot be greater than %d", maxRows))
	assert.Equal(t, 0, rows)
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return nil
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

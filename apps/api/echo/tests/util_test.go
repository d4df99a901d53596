package tests

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PrimotionStudio/z1academic/apps/api/echo"
	"github.com/PrimotionStudio/z1academic/apps/shared"
	"github.com/PrimotionStudio/z1academic/storage/database"
	"github.com/PrimotionStudio/z1academic/storage/database/inmem"
	"github.com/PrimotionStudio/z1academic/storage/files"
	"github.com/PrimotionStudio/z1academic/tests"
)

const filesURL = "http://files.test"

// testApp is a server backed by a fresh in-memory store.
type testApp struct {
	*echoapi.Server
	repos *database.Repositories
	files *files.MemoryStore
}

func setup(t *testing.T) testApp {
	conf := testutil.NewConfig()
	repos := database.InMemory(inmemdb.Open())
	store := files.NewMemoryStore(filesURL)
	validate, translator := shared.NewValidator()

	app := echoapi.NewServer("", nil, &echoapi.Deps{
		Conf:       conf,
		Logger:     testutil.NewLogger(conf),
		Validate:   validate,
		Translator: translator,
		Services:   shared.NewServices(conf, repos, store),
	})
	return testApp{Server: app, repos: repos, files: store}
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

// serve runs req against app and returns the recorded response.
func (app testApp) serve(method, path string, data ...[]byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func (app testApp) run(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.serve(tt.method, tt.path, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// upload posts content as the multipart `file` field, under filename.
func (app testApp) upload(t *testing.T, filename string, content []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

// errBody is the body of a failed request.
func errBody(t *testing.T, msg string, fields ...map[string]string) []byte {
	body := map[string]interface{}{"message": msg}
	if len(fields) > 0 {
		body["fields"] = fields[0]
	}
	return marshallObj(t, body)
}

// decode unmarshals the response body value under key into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, key string, v interface{}) {
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	raw, ok := body[key]
	require.Truef(t, ok, "%q not in %s", key, rec.Body.String())
	require.NoError(t, json.Unmarshal(raw, v))
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

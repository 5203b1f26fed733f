package testhelpers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/ataboo/go-furglo-web/pkg/common"
	"github.com/ataboo/go-furglo-web/pkg/dbcontext"
	"github.com/gin-gonic/gin"
	"github.com/volatiletech/sqlboiler/v4/queries"
)

var TestDBLock sync.Mutex

func init() {
	gin.SetMode(gin.TestMode)
}

func NewGinTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	return c, recorder
}

// InitTestDb connects to DB_TEST_CONNECTION_STRING, skipping the test when it is not configured.
func InitTestDb(t *testing.T, fresh bool) *sql.DB {
	common.LoadEnv()

	conn := os.Getenv(common.EnvDbTestConnectionString)
	if conn == "" {
		t.Skip(common.EnvDbTestConnectionString + " not set")
	}

	db, err := sql.Open("postgres", conn)
	if err != nil {
		t.Fatal(err)
		return nil
	}

	if err := dbcontext.MigrateDB(db); err != nil {
		t.Fatal(err)
	}

	if fresh {
		if _, err := queries.Raw(`DELETE FROM client_storage`).ExecContext(context.Background(), db); err != nil {
			t.Error(err)
		}
	}

	return db
}

func SetTestJsonPostRequest(g *gin.Context, url string, data interface{}) error {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return err
	}
	g.Request, _ = http.NewRequest("POST", url, bytes.NewBuffer(jsonBytes))
	g.Request.Header.Set("Content-Type", "application/json")

	return nil
}

func SetTestFormPostRequest(g *gin.Context, target string, values url.Values) {
	g.Request, _ = http.NewRequest("POST", target, strings.NewReader(values.Encode()))
	g.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
}

type RecordedRequest struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	Body          map[string]interface{}
}

// FakeBackend is a gin router behind an httptest server that records every
// request it receives. Register routes on Engine before making calls.
type FakeBackend struct {
	*httptest.Server
	Engine *gin.Engine

	mu       sync.Mutex
	requests []RecordedRequest
}

func NewFakeBackend(t *testing.T) *FakeBackend {
	fb := &FakeBackend{Engine: gin.New()}
	fb.Engine.Use(fb.record)
	fb.Server = httptest.NewServer(fb.Engine)
	t.Cleanup(fb.Close)

	return fb
}

func (fb *FakeBackend) record(g *gin.Context) {
	rec := RecordedRequest{
		Method:        g.Request.Method,
		Path:          g.Request.URL.Path,
		Query:         g.Request.URL.Query(),
		Authorization: g.GetHeader("Authorization"),
	}

	if g.Request.Body != nil {
		raw, _ := io.ReadAll(g.Request.Body)
		g.Request.Body = io.NopCloser(bytes.NewReader(raw))

		if len(raw) > 0 {
			body := map[string]interface{}{}
			if json.Unmarshal(raw, &body) == nil {
				rec.Body = body
			}
		}
	}

	fb.mu.Lock()
	fb.requests = append(fb.requests, rec)
	fb.mu.Unlock()

	g.Next()
}

func (fb *FakeBackend) Requests() []RecordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	out := make([]RecordedRequest, len(fb.requests))
	copy(out, fb.requests)

	return out
}

// RespondJSON registers a route that always answers with status and body.
func (fb *FakeBackend) RespondJSON(method string, path string, status int, body interface{}) {
	fb.Engine.Handle(method, path, func(g *gin.Context) {
		g.JSON(status, body)
	})
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"garden-tss-api/config"
	"garden-tss-api/server"
	"garden-tss-api/token"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/umakantv/go-utils/logger"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// testSchema mirrors the migrations, with the role column already applied.
const testSchema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	userName TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE admins (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE page_content (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	page_name TEXT NOT NULL,
	section_name TEXT NOT NULL,
	content_key TEXT NOT NULL,
	content_value TEXT,
	UNIQUE(page_name, section_name, content_key)
);

CREATE TABLE login (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT,
	priority TEXT NOT NULL DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high')),
	status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'in_progress', 'completed')),
	assigned_to TEXT,
	due_date TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

func TestMain(m *testing.M) {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})
	os.Exit(m.Run())
}

type testApp struct {
	db     *sqlx.DB
	tokens *token.Manager
	router http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dbConn, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Each sqlite :memory: connection is a separate database; pin to one.
	dbConn.SetMaxOpenConns(1)
	t.Cleanup(func() { dbConn.Close() })

	_, err = dbConn.Exec(testSchema)
	require.NoError(t, err)

	tokens := token.NewManager(testSecret, time.Hour, 8*time.Hour)
	cfg := &config.Config{CORSOrigins: []string{"*"}}

	return &testApp{
		db:     dbConn,
		tokens: tokens,
		router: server.NewRouter(dbConn, tokens, cfg),
	}
}

// request performs an in-process request against the full router. A non-empty
// bearer token is attached as the Authorization header.
func (a *testApp) request(t *testing.T, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	tok, err := a.tokens.SignAdmin(1, "Admin")
	require.NoError(t, err)
	return tok
}

func (a *testApp) userToken(t *testing.T) string {
	t.Helper()
	tok, err := a.tokens.SignUser(1, "alice", "alice@example.com")
	require.NoError(t, err)
	return tok
}

// insertAdmin stores an admin account with a bcrypt hash of password.
func (a *testApp) insertAdmin(t *testing.T, username, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	require.NoError(t, err)
	_, err = a.db.Exec(
		"INSERT INTO admins (username, email, password, created_at) VALUES (?, ?, ?, ?)",
		username, email, string(hash), time.Now(),
	)
	require.NoError(t, err)
}

func (a *testApp) insertContent(t *testing.T, page, section, key, value string) {
	t.Helper()
	_, err := a.db.Exec(
		"INSERT INTO page_content (page_name, section_name, content_key, content_value) VALUES (?, ?, ?, ?)",
		page, section, key, value,
	)
	require.NoError(t, err)
}

// decodeMap unmarshals a JSON object response body.
func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// decodeList unmarshals a JSON array response body.
func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

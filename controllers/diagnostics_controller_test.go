package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/pgabrielsw/gridline-v4/global"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/health", Health)
	r.GET("/api/db/test", TestDatabase)
	r.GET("/api/debug/config", DebugConfig)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestDiagnosticEndpoints(t *testing.T) {
	tests := []struct {
		path      string
		want      map[string]string
		substrKey string
		substr    string
	}{
		{
			path: "/api/health",
			want: map[string]string{
				"status":  "success",
				"message": "✅ Gridline Backend está funcionando!",
			},
			substrKey: "message",
			substr:    "funcionando",
		},
		{
			path: "/api/db/test",
			want: map[string]string{
				"status":  "success",
				"message": "🟢 Banco de dados H2 conectado com sucesso!",
			},
			substrKey: "message",
			substr:    "conectado",
		},
		{
			path: "/api/debug/config",
			want: map[string]string{
				"h2Console": "http://localhost:8080/h2-console",
				"port":      "8080",
				"status":    "active",
			},
		},
	}

	r := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(r, tt.path)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Fatalf("Content-Type = %q, want application/json", ct)
			}

			var got map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode body %q: %v", w.Body.String(), err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d keys %v, want %d", len(got), got, len(tt.want))
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %q, want %q", k, got[k], v)
				}
			}
			if tt.substr != "" && !strings.Contains(got[tt.substrKey], tt.substr) {
				t.Errorf("%s = %q, missing %q", tt.substrKey, got[tt.substrKey], tt.substr)
			}
		})
	}
}

func TestDiagnosticEndpointsAreIdempotent(t *testing.T) {
	r := newTestEngine()
	paths := []string{"/api/health", "/api/db/test", "/api/debug/config"}

	first := make(map[string]string, len(paths))
	for _, p := range paths {
		first[p] = get(r, p).Body.String()
	}

	// Interleave in reverse and repeated order; nothing may leak between calls.
	order := []string{paths[2], paths[0], paths[1], paths[1], paths[2], paths[0]}
	for _, p := range order {
		if body := get(r, p).Body.String(); body != first[p] {
			t.Errorf("%s body changed:\nfirst: %s\nnow:   %s", p, first[p], body)
		}
	}
}

type countingHook struct {
	calls atomic.Int32
}

func (h *countingHook) BeforeProcess(ctx context.Context, _ redis.Cmder) (context.Context, error) {
	h.calls.Add(1)
	return ctx, nil
}

func (h *countingHook) AfterProcess(context.Context, redis.Cmder) error { return nil }

func (h *countingHook) BeforeProcessPipeline(ctx context.Context, _ []redis.Cmder) (context.Context, error) {
	h.calls.Add(1)
	return ctx, nil
}

func (h *countingHook) AfterProcessPipeline(context.Context, []redis.Cmder) error { return nil }

// countStatements registers a callback ahead of every gorm operation kind.
func countStatements(t *testing.T, db *gorm.DB, calls *atomic.Int32) {
	t.Helper()
	count := func(*gorm.DB) { calls.Add(1) }
	cb := db.Callback()
	regs := []error{
		cb.Create().Before("gorm:create").Register("test:count_create", count),
		cb.Query().Before("gorm:query").Register("test:count_query", count),
		cb.Update().Before("gorm:update").Register("test:count_update", count),
		cb.Delete().Before("gorm:delete").Register("test:count_delete", count),
		cb.Row().Before("gorm:row").Register("test:count_row", count),
		cb.Raw().Before("gorm:raw").Register("test:count_raw", count),
	}
	for _, err := range regs {
		if err != nil {
			t.Fatalf("register gorm callback: %v", err)
		}
	}
}

func TestTestDatabaseDoesNotTouchDatastores(t *testing.T) {
	// Nothing listens on port 1; any real I/O would fail, and the counters
	// catch it before the dial happens.
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=1 user=gridline dbname=gridline sslmode=disable",
	}), &gorm.Config{DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	var dbCalls atomic.Int32
	countStatements(t, db, &dbCalls)

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	hook := &countingHook{}
	rdb.AddHook(hook)

	prevDB, prevRedis := global.DB, global.RedisDB
	global.DB, global.RedisDB = db, rdb
	t.Cleanup(func() {
		global.DB, global.RedisDB = prevDB, prevRedis
		_ = rdb.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	r := newTestEngine()
	for i := 0; i < 3; i++ {
		if w := get(r, "/api/db/test"); w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
	}

	if n := dbCalls.Load(); n != 0 {
		t.Errorf("database received %d statements, want 0", n)
	}
	if n := hook.calls.Load(); n != 0 {
		t.Errorf("redis received %d commands, want 0", n)
	}
}

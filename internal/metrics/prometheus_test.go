package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestStorageCollector(t *testing.T) {
	WatchDatabase(writeDatabaseFiles(t, 4096, 512))

	want := `
# HELP recipe_planner_storage_bytes Size of the SQLite database files.
# TYPE recipe_planner_storage_bytes gauge
recipe_planner_storage_bytes{file="database"} 4096
recipe_planner_storage_bytes{file="shm"} 0
recipe_planner_storage_bytes{file="wal"} 512
`
	if err := testutil.CollectAndCompare(storage, strings.NewReader(want), "recipe_planner_storage_bytes"); err != nil {
		t.Errorf("unexpected storage samples: %v", err)
	}
	if n := testutil.CollectAndCount(storage, "recipe_planner_uptime_seconds"); n != 1 {
		t.Errorf("Expected one uptime sample, got %d", n)
	}
}

func TestObserveOperation(t *testing.T) {
	before := testutil.ToFloat64(operations.WithLabelValues("toggle checked", "ok"))
	ObserveOperation("toggle checked", "ok", 3*time.Millisecond)
	after := testutil.ToFloat64(operations.WithLabelValues("toggle checked", "ok"))
	if after-before != 1 {
		t.Errorf("Expected counter to grow by 1, got %v", after-before)
	}

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "recipe_planner_engine_operations_total") {
		t.Error("Expected operations counter in exposition")
	}
}

package metrics

import (
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var startedAt = time.Now()

// StorageUsage is the on-disk size of the SQLite database and its sidecars.
type StorageUsage struct {
	Database int64
	WAL      int64
	SHM      int64
}

// Total is the sum of all database files.
func (u StorageUsage) Total() int64 {
	return u.Database + u.WAL + u.SHM
}

// ReadStorageUsage stats dbPath and its -wal and -shm files. Missing files
// count as empty.
func ReadStorageUsage(dbPath string) StorageUsage {
	return StorageUsage{
		Database: fileSize(dbPath),
		WAL:      fileSize(dbPath + "-wal"),
		SHM:      fileSize(dbPath + "-shm"),
	}
}

// SysHealth represents real-time process and storage metrics.
type SysHealth struct {
	AllocMB    uint64
	SysMB      uint64
	NumGC      uint32
	Goroutines int
	Uptime     time.Duration
	Storage    StorageUsage
}

// DataDiskSize is the storage total in human units.
func (h SysHealth) DataDiskSize() string {
	return formatBytes(h.Storage.Total())
}

// GetSysHealth collects real-time health data for the database at dbPath.
func GetSysHealth(dbPath string) SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SysHealth{
		AllocMB:    m.Alloc / 1024 / 1024,
		SysMB:      m.Sys / 1024 / 1024,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
		Uptime:     time.Since(startedAt).Truncate(time.Second),
		Storage:    ReadStorageUsage(dbPath),
	}
}

// WatchDatabase points the storage collector at dbPath. Until it is called
// no storage samples are exported.
func WatchDatabase(dbPath string) {
	storage.path.Store(&dbPath)
}

// storageCollector exports database file sizes and uptime on every scrape.
type storageCollector struct {
	path atomic.Pointer[string]

	bytes  *prometheus.Desc
	uptime *prometheus.Desc
}

var storage = &storageCollector{
	bytes: prometheus.NewDesc(
		"recipe_planner_storage_bytes",
		"Size of the SQLite database files.",
		[]string{"file"}, nil,
	),
	uptime: prometheus.NewDesc(
		"recipe_planner_uptime_seconds",
		"Seconds since the process started.",
		nil, nil,
	),
}

func (c *storageCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.bytes
	ch <- c.uptime
}

func (c *storageCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.uptime, prometheus.GaugeValue, time.Since(startedAt).Seconds())

	p := c.path.Load()
	if p == nil {
		return
	}
	u := ReadStorageUsage(*p)
	ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.GaugeValue, float64(u.Database), "database")
	ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.GaugeValue, float64(u.WAL), "wal")
	ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.GaugeValue, float64(u.SHM), "shm")
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

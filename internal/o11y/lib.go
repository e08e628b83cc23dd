package o11y

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Options configures where metrics go. All endpoints are optional; an
// empty URL disables that sink.
type Options struct {
	PushgatewayURL string
	InfluxURL      string
	InfluxToken    string
	InfluxOrg      string
	InfluxBucket   string
}

// Recorder pushes planning metrics to a Prometheus Pushgateway and writes
// per-run points to InfluxDB.
type Recorder struct {
	opts     Options
	pusher   *push.Pusher
	duration *MetricManager
	plans    *prometheus.CounterVec
}

// NewRecorder creates a Recorder for the given endpoints.
func NewRecorder(opts Options) *Recorder {
	r := &Recorder{
		opts:     opts,
		duration: NewMetricManager("plan_duration_seconds", "Planning call duration", []string{"world", "outcome"}),
		plans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plans_total",
				Help: "Planning calls by outcome",
			},
			[]string{"world", "outcome"}),
	}
	if opts.PushgatewayURL != "" {
		r.pusher = push.New(opts.PushgatewayURL, "blockplan")
		r.pusher.Collector(r.plans)
	}
	return r
}

// PlanCompleted records one planning call: its duration, outcome
// ("found" or "not_found"), and search statistics.
func (r *Recorder) PlanCompleted(worldName, outcome string, elapsed time.Duration, cost float64, expanded int) {
	labels := map[string]string{"world": worldName, "outcome": outcome}

	if r.pusher != nil {
		r.duration.GetGauge(r.pusher, labels).Set(elapsed.Seconds())
		r.plans.With(labels).Inc()
		// push in the background so planning latency is unaffected
		go func() {
			if err := r.pusher.Push(); err != nil {
				log.Warn("Failed to push metrics", "error", err)
			}
		}()
	}

	if r.opts.InfluxURL != "" {
		fields := map[string]interface{}{
			"duration_sec": elapsed.Seconds(),
			"cost":         cost,
			"expanded":     expanded,
		}
		if err := r.record("plan", labels, fields); err != nil {
			log.Warn("Failed to write influx point", "error", err)
		}
	}
}

func (r *Recorder) record(name string, tags map[string]string, fields map[string]interface{}) error {
	client := influxdb2.NewClient(r.opts.InfluxURL, r.opts.InfluxToken)
	defer client.Close()
	writeAPI := client.WriteAPIBlocking(r.opts.InfluxOrg, r.opts.InfluxBucket)
	point := write.NewPoint(name, tags, fields, time.Now())
	return writeAPI.WritePoint(context.Background(), point)
}

// MetricManager lazily creates gauges for label combinations and registers
// them with the pusher exactly once.
type MetricManager struct {
	labelNames []string
	gauges     *prometheus.GaugeVec
	metrics    map[string]prometheus.Gauge
	mu         sync.Mutex
}

func NewMetricManager(name, help string, labelNames []string) *MetricManager {
	g := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labelNames,
	)
	return &MetricManager{
		gauges:     g,
		labelNames: labelNames,
		metrics:    make(map[string]prometheus.Gauge),
	}
}

func isUnorderedEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (m *MetricManager) GetGauge(pusher *push.Pusher, labelValues map[string]string) prometheus.Gauge {
	m.mu.Lock()
	defer m.mu.Unlock()

	// read keys of labelValues
	var keys []string
	for k := range labelValues {
		keys = append(keys, k)
	}
	// compare keys to labelNames
	if !isUnorderedEqual(keys, m.labelNames) {
		panic(fmt.Sprintf("labelNames %v do not match labelValues %v", m.labelNames, keys))
	}

	// Create a key by concatenating all label values
	key := m.createKey(labelValues)

	// Check if the gauge already exists
	if gauge, exists := m.metrics[key]; exists {
		return gauge
	}

	// Create a new gauge with the specified labels
	gauge := m.gauges.With(labelValues)
	m.metrics[key] = gauge
	// register the gauge with the pusher
	if pusher != nil {
		pusher.Collector(gauge)
	}
	return gauge
}

func (m *MetricManager) createKey(labelValues map[string]string) string {
	var labels []string
	for _, v := range labelValues {
		labels = append(labels, v)
	}
	sort.Strings(labels)
	return strings.Join(labels, "|")
}

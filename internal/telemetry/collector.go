package telemetry

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ludo-technologies/godscn/internal/refactor"
)

// Event names
const (
	EventRegistered              = "registered"
	EventRefactoringFound        = "refactoring.found"
	EventExtractClassApplied     = "extract.class.applied"
	EventMoveMethodApplied       = "move.method.applied"
	EventExtractMethodApplied    = "extract.method.applied"
	EventReplaceTypeCheckApplied = "replace.conditional.type.applied"
)

// Options configures a Collector
type Options struct {
	Enabled      bool
	InitialDelay time.Duration
	Interval     time.Duration
	Namespace    string
}

// DefaultOptions returns the collector defaults: disabled, first heartbeat
// after 11 minutes, then one per day
func DefaultOptions() *Options {
	return &Options{
		Enabled:      false,
		InitialDelay: 11 * time.Minute,
		Interval:     24 * time.Hour,
		Namespace:    "godscn",
	}
}

// Collector records usage events. It is constructed explicitly and owns a
// background heartbeat between Start and Stop.
type Collector struct {
	options *Options
	logger  *zap.Logger

	registry *prometheus.Registry
	events   *prometheus.CounterVec
	found    *prometheus.CounterVec
	payload  *prometheus.CounterVec

	mu          sync.Mutex
	running     bool
	stopChan    chan struct{}
	stoppedChan chan struct{}
}

// NewCollector creates a collector with its own metrics registry
func NewCollector(options *Options, logger *zap.Logger) *Collector {
	if options == nil {
		options = DefaultOptions()
	}
	if options.Namespace == "" {
		options.Namespace = "godscn"
	}
	if options.InitialDelay < 0 {
		options.InitialDelay = 0
	}
	if options.Interval <= 0 {
		options.Interval = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: options.Namespace,
			Name:      "usage_events_total",
			Help:      "Total number of usage events by name",
		},
		[]string{"event"},
	)
	found := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: options.Namespace,
			Name:      "refactorings_found_total",
			Help:      "Total number of refactoring opportunities found by refactoring name",
		},
		[]string{"refactoring"},
	)
	payload := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: options.Namespace,
			Name:      "applied_refactoring_payload_total",
			Help:      "Sum of the per-kind measurements reported with applied refactorings",
		},
		[]string{"event", "measure"},
	)
	registry.MustRegister(events, found, payload)

	return &Collector{
		options:  options,
		logger:   logger,
		registry: registry,
		events:   events,
		found:    found,
		payload:  payload,
	}
}

// Registry exposes the collector's private metrics registry
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Enabled reports whether events are recorded
func (c *Collector) Enabled() bool { return c.options.Enabled }

// Start begins the heartbeat. It does nothing when disabled or already running.
func (c *Collector) Start(ctx context.Context) {
	if !c.options.Enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	c.stopChan = make(chan struct{})
	c.stoppedChan = make(chan struct{})

	c.logger.Debug("Starting usage collector",
		zap.Duration("initialDelay", c.options.InitialDelay),
		zap.Duration("interval", c.options.Interval))
	go c.heartbeatLoop(ctx, c.stopChan, c.stoppedChan)
}

// Stop ends the heartbeat and waits for it to exit. Safe to call more than once.
func (c *Collector) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	stop, stopped := c.stopChan, c.stoppedChan
	c.mu.Unlock()

	close(stop)
	<-stopped
	c.logger.Debug("Usage collector stopped", c.totalsFields()...)
}

func (c *Collector) heartbeatLoop(ctx context.Context, stop <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)

	timer := time.NewTimer(c.options.InitialDelay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			if c.stopChan == stop {
				c.running = false
			}
			c.mu.Unlock()
			return
		case <-stop:
			return
		case <-timer.C:
			c.record(EventRegistered)
			timer.Reset(c.options.Interval)
		}
	}
}

// RefactoringFound records that total opportunities of a refactoring were
// found. Non-positive totals are ignored.
func (c *Collector) RefactoringFound(name string, total int) {
	if !c.options.Enabled || total <= 0 {
		return
	}
	c.found.WithLabelValues(name).Add(float64(total))
	c.record(EventRefactoringFound, zap.String("refactoring", name), zap.Int("total", total))
}

// RefactoringApplied records an applied refactoring with its per-kind measurements
func (c *Collector) RefactoringApplied(r refactor.Refactoring) {
	if !c.options.Enabled || r == nil {
		return
	}

	var (
		event    string
		measures []measure
	)
	switch v := r.(type) {
	case refactor.ExtractClass:
		event = EventExtractClassApplied
		if v.Candidate != nil {
			measures = []measure{
				{"extracted_fields", float64(v.Candidate.ExtractedFieldsCount)},
				{"extracted_methods", float64(v.Candidate.ExtractedMethodsCount)},
			}
		}
	case refactor.MoveMethod:
		event = EventMoveMethodApplied
		measures = []measure{
			{"source_accessed_members", float64(v.SourceAccessedMembers)},
			{"target_accessed_members", float64(v.TargetAccessedMembers)},
		}
	case refactor.ExtractMethod:
		event = EventExtractMethodApplied
		measures = []measure{{"extracted_statements", float64(v.ExtractedStatements)}}
	case refactor.ReplaceTypeCheck:
		event = EventReplaceTypeCheckApplied
		measures = []measure{{"average_statements_per_case", v.AverageStatementsPerCase}}
	default:
		return
	}

	fields := make([]zap.Field, 0, len(measures)+1)
	fields = append(fields, zap.String("class", r.SourceClass()))
	for _, m := range measures {
		if m.value < 0 {
			continue
		}
		c.payload.WithLabelValues(event, m.name).Add(m.value)
		fields = append(fields, zap.Float64(m.name, m.value))
	}
	c.record(event, fields...)
}

type measure struct {
	name  string
	value float64
}

// Sample is one counter value of the usage registry
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Key renders the sample as name{label="value",...} with sorted labels
func (s Sample) Key() string {
	if len(s.Labels) == 0 {
		return s.Name
	}
	names := make([]string, 0, len(s.Labels))
	for name := range s.Labels {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = name + "=\"" + s.Labels[name] + "\""
	}
	return s.Name + "{" + strings.Join(pairs, ",") + "}"
}

// Snapshot gathers the counters recorded so far, in registry order
func (c *Collector) Snapshot() ([]Sample, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, err
	}
	var samples []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			samples = append(samples, Sample{
				Name:   mf.GetName(),
				Labels: labels,
				Value:  m.GetCounter().GetValue(),
			})
		}
	}
	return samples, nil
}

func (c *Collector) totalsFields() []zap.Field {
	samples, err := c.Snapshot()
	if err != nil {
		return []zap.Field{zap.Error(err)}
	}
	fields := make([]zap.Field, 0, len(samples))
	for _, s := range samples {
		fields = append(fields, zap.Float64(s.Key(), s.Value))
	}
	return fields
}

func (c *Collector) record(event string, fields ...zap.Field) {
	c.events.WithLabelValues(event).Inc()
	c.logger.Info("usage event", append([]zap.Field{zap.String("event", event)}, fields...)...)
}

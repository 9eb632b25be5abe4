package spies

import (
	"sync"
	"time"
)

// TestMetricsCollector is a MetricsCollector implementation that captures metrics calls for testing.
type TestMetricsCollector struct {
	durationRecords []DurationRecord
	counterRecords  []CounterRecord
	valueRecords    []ValueRecord
	mu              sync.Mutex
	recordCalls     bool
}

// DurationRecord represents a recorded duration metric call.
type DurationRecord struct {
	Metric   string
	Duration time.Duration
	Labels   map[string]string
}

// CounterRecord represents a recorded counter-increment call.
type CounterRecord struct {
	Metric string
	Labels map[string]string
}

// ValueRecord represents a recorded value metric call.
type ValueRecord struct {
	Metric string
	Value  float64
	Labels map[string]string
}

// NewTestMetricsCollector creates a new TestMetricsCollector.
// Set recordCalls to true to capture all metrics calls for inspection in tests.
func NewTestMetricsCollector(recordCalls bool) *TestMetricsCollector {
	return &TestMetricsCollector{
		durationRecords: make([]DurationRecord, 0),
		counterRecords:  make([]CounterRecord, 0),
		valueRecords:    make([]ValueRecord, 0),
		recordCalls:     recordCalls,
	}
}

// RecordDuration implements the MetricsCollector interface.
func (c *TestMetricsCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	if !c.recordCalls {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.durationRecords = append(c.durationRecords, DurationRecord{
		Metric:   metric,
		Duration: duration,
		Labels:   copyLabels(labels),
	})
}

// IncrementCounter implements the MetricsCollector interface.
func (c *TestMetricsCollector) IncrementCounter(metric string, labels map[string]string) {
	if !c.recordCalls {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.counterRecords = append(c.counterRecords, CounterRecord{
		Metric: metric,
		Labels: copyLabels(labels),
	})
}

// RecordValue implements the MetricsCollector interface.
func (c *TestMetricsCollector) RecordValue(metric string, value float64, labels map[string]string) {
	if !c.recordCalls {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.valueRecords = append(c.valueRecords, ValueRecord{
		Metric: metric,
		Value:  value,
		Labels: copyLabels(labels),
	})
}

// copyLabels copies a labels map to guard against external modifications.
func copyLabels(labels map[string]string) map[string]string {
	labelsCopy := make(map[string]string)
	for k, v := range labels {
		labelsCopy[k] = v
	}

	return labelsCopy
}

// GetDurationRecordCount returns the number of captured duration records.
func (c *TestMetricsCollector) GetDurationRecordCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.durationRecords)
}

// GetCounterRecordCount returns the number of captured counter-records.
func (c *TestMetricsCollector) GetCounterRecordCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.counterRecords)
}

// GetValueRecordCount returns the number of captured value records.
func (c *TestMetricsCollector) GetValueRecordCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.valueRecords)
}

// Reset clears all captured metric records.
func (c *TestMetricsCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.durationRecords = c.durationRecords[:0]
	c.counterRecords = c.counterRecords[:0]
	c.valueRecords = c.valueRecords[:0]
}

// MetricRecordMatcher provides a fluent interface for checking metric records.
type MetricRecordMatcher struct {
	collector *TestMetricsCollector
	found     bool
	labels    map[string]string
}

// HasDurationRecordForMetric starts a fluent chain to check a duration record.
func (c *TestMetricsCollector) HasDurationRecordForMetric(metric string) *MetricRecordMatcher {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, record := range c.durationRecords {
		if record.Metric == metric {
			return &MetricRecordMatcher{
				collector: c,
				found:     true,
				labels:    record.Labels,
			}
		}
	}

	return &MetricRecordMatcher{collector: c, found: false}
}

// HasCounterRecordForMetric starts a fluent chain to check a counter-record.
func (c *TestMetricsCollector) HasCounterRecordForMetric(metric string) *MetricRecordMatcher {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, record := range c.counterRecords {
		if record.Metric == metric {
			return &MetricRecordMatcher{
				collector: c,
				found:     true,
				labels:    record.Labels,
			}
		}
	}

	return &MetricRecordMatcher{collector: c, found: false}
}

// HasValueRecordForMetric starts a fluent chain to check a value record.
func (c *TestMetricsCollector) HasValueRecordForMetric(metric string) *MetricRecordMatcher {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, record := range c.valueRecords {
		if record.Metric == metric {
			return &MetricRecordMatcher{
				collector: c,
				found:     true,
				labels:    record.Labels,
			}
		}
	}

	return &MetricRecordMatcher{collector: c, found: false}
}

// WithOperation checks if the record has the specified operation label.
func (m *MetricRecordMatcher) WithOperation(operation string) *MetricRecordMatcher {
	return m.WithLabel("operation", operation)
}

// WithStatus checks if the record has the specified status label.
func (m *MetricRecordMatcher) WithStatus(status string) *MetricRecordMatcher {
	return m.WithLabel("status", status)
}

// WithErrorType checks if the record has the specified error_type label.
func (m *MetricRecordMatcher) WithErrorType(errorType string) *MetricRecordMatcher {
	return m.WithLabel("error_type", errorType)
}

// WithConflictType checks if the record has the specified conflict_type label.
func (m *MetricRecordMatcher) WithConflictType(conflictType string) *MetricRecordMatcher {
	return m.WithLabel("conflict_type", conflictType)
}

// WithLabel checks if the record has the specified label with the given value.
func (m *MetricRecordMatcher) WithLabel(key, value string) *MetricRecordMatcher {
	if !m.found {
		return m
	}

	if labelValue, exists := m.labels[key]; !exists || labelValue != value {
		m.found = false
	}

	return m
}

// Assert returns true if all conditions in the fluent chain were met.
func (m *MetricRecordMatcher) Assert() bool {
	return m.found
}

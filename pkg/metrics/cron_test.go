package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCronJobMetricsCountRunsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)

	m.ObserveDuration("comparison-expiry", 180*time.Millisecond)
	m.IncSuccess("comparison-expiry")
	m.IncSuccess("comparison-expiry")
	m.IncFailure("comparison-expiry")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	if got := counterValue(families, "cron_job_runs_total", map[string]string{"job": "comparison-expiry", "status": "success"}); got != 2 {
		t.Fatalf("expected 2 successful runs, got %f", got)
	}
	if got := counterValue(families, "cron_job_runs_total", map[string]string{"job": "comparison-expiry", "status": "failure"}); got != 1 {
		t.Fatalf("expected 1 failed run, got %f", got)
	}
	if got := histogramSum(families, "cron_job_duration_seconds", map[string]string{"job": "comparison-expiry"}); got <= 0 {
		t.Fatalf("expected a positive duration sum, got %f", got)
	}
}

func TestCronJobMetricsNilSafe(t *testing.T) {
	var m *CronJobMetrics
	m.ObserveDuration("comparison-expiry", time.Second)
	m.IncSuccess("comparison-expiry")
	m.IncFailure("comparison-expiry")

	inert := NewCronJobMetrics(nil)
	inert.IncSuccess("comparison-expiry")
}

func counterValue(families []*dto.MetricFamily, name string, labels map[string]string) float64 {
	if metric := findMetric(families, name, labels); metric != nil {
		return metric.GetCounter().GetValue()
	}
	return -1
}

func histogramSum(families []*dto.MetricFamily, name string, labels map[string]string) float64 {
	if metric := findMetric(families, name, labels); metric != nil {
		return metric.GetHistogram().GetSampleSum()
	}
	return -1
}

func findMetric(families []*dto.MetricFamily, name string, labels map[string]string) *dto.Metric {
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metrics:
		for _, metric := range family.GetMetric() {
			for wantName, wantValue := range labels {
				if !hasLabel(metric.GetLabel(), wantName, wantValue) {
					continue metrics
				}
			}
			return metric
		}
	}
	return nil
}

func hasLabel(pairs []*dto.LabelPair, name, value string) bool {
	for _, pair := range pairs {
		if pair.GetName() == name && pair.GetValue() == value {
			return true
		}
	}
	return false
}

package collector

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the entry point for the metrics collection. It holds the prometheus registry and all
// registered collections and exposes event based and scrape time based update paths for their metrics.
type Collector struct {
	Registry    *prometheus.Registry
	collections map[string]*Collection
}

// New creates an instance of Collector.
func New() *Collector {
	return &Collector{
		Registry:    prometheus.NewRegistry(),
		collections: make(map[string]*Collection),
	}
}

// RegisterCollection registers the collection's metrics to the prometheus registry and runs their init
// callbacks.
func (c *Collector) RegisterCollection(collection *Collection) {
	c.collections[collection.CollectionName] = collection
	for _, m := range collection.metrics {
		c.Registry.MustRegister(m.promMetric)
		if m.initValueFunc != nil {
			metricValue, labelValues := m.initValueFunc()
			m.update(metricValue, labelValues...)
		}
		if m.initFunc != nil {
			m.initFunc()
		}
	}
}

// Collect collects all metrics from the registered collections.
func (c *Collector) Collect() {
	for _, collection := range c.collections {
		for _, metric := range collection.metrics {
			metric.collect()
		}
	}
}

// Update updates the value of the existing metric defined by the namespace and metricName.
// Metrics with labels should be updated with labelValues passed in the same order as the labels.
func (c *Collector) Update(namespace string, metricName string, metricValue float64, labelValues ...string) {
	m := c.getMetric(namespace, metricName)
	if m == nil {
		return
	}

	m.update(metricValue, labelValues...)
}

// Increment increments the value of the existing metric defined by the namespace and metricName.
func (c *Collector) Increment(namespace string, metricName string, labelValues ...string) {
	m := c.getMetric(namespace, metricName)
	if m == nil {
		return
	}

	m.increment(labelValues...)
}

// ResetMetric resets the metric defined by the namespace and metricName.
func (c *Collector) ResetMetric(namespace string, metricName string) {
	m := c.getMetric(namespace, metricName)
	if m == nil {
		return
	}

	m.Reset()
}

func (c *Collector) getMetric(namespace string, metricName string) *Metric {
	collection := c.getCollection(namespace)
	if collection == nil {
		return nil
	}

	return collection.GetMetric(metricName)
}

func (c *Collector) getCollection(namespace string) *Collection {
	if collection, exists := c.collections[namespace]; exists {
		return collection
	}

	return nil
}

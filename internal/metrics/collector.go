package someipmetrics

import "github.com/prometheus/client_golang/prometheus"

// -------------------------------------------------------------------------
// Prometheus Metric Constants
// -------------------------------------------------------------------------

const (
	namespace = "someipd"
	subsystem = "core"
)

// Label names for SOME/IP metrics.
const (
	labelRemoteAddr = "remote_addr"
	labelReason     = "reason"
	labelEntryType  = "entry_type"
	labelServiceID  = "service_id"
	labelInstanceID = "instance_id"
)

// -------------------------------------------------------------------------
// Collector — Prometheus SOME/IP Metrics
// -------------------------------------------------------------------------

// Collector holds all SOME/IP Prometheus metrics.
//
//   - ServiceInstances tracks currently offered service instances.
//   - Frames{Received,Sent,Dropped} track unicast SOME/IP frame volumes.
//   - SDEntries{Received,Sent} track Service Discovery entry traffic by type.
//   - DecodeErrors flags malformed input for alerting.
type Collector struct {
	// ServiceInstances tracks the number of currently offered service
	// instances. Incremented on offer, decremented on stop-offer (TTL
	// expiry is the caller's concern, not this collector's).
	ServiceInstances *prometheus.GaugeVec

	// FramesReceived counts unicast SOME/IP frames received per remote peer.
	FramesReceived *prometheus.CounterVec

	// FramesSent counts unicast SOME/IP frames transmitted per remote peer.
	FramesSent *prometheus.CounterVec

	// FramesDropped counts frames dropped during decode, labeled by the
	// wire.Kind string that caused the drop.
	FramesDropped *prometheus.CounterVec

	// SDEntriesReceived counts Service Discovery entries received, labeled
	// by entry type (find_service, offer_service, subscribe_eventgroup,
	// subscribe_eventgroup_ack).
	SDEntriesReceived *prometheus.CounterVec

	// SDEntriesSent counts Service Discovery entries transmitted, labeled
	// by entry type.
	SDEntriesSent *prometheus.CounterVec

	// DecodeErrors counts payload decode failures, labeled by the
	// wire.Kind string that caused the failure.
	DecodeErrors *prometheus.CounterVec
}

// NewCollector creates a Collector with all SOME/IP metrics registered
// against the provided prometheus.Registerer. If reg is nil,
// prometheus.DefaultRegisterer is used.
//
// All metrics are created with the "someipd_core_" prefix
// (namespace_subsystem) to avoid collisions with other exporters.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.ServiceInstances,
		c.FramesReceived,
		c.FramesSent,
		c.FramesDropped,
		c.SDEntriesReceived,
		c.SDEntriesSent,
		c.DecodeErrors,
	)

	return c
}

// newMetrics creates all Prometheus metric vectors without registering them.
func newMetrics() *Collector {
	serviceLabels := []string{labelServiceID, labelInstanceID}
	peerLabels := []string{labelRemoteAddr}
	reasonLabels := []string{labelReason}
	entryLabels := []string{labelEntryType}

	return &Collector{
		ServiceInstances: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "service_instances",
			Help:      "Number of currently offered service instances.",
		}, serviceLabels),

		FramesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frames_received_total",
			Help:      "Total unicast SOME/IP frames received.",
		}, peerLabels),

		FramesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frames_sent_total",
			Help:      "Total unicast SOME/IP frames transmitted.",
		}, peerLabels),

		FramesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frames_dropped_total",
			Help:      "Total SOME/IP frames dropped during parsing, labeled by failure kind.",
		}, reasonLabels),

		SDEntriesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sd_entries_received_total",
			Help:      "Total Service Discovery entries received, by entry type.",
		}, entryLabels),

		SDEntriesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sd_entries_sent_total",
			Help:      "Total Service Discovery entries transmitted, by entry type.",
		}, entryLabels),

		DecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "decode_errors_total",
			Help:      "Total payload decode failures, labeled by failure kind.",
		}, reasonLabels),
	}
}

// -------------------------------------------------------------------------
// Service Lifecycle
// -------------------------------------------------------------------------

// RegisterServiceInstance increments the offered-instances gauge for the
// given service/instance pair. Called when an offer_service entry starts
// being advertised.
func (c *Collector) RegisterServiceInstance(serviceID, instanceID string) {
	c.ServiceInstances.WithLabelValues(serviceID, instanceID).Inc()
}

// UnregisterServiceInstance decrements the offered-instances gauge.
// Called when a service instance stops being advertised.
func (c *Collector) UnregisterServiceInstance(serviceID, instanceID string) {
	c.ServiceInstances.WithLabelValues(serviceID, instanceID).Dec()
}

// -------------------------------------------------------------------------
// Frame Counters
// -------------------------------------------------------------------------

// IncFramesReceived increments the received-frames counter for remoteAddr.
func (c *Collector) IncFramesReceived(remoteAddr string) {
	c.FramesReceived.WithLabelValues(remoteAddr).Inc()
}

// IncFramesSent increments the transmitted-frames counter for remoteAddr.
func (c *Collector) IncFramesSent(remoteAddr string) {
	c.FramesSent.WithLabelValues(remoteAddr).Inc()
}

// IncFramesDropped increments the dropped-frames counter for reason
// (typically a wire.Kind string).
func (c *Collector) IncFramesDropped(reason string) {
	c.FramesDropped.WithLabelValues(reason).Inc()
}

// -------------------------------------------------------------------------
// Service Discovery Counters
// -------------------------------------------------------------------------

// IncSDEntriesReceived increments the received-entries counter for entryType.
func (c *Collector) IncSDEntriesReceived(entryType string) {
	c.SDEntriesReceived.WithLabelValues(entryType).Inc()
}

// IncSDEntriesSent increments the transmitted-entries counter for entryType.
func (c *Collector) IncSDEntriesSent(entryType string) {
	c.SDEntriesSent.WithLabelValues(entryType).Inc()
}

// -------------------------------------------------------------------------
// Decode Errors
// -------------------------------------------------------------------------

// IncDecodeErrors increments the decode-errors counter for reason
// (typically a wire.Kind string).
func (c *Collector) IncDecodeErrors(reason string) {
	c.DecodeErrors.WithLabelValues(reason).Inc()
}

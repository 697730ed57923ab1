package main

import (
	"fmt"
	"log/slog"
	"net/netip"
	"time"

	"github.com/dantte-lp/go-someip/internal/debugapi"
	someipmetrics "github.com/dantte-lp/go-someip/internal/metrics"
	"github.com/dantte-lp/go-someip/internal/sd"
	"github.com/dantte-lp/go-someip/internal/someip"
)

// metricsObserver implements frameio.FrameObserver: it turns classified
// frames into Prometheus counters and debug API frame summaries,
// without holding any protocol session state of its own.
type metricsObserver struct {
	collector *someipmetrics.Collector
	debug     *debugapi.Server
	logger    *slog.Logger
}

func newMetricsObserver(collector *someipmetrics.Collector, debug *debugapi.Server, logger *slog.Logger) *metricsObserver {
	return &metricsObserver{collector: collector, debug: debug, logger: logger}
}

func (o *metricsObserver) ObserveSD(payload sd.WirePayload, header someip.Header, from netip.AddrPort) {
	o.collector.IncFramesReceived(from.Addr().String())

	for _, e := range payload.Entries {
		o.collector.IncSDEntriesReceived(entryTypeName(e.Type))
		o.logger.Debug("sd entry received",
			slog.String("from", from.String()),
			slog.String("entry_type", entryTypeName(e.Type)),
			slog.String("service_id", fmt.Sprintf("%#x", e.ServiceID)),
			slog.String("instance_id", fmt.Sprintf("%#x", e.InstanceID)))
	}

	o.debug.RecordFrame(debugapi.FrameSummary{
		ReceivedAt:  time.Now(),
		From:        from.String(),
		Kind:        "sd",
		ServiceID:   header.ServiceID,
		MethodID:    header.MethodID,
		ClientID:    header.ClientID,
		SessionID:   header.SessionID,
		MessageType: fmt.Sprintf("%#x", header.MessageType),
		SDEntries:   len(payload.Entries),
	})
}

func (o *metricsObserver) ObserveFrame(frame someip.Frame, from netip.AddrPort) {
	o.collector.IncFramesReceived(from.Addr().String())

	o.debug.RecordFrame(debugapi.FrameSummary{
		ReceivedAt:  time.Now(),
		From:        from.String(),
		Kind:        "generic",
		ServiceID:   frame.Header.ServiceID,
		MethodID:    frame.Header.MethodID,
		ClientID:    frame.Header.ClientID,
		SessionID:   frame.Header.SessionID,
		MessageType: fmt.Sprintf("%#x", frame.Header.MessageType),
	})
}

func (o *metricsObserver) ObserveError(kind string, from netip.AddrPort, err error) {
	o.collector.IncFramesDropped(kind)
	o.collector.IncDecodeErrors(kind)
	o.logger.Warn("dropped frame",
		slog.String("from", from.String()),
		slog.String("kind", kind),
		slog.String("error", err.Error()))
}

// entryTypeName maps an SD entry type to the label string used by the
// sd_entries_* counters.
func entryTypeName(t sd.EntryType) string {
	switch t {
	case sd.FindService:
		return "find_service"
	case sd.OfferService:
		return "offer_service"
	case sd.SubscribeEventgroup:
		return "subscribe_eventgroup"
	case sd.SubscribeEventgroupAck:
		return "subscribe_eventgroup_ack"
	default:
		return fmt.Sprintf("unknown_%#x", uint8(t))
	}
}

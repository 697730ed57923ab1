package main

import (
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/dantte-lp/go-someip/internal/debugapi"
	someipmetrics "github.com/dantte-lp/go-someip/internal/metrics"
	"github.com/dantte-lp/go-someip/internal/sd"
	"github.com/dantte-lp/go-someip/internal/someip"
)

func newTestObserver() *metricsObserver {
	reg := prometheus.NewRegistry()
	collector := someipmetrics.NewCollector(reg)
	debugSrv := debugapi.NewServer(":0", slog.New(slog.DiscardHandler))
	return newMetricsObserver(collector, debugSrv, slog.New(slog.DiscardHandler))
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, label string) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := vec.WithLabelValues(label).Write(m); err != nil {
		t.Fatalf("write metric %q: %v", label, err)
	}
	return m.GetCounter().GetValue()
}

func TestObserveFrameRecordsSummary(t *testing.T) {
	t.Parallel()

	o := newTestObserver()
	from := netip.MustParseAddrPort("10.0.0.1:30509")

	o.ObserveFrame(someip.Frame{
		Header: someip.Header{ServiceID: 0x1234, MethodID: 0x5678, MessageType: someip.Request},
	}, from)

	ts := httptest.NewServer(o.debug.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/frames")
	if err != nil {
		t.Fatalf("GET /frames: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Frames []debugapi.FrameSummary `json:"frames"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(body.Frames))
	}
	if body.Frames[0].Kind != "generic" {
		t.Errorf("Kind = %q, want generic", body.Frames[0].Kind)
	}
}

func TestObserveSDRecordsEntriesAndMetrics(t *testing.T) {
	t.Parallel()

	o := newTestObserver()
	from := netip.MustParseAddrPort("10.0.0.2:30490")

	o.ObserveSD(sd.WirePayload{
		Entries: []sd.WireEntry{
			{Type: sd.OfferService, ServiceID: 1, InstanceID: 1},
		},
	}, someip.Header{ServiceID: sd.ServiceID, MethodID: sd.MethodID, MessageType: someip.Notification}, from)

	if got := counterValue(t, o.collector.SDEntriesReceived, "offer_service"); got != 1 {
		t.Errorf("SDEntriesReceived{offer_service} = %v, want 1", got)
	}
	if got := counterValue(t, o.collector.FramesReceived, "10.0.0.2"); got != 1 {
		t.Errorf("FramesReceived{10.0.0.2} = %v, want 1", got)
	}
}

func TestObserveErrorIncrementsCounters(t *testing.T) {
	t.Parallel()

	o := newTestObserver()
	from := netip.MustParseAddrPort("10.0.0.3:30509")

	o.ObserveError("invalid_length", from, errTest{})

	if got := counterValue(t, o.collector.FramesDropped, "invalid_length"); got != 1 {
		t.Errorf("FramesDropped{invalid_length} = %v, want 1", got)
	}
	if got := counterValue(t, o.collector.DecodeErrors, "invalid_length"); got != 1 {
		t.Errorf("DecodeErrors{invalid_length} = %v, want 1", got)
	}
}

type errTest struct{}

func (errTest) Error() string { return "boom" }

func TestEntryTypeNameCoversKnownTypes(t *testing.T) {
	t.Parallel()

	cases := map[sd.EntryType]string{
		sd.FindService:            "find_service",
		sd.OfferService:           "offer_service",
		sd.SubscribeEventgroup:    "subscribe_eventgroup",
		sd.SubscribeEventgroupAck: "subscribe_eventgroup_ack",
	}
	for entry, want := range cases {
		if got := entryTypeName(entry); got != want {
			t.Errorf("entryTypeName(%v) = %q, want %q", entry, got, want)
		}
	}

	if got := entryTypeName(sd.EntryType(0xEE)); got != "unknown_0xee" {
		t.Errorf("entryTypeName(0xee) = %q, want unknown_0xee", got)
	}
}

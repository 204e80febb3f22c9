package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"atvcert/internal/certstore"
)

var (
	expiryTimestampDesc   = prometheus.NewDesc("atvcert_certificate_expiry_timestamp_seconds", "Certificate expiration timestamp in seconds since epoch", []string{"serial_number", "common_name"}, nil)
	expiresInDesc         = prometheus.NewDesc("atvcert_certificate_expires_in_seconds", "Seconds until certificate expiration (zero when expired)", []string{"serial_number", "common_name"}, nil)
	notBeforeDesc         = prometheus.NewDesc("atvcert_certificate_not_before_timestamp_seconds", "Certificate validity start timestamp in seconds since epoch", []string{"serial_number", "common_name"}, nil)
	renewalDueDesc        = prometheus.NewDesc("atvcert_certificate_renewal_due", "Certificate is missing or within the renewal window (1=true,0=false)", nil, nil)
	lastScrapeSuccessDesc = prometheus.NewDesc("atvcert_exporter_last_scrape_success", "Whether the last scrape read the stored pair (1) or failed (0)", nil, nil)
)

type certificateCollector struct {
	store         certstore.Store
	renewalWindow time.Duration
	now           func() time.Time
}

// NewCertificateCollector returns a Prometheus collector exposing the
// expiry status of the pair held by the store.
func NewCertificateCollector(store certstore.Store, renewalWindow time.Duration) prometheus.Collector {
	return &certificateCollector{
		store:         store,
		renewalWindow: renewalWindow,
		now:           time.Now,
	}
}

func (c *certificateCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- expiryTimestampDesc
	ch <- expiresInDesc
	ch <- notBeforeDesc
	ch <- renewalDueDesc
	ch <- lastScrapeSuccessDesc
}

func (c *certificateCollector) Collect(ch chan<- prometheus.Metric) {
	info, err := c.store.Describe()
	if err != nil {
		ch <- prometheus.MustNewConstMetric(lastScrapeSuccessDesc, prometheus.GaugeValue, 0)
		ch <- prometheus.MustNewConstMetric(renewalDueDesc, prometheus.GaugeValue, 1)
		return
	}
	ch <- prometheus.MustNewConstMetric(lastScrapeSuccessDesc, prometheus.GaugeValue, 1)

	now := c.now()
	secondsToExpiry := info.NotAfter.Sub(now).Seconds()
	if secondsToExpiry < 0 {
		secondsToExpiry = 0
	}

	renewalDue := 0.0
	if info.NotAfter.Sub(now) < c.renewalWindow {
		renewalDue = 1.0
	}

	ch <- prometheus.MustNewConstMetric(expiryTimestampDesc, prometheus.GaugeValue, float64(info.NotAfter.Unix()), info.SerialNumber, info.CommonName)
	ch <- prometheus.MustNewConstMetric(expiresInDesc, prometheus.GaugeValue, secondsToExpiry, info.SerialNumber, info.CommonName)
	ch <- prometheus.MustNewConstMetric(notBeforeDesc, prometheus.GaugeValue, float64(info.NotBefore.Unix()), info.SerialNumber, info.CommonName)
	ch <- prometheus.MustNewConstMetric(renewalDueDesc, prometheus.GaugeValue, renewalDue)
}

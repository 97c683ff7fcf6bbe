package handlers

import (
	"context"
	"sync"
	"time"

	"solar_cleaner/internal/logger"
	"solar_cleaner/internal/service"

	"github.com/prometheus/client_golang/prometheus"
)

const scrapeTimeout = 5 * time.Second

var (
	upDesc = prometheus.NewDesc(
		"solar_cleaner_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"solar_cleaner_scrape_duration_seconds", "Time taken to read the service state.", nil, nil,
	)
	cleanerOnDesc = prometheus.NewDesc(
		"solar_cleaner_on", "Cleaner power state (1=on).", nil, nil,
	)
	cleanerActiveDesc = prometheus.NewDesc(
		"solar_cleaner_active", "Whether scheduled cleanings may run (1=active).", nil, nil,
	)
	lastCleanedDesc = prometheus.NewDesc(
		"solar_cleaner_last_cleaned_timestamp_seconds", "Unix time of the last completed cleaning.", nil, nil,
	)
	imagesCapturedDesc = prometheus.NewDesc(
		"solar_cleaner_images_captured", "Images stored across all ML batches.", nil, nil,
	)
	scheduleEntriesDesc = prometheus.NewDesc(
		"solar_cleaner_schedule_entries", "Entries in the cleaning schedule grouped by day.", []string{"day"}, nil,
	)
)

// cleanerCollector reads the service layer on every scrape.
type cleanerCollector struct {
	services *service.Service
	log      *logger.Logger
	mu       sync.Mutex
}

func newCleanerCollector(services *service.Service, log *logger.Logger) *cleanerCollector {
	return &cleanerCollector{services: services, log: log}
}

func (c *cleanerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- cleanerOnDesc
	ch <- cleanerActiveDesc
	ch <- lastCleanedDesc
	ch <- imagesCapturedDesc
	ch <- scheduleEntriesDesc
}

func (c *cleanerCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	start := time.Now()
	success := 1.0

	ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
	defer cancel()

	if c.services.Monitoring != nil {
		st, err := c.services.Monitoring.GetState(ctx)
		if err == nil {
			ch <- prometheus.MustNewConstMetric(cleanerOnDesc, prometheus.GaugeValue, boolToFloat(st.IsOn))
			ch <- prometheus.MustNewConstMetric(cleanerActiveDesc, prometheus.GaugeValue, boolToFloat(st.IsActive))
			if !st.LastCleanedAt.IsZero() {
				ch <- prometheus.MustNewConstMetric(lastCleanedDesc, prometheus.GaugeValue, float64(st.LastCleanedAt.Unix()))
			}
		} else {
			success = 0
			c.logScrapeError("state", err)
		}
	}

	if c.services.Dashboard != nil {
		d, err := c.services.Dashboard.Snapshot(ctx)
		if err == nil {
			ch <- prometheus.MustNewConstMetric(imagesCapturedDesc, prometheus.GaugeValue, float64(d.ImagesCaptured))
		} else {
			success = 0
			c.logScrapeError("dashboard", err)
		}
	}

	if c.services.Schedule != nil {
		entries, err := c.services.Schedule.List(ctx)
		if err == nil {
			perDay := make(map[string]float64)
			for _, e := range entries {
				perDay[string(e.Day)]++
			}
			for day, cnt := range perDay {
				ch <- prometheus.MustNewConstMetric(scheduleEntriesDesc, prometheus.GaugeValue, cnt, day)
			}
		} else {
			success = 0
			c.logScrapeError("schedule", err)
		}
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

func (c *cleanerCollector) logScrapeError(part string, err error) {
	if c.log != nil {
		c.log.Errorw("metrics_scrape_failed", "part", part, "err", err)
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

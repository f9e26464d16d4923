package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/muurk/devportal"
	"github.com/muurk/devportal/version"
)

// Collector collects device metrics over a devportal client.
//
// Collector implements prometheus.Collector; each scrape issues one GET per
// exposed endpoint against the device. Register it with a prometheus
// registry and let the scrape schedule drive device polling.
type Collector struct {
	client *devportal.Client

	scrapeSuccess prometheus.Gauge
	lastSuccess   prometheus.Gauge
	info          *prometheus.GaugeVec
	buildInfo     *prometheus.GaugeVec

	adapterCount prometheus.Gauge
	packageCount prometheus.Gauge
}

// NewCollector creates a collector polling the given client.
func NewCollector(client *devportal.Client) *Collector {
	return &Collector{
		client: client,
		scrapeSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "devportal_scrape_success",
			Help: "Last scrape success (1=ok, 0=error)",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "devportal_last_success_timestamp_seconds",
			Help: "Last successful scrape timestamp (epoch seconds)",
		}),
		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "devportal_device_info",
			Help: "Device identity and OS info",
		}, []string{"machine_name", "os_version", "os_edition", "platform"}),
		buildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "devportal_build_info",
			Help: "devportal library build info",
		}, []string{"version", "commit"}),
		adapterCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "devportal_network_adapters",
			Help: "Number of network adapters reported by the device",
		}),
		packageCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "devportal_installed_packages",
			Help: "Number of installed application packages",
		}),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.scrapeSuccess.Describe(ch)
	c.lastSuccess.Describe(ch)
	c.info.Describe(ch)
	c.buildInfo.Describe(ch)
	c.adapterCount.Describe(ch)
	c.packageCount.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.buildInfo.Reset()
	c.buildInfo.With(prometheus.Labels{
		"version": version.Version,
		"commit":  version.Commit,
	}).Set(1)

	if c.client == nil {
		c.scrapeSuccess.Set(0)
		c.collectAll(ch)
		return
	}

	name, err := c.client.GetMachineName()
	if err != nil {
		c.scrapeSuccess.Set(0)
		c.collectAll(ch)
		return
	}

	info, err := c.client.GetSoftwareInfo()
	if err != nil {
		c.scrapeSuccess.Set(0)
		c.collectAll(ch)
		return
	}

	ipConfig, err := c.client.GetIPConfig()
	if err != nil {
		c.scrapeSuccess.Set(0)
		c.collectAll(ch)
		return
	}

	packages, err := c.client.GetInstalledPackages()
	if err != nil {
		c.scrapeSuccess.Set(0)
		c.collectAll(ch)
		return
	}

	c.scrapeSuccess.Set(1)
	c.lastSuccess.Set(float64(time.Now().Unix()))

	c.info.Reset()
	labels := prometheus.Labels{
		"machine_name": name.Name,
		"os_version":   info.OsVersion,
		"os_edition":   info.OsEdition,
		"platform":     info.Platform,
	}
	if name.Name != "" || info.OsVersion != "" {
		c.info.With(labels).Set(1)
	}

	c.adapterCount.Set(float64(len(ipConfig.Adapters)))
	c.packageCount.Set(float64(len(packages.InstalledPackages)))

	c.collectAll(ch)
}

func (c *Collector) collectAll(ch chan<- prometheus.Metric) {
	c.scrapeSuccess.Collect(ch)
	c.lastSuccess.Collect(ch)
	c.info.Collect(ch)
	c.buildInfo.Collect(ch)
	c.adapterCount.Collect(ch)
	c.packageCount.Collect(ch)
}

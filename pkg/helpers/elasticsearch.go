package helpers

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// ESOptions configures the Elasticsearch client. Empty Addresses disables search.
type ESOptions struct {
	Addresses  []string
	Username   string
	Password   string
	MaxRetries int
	Timeout    time.Duration
}

// NewESClient returns nil, nil when no address is configured.
func NewESClient(opts ESOptions) (*elasticsearch.Client, error) {
	if len(opts.Addresses) == 0 {
		return nil, nil
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses:  opts.Addresses,
		Username:   opts.Username,
		Password:   opts.Password,
		MaxRetries: opts.MaxRetries,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: timeout,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
		},
	})
}

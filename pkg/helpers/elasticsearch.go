package helpers

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// NewESClient creates the client used for survey response indexing and
// admin full-text search. dialTimeout bounds both the TCP dial and the
// wait for response headers; basic auth is optional.
func NewESClient(addrs []string, username, password string, dialTimeout time.Duration) (*elasticsearch.Client, error) {
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: dialTimeout,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: dialTimeout}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

package customHttpClient

import (
	"net/http"

	"github.com/dkrish/GoOCR/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// Pooled is shared by the extractor client, its health probe and URL
// downloads so they reuse connections instead of redialing per page.
var Pooled = &http.Client{Transport: customTransport}

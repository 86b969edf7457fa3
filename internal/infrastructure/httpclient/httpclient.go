package httpclient

import (
	"net/http"
	"time"
)

// New retorna un cliente con timeout explícito y un transporte propio,
// así ningún cliente saliente comparte http.DefaultClient.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: http.DefaultTransport.(*http.Transport).Clone(),
	}
}

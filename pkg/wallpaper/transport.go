package wallpaper

import "net/http"

// identifyingTransport stamps every outgoing request with the wallman
// User-Agent so image hosts see a stable client identity. The incoming
// request is left untouched, per the RoundTripper contract.
type identifyingTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *identifyingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(out)
}

package httpapi

import "net/http"

// adultHeader is set by the authenticating gateway after it has verified the
// viewer's age.
const adultHeader = "X-Viewer-Adult"

// AgeResolver decides whether a request may see restricted titles. The header
// is only honored when the deployment explicitly trusts its gateway to set
// it; otherwise every viewer is treated as not adult.
type AgeResolver struct {
	TrustHeader bool
}

// IsAdult resolves the viewer's adult flag for one request.
func (a AgeResolver) IsAdult(r *http.Request) bool {
	if !a.TrustHeader {
		return false
	}
	return r.Header.Get(adultHeader) == "true"
}

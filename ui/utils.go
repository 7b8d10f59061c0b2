package ui

import (
	"net/http"
	"net/url"
)

// fragmentTarget returns the id of the element the fragment will replace.
func fragmentTarget(r *http.Request, fallback string) string {
	if target := r.Header.Get("HX-Target"); target != "" {
		return target
	}
	return fallback
}

// forwardedParams returns the query parameters to pass on to the API.
func forwardedParams(r *http.Request, drop ...string) url.Values {
	q := r.URL.Query()
	for _, k := range drop {
		q.Del(k)
	}
	return q
}

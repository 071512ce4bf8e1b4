package services

import (
	"net/http"
	"strings"
)

// GetClientIP resolves the best-effort origin IP from request headers.
// Priority: cf-connecting-ip (edge-injected), x-real-ip, then the first entry
// of x-forwarded-for. Values pass through verbatim, no format validation.
// With no headers present it returns "0.0.0.0" so click rows never carry an
// empty address.
func GetClientIP(h http.Header) string {
	if ip := h.Get("cf-connecting-ip"); ip != "" {
		return ip
	}
	if ip := h.Get("x-real-ip"); ip != "" {
		return ip
	}
	if fwd := h.Get("x-forwarded-for"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	return "0.0.0.0"
}

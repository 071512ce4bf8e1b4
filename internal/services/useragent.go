package services

import "strings"

// UAInfo is the categorical breakdown of a user-agent string. Every field is
// always populated; unrecognized input falls back to desktop/Unknown/Unknown.
type UAInfo struct {
	Device  string `json:"device"`
	OS      string `json:"os"`
	Browser string `json:"browser"`
}

// Ordered substring tables. First match wins, so distinguishing tokens must
// come before generic ones: Edge and Opera ship a "Chrome" token, every
// Chromium build ships "Safari".
var osTable = []struct{ token, name string }{
	{"Android", "Android"},
	{"iPhone", "iOS"},
	{"iPad", "iOS"},
	{"Windows", "Windows"},
	{"Mac OS X", "macOS"},
	{"Macintosh", "macOS"},
	{"CrOS", "ChromeOS"},
	{"Linux", "Linux"},
}

var browserTable = []struct{ token, name string }{
	{"Edg", "Edge"},
	{"OPR", "Opera"},
	{"Opera", "Opera"},
	{"SamsungBrowser", "Samsung Internet"},
	{"Firefox", "Firefox"},
	{"FxiOS", "Firefox"},
	{"CriOS", "Chrome"},
	{"Chromium", "Chrome"},
	{"Chrome", "Chrome"},
	{"Safari", "Safari"},
}

// ParseUserAgent classifies a raw User-Agent header into device, OS and
// browser labels. It never fails; malformed or empty input yields the
// all-default result.
func ParseUserAgent(ua string) UAInfo {
	info := UAInfo{Device: "desktop", OS: "Unknown", Browser: "Unknown"}
	if ua == "" {
		return info
	}

	for _, e := range osTable {
		if strings.Contains(ua, e.token) {
			info.OS = e.name
			break
		}
	}

	for _, e := range browserTable {
		if strings.Contains(ua, e.token) {
			info.Browser = e.name
			break
		}
	}

	// Tablets before phones: Android tablets carry "Android" without
	// "Mobile", iPads carry "iPad".
	switch {
	case strings.Contains(ua, "iPad") || strings.Contains(ua, "Tablet"):
		info.Device = "tablet"
	case strings.Contains(ua, "Mobile") || strings.Contains(ua, "Android") || strings.Contains(ua, "iPhone"):
		info.Device = "mobile"
	}

	return info
}

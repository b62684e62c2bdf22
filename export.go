package main

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildExportURL turns a date range and an ordered investor set into the
// download locator for the bulk CSV endpoint. Parameter order is part of
// the contract (start_date, end_date, then one investors per category in
// the order supplied), so the query string is assembled by hand rather
// than through url.Values, which sorts keys.
//
// Returns ok=false when either boundary date is missing; callers treat
// that as a no-op rather than an error.
func BuildExportURL(base string, req ExportRequest) (string, bool) {
	if req.StartDate == "" || req.EndDate == "" {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s/download?start_date=%s&end_date=%s",
		base, url.QueryEscape(req.StartDate), url.QueryEscape(req.EndDate))

	for _, investor := range req.Investors {
		fmt.Fprintf(&b, "&investors=%s", url.QueryEscape(string(investor)))
	}

	return b.String(), true
}

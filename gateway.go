package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Gateway is the typed boundary to the remote analytics service. Callers
// only learn that a query failed, never why; retry policy lives elsewhere.
type Gateway interface {
	FetchDaily(date string, investor Investor) (*DailyViewModel, error)
	FetchTrend(days int, investor Investor) (*AnalysisViewModel, error)
	FetchAdvanced(days int, investor Investor) (*AnalysisViewModel, error)
}

// FlowClient talks to the investor-flow analytics service over HTTP.
// All queries are GETs with query parameters only.
type FlowClient struct {
	client     *resty.Client
	baseURL    string
	exportBase string
}

func NewFlowClient(baseURL, exportBase string) *FlowClient {
	client := resty.New()
	client.SetTimeout(60 * time.Second)

	return &FlowClient{
		client:     client,
		baseURL:    baseURL,
		exportBase: exportBase,
	}
}

// FetchDaily returns the top net buy/sell lists for one date and investor.
// The service substitutes the nearest trading day for holidays, so the
// returned Date may differ from the requested one.
func (f *FlowClient) FetchDaily(date string, investor Investor) (*DailyViewModel, error) {
	if !isValidDate(date) {
		return nil, fmt.Errorf("invalid date %q: expected YYYYMMDD", date)
	}
	if !investor.Valid() {
		return nil, fmt.Errorf("invalid investor type: %s", investor)
	}

	url := fmt.Sprintf("%s/data?date=%s&investor=%s", f.baseURL, date, investor)

	resp, err := f.client.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily data: %v", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode(), resp.String())
	}

	var model DailyViewModel
	if err := json.Unmarshal(resp.Body(), &model); err != nil {
		return nil, fmt.Errorf("failed to parse daily response: %v", err)
	}

	return &model, nil
}

// FetchTrend returns the cumulative top net buy/sell lists over the past
// days trading days. Only Buy, Sell, StartDate and EndDate are populated.
func (f *FlowClient) FetchTrend(days int, investor Investor) (*AnalysisViewModel, error) {
	if err := checkWindow(days, investor); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/analysis/trend?days=%d&investor=%s", f.baseURL, days, investor)

	resp, err := f.client.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trend data: %v", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode(), resp.String())
	}

	var model AnalysisViewModel
	if err := json.Unmarshal(resp.Body(), &model); err != nil {
		return nil, fmt.Errorf("failed to parse trend response: %v", err)
	}

	return &model, nil
}

// FetchAdvanced returns the consecutive net-buy and new-inflow pattern
// lists for the window. This is the heavy query: it scans every day in the
// window server-side and is the one expected to occasionally time out.
func (f *FlowClient) FetchAdvanced(days int, investor Investor) (*AnalysisViewModel, error) {
	if err := checkWindow(days, investor); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/analysis/advanced?days=%d&investor=%s", f.baseURL, days, investor)

	resp, err := f.client.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch advanced analysis: %v", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode(), resp.String())
	}

	var model AnalysisViewModel
	if err := json.Unmarshal(resp.Body(), &model); err != nil {
		return nil, fmt.Errorf("failed to parse advanced response: %v", err)
	}

	return &model, nil
}

// ExportURL materializes the download locator for a bulk CSV export.
// Pure string assembly, no network call.
func (f *FlowClient) ExportURL(req ExportRequest) (string, bool) {
	return BuildExportURL(f.exportBase, req)
}

func checkWindow(days int, investor Investor) error {
	if days < minWindowDays || days > maxWindowDays {
		return fmt.Errorf("window of %d days out of range [%d,%d]", days, minWindowDays, maxWindowDays)
	}
	if !investor.Valid() {
		return fmt.Errorf("invalid investor type: %s", investor)
	}
	return nil
}

func isValidDate(date string) bool {
	if len(date) != 8 {
		return false
	}
	for _, char := range date {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

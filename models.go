package main

// Investor identifies one of the three market participant categories the
// analytics service partitions its data by.
type Investor string

const (
	InvestorForeigner   Investor = "foreigner"
	InvestorIndividual  Investor = "individual"
	InvestorInstitution Investor = "institution"
)

// AllInvestors lists the categories in the order the service documents them.
var AllInvestors = []Investor{InvestorForeigner, InvestorIndividual, InvestorInstitution}

func (i Investor) Valid() bool {
	switch i {
	case InvestorForeigner, InvestorIndividual, InvestorInstitution:
		return true
	}
	return false
}

// Page identifies which view the user is currently on.
type Page string

const (
	PageHome     Page = "home"
	PageAnalysis Page = "analysis"
)

func (p Page) Valid() bool {
	return p == PageHome || p == PageAnalysis
}

// RankedStock is one instrument's standing within a single ranked list.
// Rank is 1-based and unique within its list only; the service owns the
// ordering and rows must be rendered in the order received.
type RankedStock struct {
	Ticker        string   `json:"ticker"`
	Name          string   `json:"name"`
	NetBuyAmount  int64    `json:"net_buy_amount"`
	ClosePrice    int64    `json:"close_price,omitempty"`
	PercentChange *float64 `json:"percent_change,omitempty"`
	Rank          int      `json:"rank"`
}

// DailyViewModel is the result of a single-date, single-investor query.
// Date carries the date actually served, which may differ from the one
// requested when the service substitutes the nearest trading day.
type DailyViewModel struct {
	Buy  []RankedStock `json:"buy"`
	Sell []RankedStock `json:"sell"`
	Date string        `json:"date,omitempty"`
}

// AnalysisViewModel is the merged result of the trend and advanced queries
// over a multi-day window. Consecutive and NewInflow are always non-nil
// after a merge, even when the advanced query failed.
type AnalysisViewModel struct {
	Buy          []RankedStock `json:"buy"`
	Sell         []RankedStock `json:"sell"`
	Consecutive  []RankedStock `json:"consecutive"`
	NewInflow    []RankedStock `json:"new_inflow"`
	DaysAnalyzed int           `json:"days_analyzed,omitempty"`
	StartDate    string        `json:"start_date,omitempty"`
	EndDate      string        `json:"end_date,omitempty"`
}

// ViewState is the full set of user-controlled parameters plus the
// transient fetch flags. It lives only in memory for the lifetime of the
// process and is never persisted.
type ViewState struct {
	SelectedDate       string   `json:"selectedDate"`
	ActiveInvestor     Investor `json:"activeInvestor"`
	ActivePage         Page     `json:"activePage"`
	AnalysisWindowDays int      `json:"analysisWindowDays"`
	AnalysisInvestor   Investor `json:"analysisInvestor"`
	Loading            bool     `json:"loading"`
	LastError          string   `json:"lastError,omitempty"`
}

// ExportRequest describes one bulk CSV download. Investors keeps the order
// it was supplied in; the request is built on demand and never retained.
type ExportRequest struct {
	StartDate string
	EndDate   string
	Investors []Investor
}

// EventKind tags the user actions the orchestrator reacts to.
type EventKind string

const (
	EventDateSelected             EventKind = "date_selected"
	EventInvestorSelected         EventKind = "investor_selected"
	EventPageSwitched             EventKind = "page_switched"
	EventWindowChanged            EventKind = "window_changed"
	EventAnalysisInvestorSelected EventKind = "analysis_investor_selected"
)

// Event is emitted by the store's setters and consumed by the orchestrator.
// Only the field matching Kind carries a value.
type Event struct {
	Kind     EventKind
	Date     string
	Investor Investor
	Page     Page
	Days     int
}

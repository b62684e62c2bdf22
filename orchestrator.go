package main

import (
	"sync"

	"go.uber.org/zap"
)

// Fetch cycle states.
type FetchState string

const (
	StateIdle    FetchState = "idle"
	StateLoading FetchState = "loading"
	StateLoaded  FetchState = "loaded"
	StateFailed  FetchState = "failed"
)

// Banner messages. Transport failures and empty results read the same to
// the user; the distinction only exists in the logs.
const (
	msgNoDailyData  = "No data found for this date/investor"
	msgNoPeriodData = "No data found for this period"
)

type fetchParams struct {
	date     string
	days     int
	investor Investor
}

// Orchestrator is the state machine between user events and the gateway.
// It is the only writer of the two view models and the transient flags,
// and the catch boundary for every gateway failure: nothing propagates
// past Apply.
//
// Apply holds the mutex for the whole refresh, so concurrent triggers
// (handlers, the cron job) serialize and the last completed cycle owns
// the shared state.
type Orchestrator struct {
	mu       sync.RWMutex
	gateway  Gateway
	store    *Store
	state    FetchState
	daily    *DailyViewModel
	analysis *AnalysisViewModel

	// Parameters of the last successful fetch per page. A trigger that
	// matches the memo is a fetch-skip; this is also what stops the
	// date-correction re-trigger from looping.
	lastHome     *fetchParams
	lastAnalysis *fetchParams
}

func NewOrchestrator(gateway Gateway, store *Store) *Orchestrator {
	return &Orchestrator{
		gateway: gateway,
		store:   store,
		state:   StateIdle,
	}
}

// Apply consumes one user event and runs the fetch cycle it calls for.
// Events that do not concern the active page change stored parameters
// only; their data is fetched when the user switches to that page.
func (o *Orchestrator) Apply(ev Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.store.State().ActivePage {
	case PageHome:
		switch ev.Kind {
		case EventDateSelected, EventInvestorSelected, EventPageSwitched:
			o.refreshHome()
		}
	case PageAnalysis:
		switch ev.Kind {
		case EventWindowChanged, EventAnalysisInvestorSelected, EventPageSwitched:
			o.refreshAnalysis()
		}
	}
}

// CurrentState reports where the machine is in the fetch cycle.
func (o *Orchestrator) CurrentState() FetchState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Daily returns the last loaded daily view model, nil after a failure.
func (o *Orchestrator) Daily() *DailyViewModel {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.daily
}

// Analysis returns the last merged analysis view model, nil after a
// trend failure.
func (o *Orchestrator) Analysis() *AnalysisViewModel {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.analysis
}

func (o *Orchestrator) refreshHome() {
	st := o.store.State()
	params := fetchParams{date: st.SelectedDate, investor: st.ActiveInvestor}

	if o.lastHome != nil && *o.lastHome == params {
		o.store.SetError("")
		o.transition(StateLoaded)
		return
	}

	o.transition(StateLoading)
	o.store.SetLoading(true)
	defer o.store.SetLoading(false)

	model, err := o.gateway.FetchDaily(params.date, params.investor)
	if err != nil {
		Logger.Warn("daily fetch failed",
			zap.String("date", params.date),
			zap.String("investor", string(params.investor)),
			zap.Error(err))
		o.daily = nil
		o.lastHome = nil
		o.store.SetError(msgNoDailyData)
		o.transition(StateFailed)
		return
	}

	if model.Date != "" && model.Date != params.date {
		// The service answered for the nearest trading day. Adopt its
		// date; the memo below makes the re-trigger a fetch-skip.
		Logger.Info("selected date corrected to nearest trading day",
			zap.String("requested", params.date),
			zap.String("served", model.Date))
		o.store.SetDate(model.Date)
		params.date = model.Date
	}

	o.daily = model
	o.lastHome = &params
	o.store.SetError("")
	o.transition(StateLoaded)
}

func (o *Orchestrator) refreshAnalysis() {
	st := o.store.State()
	params := fetchParams{days: st.AnalysisWindowDays, investor: st.AnalysisInvestor}

	if o.lastAnalysis != nil && *o.lastAnalysis == params {
		o.store.SetError("")
		o.transition(StateLoaded)
		return
	}

	o.transition(StateLoading)
	o.store.SetLoading(true)
	defer o.store.SetLoading(false)

	trend, err := o.gateway.FetchTrend(params.days, params.investor)
	if err != nil {
		Logger.Warn("trend fetch failed",
			zap.Int("days", params.days),
			zap.String("investor", string(params.investor)),
			zap.Error(err))
		o.analysis = nil
		o.lastAnalysis = nil
		o.store.SetError(msgNoPeriodData)
		o.transition(StateFailed)
		return
	}

	// The advanced query is issued only after the trend query settled, so
	// its failure can never mask a trend failure. It degrades silently:
	// empty pattern lists, a log entry, no banner.
	advanced, err := o.gateway.FetchAdvanced(params.days, params.investor)
	if err != nil {
		Logger.Warn("advanced analysis unavailable, degrading to empty pattern lists",
			zap.Int("days", params.days),
			zap.String("investor", string(params.investor)),
			zap.Error(err))
		advanced = &AnalysisViewModel{}
	}

	o.analysis = mergeAnalysis(trend, advanced)
	o.lastAnalysis = &params
	o.store.SetError("")
	o.transition(StateLoaded)
}

// mergeAnalysis combines the trend half (cumulative rankings) with the
// advanced half (pattern lists). Window dates come preferentially from the
// advanced result, falling back to the trend result. Pattern lists are
// always non-nil so downstream code has no null branches.
func mergeAnalysis(trend, advanced *AnalysisViewModel) *AnalysisViewModel {
	merged := &AnalysisViewModel{
		Buy:          trend.Buy,
		Sell:         trend.Sell,
		Consecutive:  advanced.Consecutive,
		NewInflow:    advanced.NewInflow,
		DaysAnalyzed: advanced.DaysAnalyzed,
		StartDate:    advanced.StartDate,
		EndDate:      advanced.EndDate,
	}
	if merged.Consecutive == nil {
		merged.Consecutive = []RankedStock{}
	}
	if merged.NewInflow == nil {
		merged.NewInflow = []RankedStock{}
	}
	if merged.StartDate == "" {
		merged.StartDate = trend.StartDate
	}
	if merged.EndDate == "" {
		merged.EndDate = trend.EndDate
	}
	return merged
}

func (o *Orchestrator) transition(next FetchState) {
	if next != o.state {
		Logger.Debug("fetch state transition",
			zap.String("from", string(o.state)),
			zap.String("to", string(next)))
		o.state = next
	}
}

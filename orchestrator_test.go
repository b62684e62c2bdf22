package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway scripts the remote service for orchestrator tests and
// counts how often each query shape is issued.
type fakeGateway struct {
	daily    *DailyViewModel
	dailyErr error
	trend    *AnalysisViewModel
	trendErr error
	advanced *AnalysisViewModel
	advErr   error

	dailyCalls    int
	trendCalls    int
	advancedCalls int
}

func (g *fakeGateway) FetchDaily(date string, investor Investor) (*DailyViewModel, error) {
	g.dailyCalls++
	if g.dailyErr != nil {
		return nil, g.dailyErr
	}
	if g.daily == nil {
		return &DailyViewModel{Date: date}, nil
	}
	return g.daily, nil
}

func (g *fakeGateway) FetchTrend(days int, investor Investor) (*AnalysisViewModel, error) {
	g.trendCalls++
	if g.trendErr != nil {
		return nil, g.trendErr
	}
	if g.trend == nil {
		return &AnalysisViewModel{}, nil
	}
	return g.trend, nil
}

func (g *fakeGateway) FetchAdvanced(days int, investor Investor) (*AnalysisViewModel, error) {
	g.advancedCalls++
	if g.advErr != nil {
		return nil, g.advErr
	}
	if g.advanced == nil {
		return &AnalysisViewModel{}, nil
	}
	return g.advanced, nil
}

func threeBuyTrend() *AnalysisViewModel {
	return &AnalysisViewModel{
		Buy: []RankedStock{
			{Ticker: "005930", Name: "삼성전자", NetBuyAmount: 3_000_000_000, Rank: 1},
			{Ticker: "000660", Name: "SK하이닉스", NetBuyAmount: 2_000_000_000, Rank: 2},
			{Ticker: "035420", Name: "NAVER", NetBuyAmount: 1_000_000_000, Rank: 3},
		},
		StartDate: "20240102",
		EndDate:   "20240108",
	}
}

func TestHomeFetchSuccess(t *testing.T) {
	gw := &fakeGateway{daily: &DailyViewModel{
		Buy:  []RankedStock{{Ticker: "005930", Name: "삼성전자", NetBuyAmount: 1_000_000_000, Rank: 1}},
		Date: "20240105",
	}}
	store := NewStore()
	orch := NewOrchestrator(gw, store)

	orch.Apply(store.SetDate("20240105"))

	assert.Equal(t, StateLoaded, orch.CurrentState())
	require.NotNil(t, orch.Daily())
	assert.Len(t, orch.Daily().Buy, 1)
	assert.False(t, store.State().Loading)
	assert.Empty(t, store.State().LastError)
	assert.Equal(t, 1, gw.dailyCalls)
}

func TestHomeDateCorrectionDoesNotRefetch(t *testing.T) {
	// Saturday requested, service answers with Friday's data
	gw := &fakeGateway{daily: &DailyViewModel{
		Buy:  []RankedStock{{Ticker: "005930", Name: "삼성전자", NetBuyAmount: 1_000_000_000, Rank: 1}},
		Date: "20240105",
	}}
	store := NewStore()
	orch := NewOrchestrator(gw, store)

	orch.Apply(store.SetDate("20240106"))

	assert.Equal(t, "20240105", store.State().SelectedDate)
	assert.Equal(t, StateLoaded, orch.CurrentState())
	assert.Equal(t, 1, gw.dailyCalls)

	// The corrected date re-triggers the machine once; the second pass
	// must be a fetch-skip, not another network call.
	orch.Apply(store.SetDate("20240105"))
	assert.Equal(t, 1, gw.dailyCalls)
	assert.Equal(t, StateLoaded, orch.CurrentState())
	assert.False(t, store.State().Loading)
}

func TestHomeFetchFailureClearsModel(t *testing.T) {
	gw := &fakeGateway{daily: &DailyViewModel{Date: "20240104"}}
	store := NewStore()
	orch := NewOrchestrator(gw, store)

	orch.Apply(store.SetDate("20240104"))
	require.NotNil(t, orch.Daily())

	gw.dailyErr = errors.New("connection refused")
	orch.Apply(store.SetDate("20240105"))

	assert.Equal(t, StateFailed, orch.CurrentState())
	assert.Nil(t, orch.Daily())
	assert.Equal(t, msgNoDailyData, store.State().LastError)
	assert.False(t, store.State().Loading)
}

func TestHomeFailureThenRetrySameParams(t *testing.T) {
	gw := &fakeGateway{dailyErr: errors.New("boom")}
	store := NewStore()
	orch := NewOrchestrator(gw, store)

	orch.Apply(store.SetDate("20240105"))
	assert.Equal(t, StateFailed, orch.CurrentState())
	assert.Equal(t, 1, gw.dailyCalls)

	// A failed fetch leaves no memo, so the same parameters retry
	gw.dailyErr = nil
	gw.daily = &DailyViewModel{Date: "20240105"}
	orch.Apply(store.SetDate("20240105"))
	assert.Equal(t, StateLoaded, orch.CurrentState())
	assert.Equal(t, 2, gw.dailyCalls)
	assert.Empty(t, store.State().LastError)
}

func TestAnalysisTrendFailureFailsWholeCycle(t *testing.T) {
	gw := &fakeGateway{
		trendErr: errors.New("504 gateway timeout"),
		advanced: &AnalysisViewModel{Consecutive: []RankedStock{{Ticker: "005930", Rank: 1}}},
	}
	store := NewStore()
	orch := NewOrchestrator(gw, store)

	orch.Apply(store.SetActivePage(PageAnalysis))

	assert.Equal(t, StateFailed, orch.CurrentState())
	assert.Nil(t, orch.Analysis())
	assert.Equal(t, msgNoPeriodData, store.State().LastError)
	assert.False(t, store.State().Loading)
	// Sequential dependency: advanced is never issued after a trend failure
	assert.Equal(t, 0, gw.advancedCalls)
}

func TestAnalysisAdvancedFailureDegradesSilently(t *testing.T) {
	gw := &fakeGateway{
		trend:  threeBuyTrend(),
		advErr: errors.New("timeout awaiting response"),
	}
	store := NewStore()
	orch := NewOrchestrator(gw, store)

	store.SetAnalysisInvestor(InvestorIndividual)
	store.SetAnalysisWindowDays(7)
	orch.Apply(store.SetActivePage(PageAnalysis))

	assert.Equal(t, StateLoaded, orch.CurrentState())
	model := orch.Analysis()
	require.NotNil(t, model)

	assert.Len(t, model.Buy, 3)
	require.NotNil(t, model.Consecutive)
	require.NotNil(t, model.NewInflow)
	assert.Empty(t, model.Consecutive)
	assert.Empty(t, model.NewInflow)

	// Degradation is log-only: no user-facing banner
	assert.Empty(t, store.State().LastError)
	assert.False(t, store.State().Loading)
}

func TestAnalysisMergePrefersAdvancedDates(t *testing.T) {
	gw := &fakeGateway{
		trend: threeBuyTrend(),
		advanced: &AnalysisViewModel{
			Consecutive:  []RankedStock{{Ticker: "005930", Rank: 1}},
			NewInflow:    []RankedStock{},
			DaysAnalyzed: 5,
			StartDate:    "20240103",
			EndDate:      "20240109",
		},
	}
	store := NewStore()
	orch := NewOrchestrator(gw, store)

	orch.Apply(store.SetActivePage(PageAnalysis))

	model := orch.Analysis()
	require.NotNil(t, model)
	assert.Equal(t, "20240103", model.StartDate)
	assert.Equal(t, "20240109", model.EndDate)
	assert.Equal(t, 5, model.DaysAnalyzed)
}

func TestAnalysisMergeFallsBackToTrendDates(t *testing.T) {
	gw := &fakeGateway{
		trend:    threeBuyTrend(),
		advanced: &AnalysisViewModel{},
	}
	store := NewStore()
	orch := NewOrchestrator(gw, store)

	orch.Apply(store.SetActivePage(PageAnalysis))

	model := orch.Analysis()
	require.NotNil(t, model)
	assert.Equal(t, "20240102", model.StartDate)
	assert.Equal(t, "20240108", model.EndDate)
}

func TestMergeAnalysisNeverYieldsNilPatternLists(t *testing.T) {
	merged := mergeAnalysis(threeBuyTrend(), &AnalysisViewModel{})
	assert.NotNil(t, merged.Consecutive)
	assert.NotNil(t, merged.NewInflow)
	assert.Empty(t, merged.Consecutive)
	assert.Empty(t, merged.NewInflow)
}

func TestEventsIrrelevantToActivePageDoNotFetch(t *testing.T) {
	gw := &fakeGateway{
		daily: &DailyViewModel{Date: "20240105"},
		trend: threeBuyTrend(),
	}
	store := NewStore()
	orch := NewOrchestrator(gw, store)

	// On the home page, analysis parameter changes only store values
	orch.Apply(store.SetAnalysisWindowDays(14))
	orch.Apply(store.SetAnalysisInvestor(InvestorInstitution))
	assert.Equal(t, 0, gw.trendCalls)
	assert.Equal(t, 0, gw.dailyCalls)

	// Switching pages fetches with the accumulated parameters
	orch.Apply(store.SetActivePage(PageAnalysis))
	assert.Equal(t, 1, gw.trendCalls)

	// And date changes no longer concern the analysis page
	orch.Apply(store.SetDate("20240102"))
	assert.Equal(t, 0, gw.dailyCalls)
}

func TestPageSwitchSkipsFetchForLoadedParams(t *testing.T) {
	gw := &fakeGateway{
		daily:    &DailyViewModel{Date: "20240105"},
		trend:    threeBuyTrend(),
		advanced: &AnalysisViewModel{},
	}
	store := NewStore()
	orch := NewOrchestrator(gw, store)

	store.SetDate("20240105")
	orch.Apply(store.SetActivePage(PageHome))
	orch.Apply(store.SetActivePage(PageAnalysis))
	assert.Equal(t, 1, gw.dailyCalls)
	assert.Equal(t, 1, gw.trendCalls)

	// Both pages hold data for the current parameters: switching back
	// and forth issues no further queries.
	orch.Apply(store.SetActivePage(PageHome))
	orch.Apply(store.SetActivePage(PageAnalysis))
	assert.Equal(t, 1, gw.dailyCalls)
	assert.Equal(t, 1, gw.trendCalls)
	assert.Equal(t, StateLoaded, orch.CurrentState())

	// A parameter change invalidates only its own page
	orch.Apply(store.SetAnalysisWindowDays(14))
	assert.Equal(t, 2, gw.trendCalls)
	assert.Equal(t, 1, gw.dailyCalls)
}

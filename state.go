package main

import (
	"strconv"
	"sync"
	"time"
)

// Analysis window bounds in trading days.
const (
	minWindowDays     = 1
	maxWindowDays     = 30
	defaultWindowDays = 7
)

// Store holds the current ViewState. Setters update exactly one field and
// hand back the event that describes the change; they never perform I/O.
type Store struct {
	mu    sync.RWMutex
	state ViewState
}

func NewStore() *Store {
	return &Store{state: ViewState{
		SelectedDate:       time.Now().Format("20060102"),
		ActiveInvestor:     InvestorForeigner,
		ActivePage:         PageHome,
		AnalysisWindowDays: defaultWindowDays,
		AnalysisInvestor:   InvestorForeigner,
	}}
}

// State returns a copy of the current view state.
func (s *Store) State() ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) SetDate(date string) Event {
	s.mu.Lock()
	s.state.SelectedDate = date
	s.mu.Unlock()
	return Event{Kind: EventDateSelected, Date: date}
}

func (s *Store) SetActiveInvestor(investor Investor) Event {
	s.mu.Lock()
	s.state.ActiveInvestor = investor
	s.mu.Unlock()
	return Event{Kind: EventInvestorSelected, Investor: investor}
}

func (s *Store) SetActivePage(page Page) Event {
	s.mu.Lock()
	s.state.ActivePage = page
	s.mu.Unlock()
	return Event{Kind: EventPageSwitched, Page: page}
}

// SetAnalysisWindowDays clamps the window into [1,30] before storing it.
func (s *Store) SetAnalysisWindowDays(days int) Event {
	days = clampWindowDays(days)
	s.mu.Lock()
	s.state.AnalysisWindowDays = days
	s.mu.Unlock()
	return Event{Kind: EventWindowChanged, Days: days}
}

func (s *Store) SetAnalysisInvestor(investor Investor) Event {
	s.mu.Lock()
	s.state.AnalysisInvestor = investor
	s.mu.Unlock()
	return Event{Kind: EventAnalysisInvestorSelected, Investor: investor}
}

// SetLoading and SetError maintain the transient fetch flags. Only the
// orchestrator calls them.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.state.Loading = loading
	s.mu.Unlock()
}

func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.state.LastError = msg
	s.mu.Unlock()
}

func clampWindowDays(days int) int {
	if days < minWindowDays {
		return minWindowDays
	}
	if days > maxWindowDays {
		return maxWindowDays
	}
	return days
}

// parseWindowDays coerces raw user input into a usable window: non-numeric
// input becomes the minimum, everything else is clamped.
func parseWindowDays(raw string) int {
	days, err := strconv.Atoi(raw)
	if err != nil {
		return minWindowDays
	}
	return clampWindowDays(days)
}

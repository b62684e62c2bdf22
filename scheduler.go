package main

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler re-selects the latest trading day once per day after the
// market settles, so a dashboard left open overnight shows fresh data.
// It drives the orchestrator through the same event path as user input,
// which keeps all writes to shared state serialized.
type Scheduler struct {
	store    *Store
	orch     *Orchestrator
	cron     *cron.Cron
	spec     string
	location *time.Location
}

func NewScheduler(store *Store, orch *Orchestrator, spec string) (*Scheduler, error) {
	// The exchange runs on Seoul time
	seoulTZ, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		store:    store,
		orch:     orch,
		cron:     cron.New(cron.WithLocation(seoulTZ)),
		spec:     spec,
		location: seoulTZ,
	}, nil
}

func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc(s.spec, s.refreshLatestDay)
	if err != nil {
		Logger.Warn("failed to schedule daily refresh", zap.String("spec", s.spec), zap.Error(err))
		return
	}

	s.cron.Start()
	Logger.Info("daily refresh scheduled", zap.String("spec", s.spec))
}

// refreshLatestDay selects today in Seoul time. If today turns out not to
// be a trading day the service corrects the date and the orchestrator
// adopts the correction like any other fetch.
func (s *Scheduler) refreshLatestDay() {
	today := time.Now().In(s.location).Format("20060102")
	Logger.Info("scheduled refresh", zap.String("date", today))
	s.orch.Apply(s.store.SetDate(today))
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	Logger.Info("scheduler stopped")
}

package app

import (
	"fmt"
	"time"

	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/logging"
	"github.com/cristianoliveira/leadnexus/internal/notification"
)

// AlertMatch is the outcome of one alert against a lead list.
type AlertMatch struct {
	Alert   Alert `json:"alert"`
	Matched int   `json:"matched"`
}

// AlertsUseCase evaluates stored alerts.
type AlertsUseCase struct {
	workspace *Workspace
	queue     *notification.Queue
	now       func() time.Time
}

// NewAlertsUseCase creates a new alerts use-case.
func NewAlertsUseCase(workspace *Workspace, queue *notification.Queue) *AlertsUseCase {
	if workspace == nil {
		panic("NewAlertsUseCase: workspace dependency cannot be nil")
	}
	if queue == nil {
		panic("NewAlertsUseCase: queue dependency cannot be nil")
	}
	return &AlertsUseCase{workspace: workspace, queue: queue, now: time.Now}
}

// Evaluate counts matches for every enabled alert that is due (or every
// enabled alert when force is set), enqueues an info notification for each
// alert with matches, and records the run time.
func (u *AlertsUseCase) Evaluate(records []domain.Record, force bool) ([]AlertMatch, error) {
	alerts, err := u.workspace.Alerts()
	if err != nil {
		return nil, err
	}
	now := u.now().UTC()
	matches := make([]AlertMatch, 0, len(alerts))
	for _, a := range alerts {
		if !a.Enabled || (!force && !a.Due(now)) {
			continue
		}
		matched := len(domain.Filter(records, a.Criteria))
		matches = append(matches, AlertMatch{Alert: a, Matched: matched})
		logging.Debug("alert evaluated", "alert", a.Name, "matched", matched)

		if matched > 0 {
			n := notification.Info(fmt.Sprintf("Alert %q", a.Name), fmt.Sprintf("%d matching leads", matched))
			if _, err := u.queue.Enqueue(n); err != nil {
				logging.Warn("enqueue notification failed", "error", err.Error())
			}
		}

		a.LastRunAt = now
		if err := u.workspace.UpdateAlert(a); err != nil {
			return matches, err
		}
	}
	return matches, nil
}

// Package retention owns the scheduled sweep of old activity rows. The
// cron instance is held by the manager so its lifetime is bounded by the
// process, not package state.
package retention

import (
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/nookplot/gateway/dao/model"
)

const defaultSpec = "0 3 * * *"

type Manager struct {
	db   *gorm.DB
	cron *cron.Cron
	days int
	spec string
}

// NewManager builds a sweeper keeping the most recent `days` of activity.
// days <= 0 disables sweeping.
func NewManager(db *gorm.DB, days int, spec string) *Manager {
	if spec == "" {
		spec = defaultSpec
	}
	return &Manager{
		db:   db,
		cron: cron.New(cron.WithLocation(time.Local)),
		days: days,
		spec: spec,
	}
}

func (m *Manager) Start() error {
	if m.days <= 0 {
		return nil
	}
	if _, err := m.cron.AddFunc(m.spec, m.sweep); err != nil {
		return err
	}
	m.cron.Start()
	return nil
}

func (m *Manager) Stop() {
	<-m.cron.Stop().Done()
}

func (m *Manager) sweep() {
	cutoff := time.Now().AddDate(0, 0, -m.days)
	res := m.db.Where("created_at < ?", cutoff).Delete(&model.ProjectActivity{})
	if res.Error != nil {
		klog.Errorf("activity retention sweep failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		klog.Infof("activity retention removed %d rows older than %s", res.RowsAffected, cutoff.Format(time.RFC3339))
	}
}

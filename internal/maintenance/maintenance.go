// Package maintenance runs periodic cleanup over the marketplace
// tables. Orders are only removed through their owner's delete, but a
// crash mid-cascade or a manual row delete can leave tab rows and
// interactions pointing at orders that no longer exist. The sweep
// removes those.
package maintenance

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/gigbridge/gigbridge/internal/models"
)

// Report counts the rows removed by one sweep.
type Report struct {
	OrphanedTabs         int64
	DanglingInteractions int64
}

// Total returns the number of rows removed.
func (r Report) Total() int64 {
	return r.OrphanedTabs + r.DanglingInteractions
}

// Sweep deletes tab rows and interactions whose referent is gone. Tab
// rows of kind "portfolio" point at portfolio projects; every other kind
// points at an order.
func Sweep(db *gorm.DB) (Report, error) {
	var report Report
	err := db.Transaction(func(tx *gorm.DB) error {
		orderIDs := tx.Model(&models.Order{}).Select("id")
		projectIDs := tx.Model(&models.PortfolioProject{}).Select("id")

		res := tx.Where("kind != ? AND project_id NOT IN (?)", models.TabPortfolio, orderIDs).
			Delete(&models.Tab{})
		if res.Error != nil {
			return fmt.Errorf("maintenance: delete orphaned tabs: %w", res.Error)
		}
		report.OrphanedTabs = res.RowsAffected

		res = tx.Where("kind = ? AND project_id NOT IN (?)", models.TabPortfolio, projectIDs).
			Delete(&models.Tab{})
		if res.Error != nil {
			return fmt.Errorf("maintenance: delete orphaned portfolio tabs: %w", res.Error)
		}
		report.OrphanedTabs += res.RowsAffected

		res = tx.Where("order_id NOT IN (?)", orderIDs).Delete(&models.Interaction{})
		if res.Error != nil {
			return fmt.Errorf("maintenance: delete dangling interactions: %w", res.Error)
		}
		report.DanglingInteractions = res.RowsAffected
		return nil
	})
	if err != nil {
		return Report{}, err
	}
	return report, nil
}

// Sweeper runs Sweep on a cron schedule.
type Sweeper struct {
	cron *cron.Cron
}

// StartSweeper schedules recurring sweeps. The schedule accepts
// standard 5-field cron expressions and descriptors like "@hourly".
func StartSweeper(db *gorm.DB, schedule string) (*Sweeper, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		report, err := Sweep(db)
		if err != nil {
			log.Printf("maintenance: sweep failed: %v", err)
			return
		}
		if report.Total() > 0 {
			log.Printf("maintenance: swept %d orphaned tabs, %d dangling interactions",
				report.OrphanedTabs, report.DanglingInteractions)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("maintenance: parse schedule %q: %w", schedule, err)
	}
	c.Start()
	return &Sweeper{cron: c}, nil
}

// Stop halts the schedule. A sweep already in flight finishes.
func (s *Sweeper) Stop() {
	s.cron.Stop()
}

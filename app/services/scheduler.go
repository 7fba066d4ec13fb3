package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Sourabh6826/school-erp/app/config"
	"github.com/Sourabh6826/school-erp/app/database"
	"github.com/Sourabh6826/school-erp/app/utils/email"
)

// StartScheduler runs the daily jobs: the 8 PM collection summary mail and a
// nightly auto-match of imported bank statement entries.
func StartScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("0 20 * * *", SendDailyCollectionSummary); err != nil {
		logrus.WithError(err).Error("Failed to schedule daily collection summary")
	}
	if _, err := c.AddFunc("30 22 * * *", func() {
		if _, err := database.AutoMatchBankEntries(config.GetDB()); err != nil {
			logrus.WithError(err).Error("Nightly bank auto-match failed")
		}
	}); err != nil {
		logrus.WithError(err).Error("Failed to schedule nightly bank auto-match")
	}

	c.Start()
	logrus.Info("Scheduler started")
	return c
}

// SendDailyCollectionSummary mails the day's collection totals to the
// configured report address.
func SendDailyCollectionSummary() {
	stats, err := database.GetDashboardStats(config.GetDB(), "")
	if err != nil {
		logrus.WithError(err).Error("Failed to compute daily collection summary")
		return
	}

	today := time.Now().Format("02 Jan 2006")
	subject := fmt.Sprintf("Fee collection summary for %s", today)
	body := fmt.Sprintf(
		"Collection summary for %s\n\n"+
			"Collected today: %.2f\n"+
			"Collected this session: %.2f\n"+
			"Receipts issued so far: %d\n"+
			"Active students: %d of %d\n"+
			"Unreconciled bank entries: %d\n",
		today, stats.CollectedToday, stats.CollectedSession, stats.ReceiptCount,
		stats.ActiveStudents, stats.TotalStudents, stats.UnreconciledEntries,
	)

	if err := email.Send(subject, body); err != nil {
		logrus.WithError(err).Error("Failed to send daily collection summary")
		return
	}
	logrus.Infof("Daily collection summary sent: %.2f collected today", stats.CollectedToday)
}

package background

import (
	"context"
	"log"
	"time"

	"beanmart/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the recurring maintenance jobs
type JobScheduler struct {
	scheduler   gocron.Scheduler
	lowStockSvc *jobs.LowStockAlertService
	auditSvc    *jobs.LedgerAuditService
	jobHandles  map[string]gocron.Job
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(lowStockSvc *jobs.LowStockAlertService, auditSvc *jobs.LedgerAuditService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		lowStockSvc: lowStockSvc,
		auditSvc:    auditSvc,
		jobHandles:  make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	lowStockJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.processLowStockAlerts),
		gocron.WithName("low-stock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create low stock alerts job: %v", err)
	} else {
		js.jobHandles["low-stock-alerts"] = lowStockJob
	}

	auditJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.runLedgerAudit),
		gocron.WithName("ledger-audit"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create ledger audit job: %v", err)
	} else {
		js.jobHandles["ledger-audit"] = auditJob
	}

	log.Printf("Registered %d background jobs", len(js.jobHandles))
}

// processLowStockAlerts checks for low stock and logs alerts
func (js *JobScheduler) processLowStockAlerts() error {
	ctx := context.Background()

	alerts, err := js.lowStockSvc.CheckLowStock(ctx, 10)
	if err != nil {
		return err
	}
	js.lowStockSvc.LogLowStockAlerts(alerts)
	return nil
}

// runLedgerAudit reconciles item quantities against recorded stock changes
func (js *JobScheduler) runLedgerAudit() error {
	ctx := context.Background()

	reports, err := js.auditSvc.Audit(ctx)
	if err != nil {
		return err
	}
	js.auditSvc.LogAuditReports(reports)
	return nil
}

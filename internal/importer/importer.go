package importer

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
)

// Notifier dispatches the post-import bulk welcome email. Implemented by the
// notification HTTP client; failures are best-effort and never fail a run.
type Notifier interface {
	SendBulkWelcomeEmails(ctx context.Context, customers []models.Customer) error
}

// Service runs bulk spreadsheet imports against the entity stores.
type Service struct {
	products  repository.ProductStore
	customers repository.CustomerStore
	vehicles  repository.VehicleStore
	sales     repository.SaleStore
	notifier  Notifier
	log       *logrus.Logger
}

func NewService(
	products repository.ProductStore,
	customers repository.CustomerStore,
	vehicles repository.VehicleStore,
	sales repository.SaleStore,
	notifier Notifier,
	log *logrus.Logger,
) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{
		products:  products,
		customers: customers,
		vehicles:  vehicles,
		sales:     sales,
		notifier:  notifier,
		log:       log,
	}
}

// Import processes a whole workbook and always returns a complete result:
// nothing raised during row processing escapes this call. The only early
// abort is the structural check before the loop starts. There is no
// transaction around the file; rows persisted before a later failure stay
// persisted. Cancellation is honored between rows, never within one.
func (s *Service) Import(ctx context.Context, r io.Reader) *models.ImportResult {
	result := &models.ImportResult{}

	sheet, err := OpenSheet(r)
	if err != nil {
		result.AddError(0, "General", err.Error(), "")
		return result
	}

	fields := ResolveFields(sheet.Labels())
	dataType := Classify(fields)
	s.log.WithFields(logrus.Fields{
		"dataType": dataType.String(),
		"rows":     sheet.RowCount(),
		"columns":  len(sheet.Labels()),
	}).Info("starting bulk import")

	run, err := s.newRun(fields, result)
	if err != nil {
		result.AddError(0, "General", err.Error(), "")
		return result
	}

	result.TotalRows = sheet.RowCount()
	for i := 0; i < sheet.RowCount(); i++ {
		select {
		case <-ctx.Done():
			result.AddError(0, "General", "import cancelled: "+ctx.Err().Error(), "")
			s.finish(ctx, run, result)
			return result
		default:
		}

		row := sheet.Row(i)
		if row.IsEmpty() {
			continue
		}
		rowNum := i + 2 // 1-based spreadsheet row after the header

		errsBefore := len(result.Errors)
		if err := run.dispatch(dataType, rowNum, row); err != nil {
			result.FailedRows++
			result.AddError(rowNum, "General", err.Error(), row.Dump())
			s.log.WithFields(logrus.Fields{"row": rowNum}).WithError(err).Warn("import row failed")
		} else if len(result.Errors) > errsBefore {
			// Self-reporting processors appended their own field errors.
			result.FailedRows++
		} else {
			result.SuccessfulRows++
		}
	}

	s.finish(ctx, run, result)
	return result
}

// finish fires the best-effort bulk welcome notification and logs the run
// summary.
func (s *Service) finish(ctx context.Context, run *run, result *models.ImportResult) {
	if len(run.newCustomers) > 0 && s.notifier != nil {
		// Customers created before a cancellation still get their welcome
		// email, so the dispatch runs on its own deadline, detached from the
		// import context.
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
		defer cancel()

		sent := true
		if err := s.notifier.SendBulkWelcomeEmails(nctx, run.newCustomers); err != nil {
			sent = false
			s.log.WithError(err).Warn("failed to send bulk welcome emails")
		}
		result.NotificationSent = &sent
	}

	s.log.WithFields(logrus.Fields{
		"totalRows":      result.TotalRows,
		"successfulRows": result.SuccessfulRows,
		"failedRows":     result.FailedRows,
		"errors":         len(result.Errors),
	}).Info(result.Summary())
}

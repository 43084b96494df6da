package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engagement_app/internal/utils/listing"
	"github.com/SscSPs/tax_engagement_app/internal/utils/pagination"
	"github.com/SscSPs/tax_engagement_app/internal/utils/reconciliation"
)

// Aggregate names reported in ViewMeta.Degraded.
const (
	aggregateExperts     = "experts"
	aggregateAssignments = "assignments"
	aggregateTasks       = "tasks"
	aggregatePayments    = "payments"
	aggregateInvoices    = "invoices"
	aggregateClients     = "clients"
	aggregateActivity    = "activity"
)

const (
	recentPaymentsLimit = 10
	recentActivityLimit = 10
)

type viewService struct {
	BaseService
	clientRepo     portsrepo.ClientReader
	expertRepo     portsrepo.ExpertReader
	assignmentRepo portsrepo.AssignmentReader
	taskRepo       portsrepo.TaskReader
	invoiceRepo    portsrepo.InvoiceReader
	paymentRepo    portsrepo.PaymentReader
	aggregator     *reconciliation.Aggregator
	pageSize       int
}

// NewViewService creates the view assembler. pageSize <= 0 uses pagination.DefaultPageSize.
func NewViewService(repos portsrepo.RepositoryProvider, aggregator *reconciliation.Aggregator, pageSize int, options ...ServiceOption) portssvc.ViewSvc {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	svc := &viewService{
		clientRepo:     repos.ClientRepo,
		expertRepo:     repos.ExpertRepo,
		assignmentRepo: repos.AssignmentRepo,
		taskRepo:       repos.TaskRepo,
		invoiceRepo:    repos.InvoiceRepo,
		paymentRepo:    repos.PaymentRepo,
		aggregator:     aggregator,
		pageSize:       pageSize,
	}
	svc.apply(options)
	return svc
}

var _ portssvc.ViewSvc = (*viewService)(nil)

// expertAssignments is the relationship phase of every expert-scoped view. It
// returns all of the expert's assignments and the active subset.
func (s *viewService) expertAssignments(ctx context.Context, expertID string) (all, active []domain.Assignment, err error) {
	assignments, err := s.assignmentRepo.ListAssignmentsByExpert(ctx, expertID, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch expert assignments", slog.String("expert_id", expertID))
		return nil, nil, err
	}
	all = reconciliation.ScopeToExpert(assignments, expertID, true)
	active = reconciliation.ScopeToExpert(all, expertID, false)
	return all, active, nil
}

// invariantWarnings checks tasks against assignments and logs each violation.
func (s *viewService) invariantWarnings(ctx context.Context, tasks []domain.Task, assignments []domain.Assignment) []string {
	violations := reconciliation.FindOrphanTasks(tasks, assignments)
	warnings := make([]string, 0, len(violations))
	for _, v := range violations {
		s.LogWarn(ctx, "Data invariant violated",
			slog.String("kind", v.Kind),
			slog.String("client_id", v.ClientID),
			slog.String("expert_id", v.ExpertID),
			slog.String("detail", v.Detail))
		warnings = append(warnings, v.Error())
	}
	return warnings
}

// currencyWarning explains that per-row money columns are in one currency only.
func (s *viewService) currencyWarning(agg *reconciliation.Aggregator, payments []domain.Payment, currency string) []string {
	_, err := agg.Sum(payments, domain.WindowAllTime, s.Now())
	var mixed *apperrors.MixedCurrencyError
	if errors.As(err, &mixed) {
		return []string{fmt.Sprintf("%s; money columns show %s amounts only", mixed.Error(), currency)}
	}
	return nil
}

func assignmentsOf(details []domain.AssignmentDetail) []domain.Assignment {
	out := make([]domain.Assignment, 0, len(details))
	for _, d := range details {
		out = append(out, d.Assignment)
	}
	return out
}

// expertClientRows builds the expert portal rows for the clients the expert actively works.
func (s *viewService) expertClientRows(agg *reconciliation.Aggregator, expertID string, clients []domain.Client, active []domain.Assignment,
	details []domain.AssignmentDetail, tasks []domain.Task, payments []domain.Payment, invoices []domain.Invoice,
) ([]domain.ExpertClientRow, string) {
	now := s.Now()
	currency := agg.HeadlineCurrency(payments, invoices)
	earned := agg.TotalsByClient(payments, currency)
	pending := agg.PendingByClient(invoices, currency, now)
	progress := reconciliation.ProgressByPair(tasks)
	jurisdictions := reconciliation.JurisdictionsByClient(active)
	experts := reconciliation.GroupExpertsByClient(details, expertID, false)

	rows := make([]domain.ExpertClientRow, 0, len(clients))
	for _, c := range clients {
		if _, ok := jurisdictions[c.ClientID]; !ok {
			continue
		}
		clientExperts := experts[c.ClientID]
		if clientExperts == nil {
			clientExperts = []domain.ClientExpert{}
		}
		row := domain.NewExpertClientRow(c, clientExperts)
		row.Jurisdictions = jurisdictions[c.ClientID]
		row.Progress = progress[domain.PairKey{ClientID: c.ClientID, ExpertID: expertID}]
		row.Earned = earned[c.ClientID]
		row.Pending = pending[c.ClientID]
		rows = append(rows, row)
	}
	return rows, currency
}

func (s *viewService) ExpertClientList(ctx context.Context, expertID string, query domain.ClientListQuery) (*domain.ExpertClientListView, error) {
	all, active, err := s.expertAssignments(ctx, expertID)
	if err != nil {
		return nil, err
	}
	clientIDs := reconciliation.ClientIDs(active)

	var (
		clients  []domain.Client
		details  []domain.AssignmentDetail
		tasks    []domain.Task
		payments []domain.Payment
		invoices []domain.Invoice
	)
	f := newViewFetcher(ctx, &s.BaseService)
	if len(clientIDs) > 0 {
		f.require(func(ctx context.Context) error {
			res, err := s.clientRepo.FindClientsByIDs(ctx, clientIDs)
			if err != nil {
				return fmt.Errorf("fetch clients: %w", err)
			}
			clients = res
			return nil
		})
		f.aggregate(aggregateExperts, func(ctx context.Context) error {
			res, err := s.assignmentRepo.ListAssignmentDetailsByClientIDs(ctx, clientIDs)
			if err != nil {
				return err
			}
			details = res
			return nil
		})
	}
	f.aggregate(aggregateTasks, func(ctx context.Context) error {
		res, err := s.taskRepo.ListTasksByExpert(ctx, expertID)
		if err != nil {
			return err
		}
		tasks = res
		return nil
	})
	f.aggregate(aggregatePayments, func(ctx context.Context) error {
		res, err := s.paymentRepo.ListPaymentsByExpert(ctx, expertID)
		if err != nil {
			return err
		}
		payments = res
		return nil
	})
	f.aggregate(aggregateInvoices, func(ctx context.Context) error {
		res, err := s.invoiceRepo.ListInvoicesByExpert(ctx, expertID)
		if err != nil {
			return err
		}
		invoices = res
		return nil
	})
	if err := f.wait(); err != nil {
		s.LogError(ctx, err, "Failed to assemble expert client list", slog.String("expert_id", expertID))
		return nil, err
	}

	meta := f.meta()
	if !f.failed(aggregateTasks) {
		meta.Warnings = append(meta.Warnings, s.invariantWarnings(ctx, tasks, all)...)
	}

	agg := forViewer(ctx, s.aggregator)
	rows, currency := s.expertClientRows(agg, expertID, clients, active, details, tasks, payments, invoices)
	meta.Warnings = append(meta.Warnings, s.currencyWarning(agg, payments, currency)...)

	rows = listing.FilterClients(rows, query.Filter)
	listing.Sort(rows, query.Sort)
	token := pagination.ClientFilterFingerprint(query.Filter)
	page := pagination.ResolvePage(query.Page, query.FilterToken, token)

	return &domain.ExpertClientListView{
		Page:     pagination.Paginate(rows, page, s.pageSize, token),
		ViewMeta: meta,
	}, nil
}

func (s *viewService) ExpertDashboard(ctx context.Context, expertID string) (*domain.ExpertDashboardView, error) {
	all, active, err := s.expertAssignments(ctx, expertID)
	if err != nil {
		return nil, err
	}

	var (
		tasks    []domain.Task
		payments []domain.Payment
		invoices []domain.Invoice
	)
	f := newViewFetcher(ctx, &s.BaseService)
	f.aggregate(aggregateTasks, func(ctx context.Context) error {
		res, err := s.taskRepo.ListTasksByExpert(ctx, expertID)
		if err != nil {
			return err
		}
		tasks = res
		return nil
	})
	f.aggregate(aggregatePayments, func(ctx context.Context) error {
		res, err := s.paymentRepo.ListPaymentsByExpert(ctx, expertID)
		if err != nil {
			return err
		}
		payments = res
		return nil
	})
	f.aggregate(aggregateInvoices, func(ctx context.Context) error {
		res, err := s.invoiceRepo.ListInvoicesByExpert(ctx, expertID)
		if err != nil {
			return err
		}
		invoices = res
		return nil
	})
	if err := f.wait(); err != nil {
		return nil, err
	}

	meta := f.meta()
	if !f.failed(aggregateTasks) {
		meta.Warnings = append(meta.Warnings, s.invariantWarnings(ctx, tasks, all)...)
	}

	return &domain.ExpertDashboardView{
		ExpertID:      expertID,
		ActiveClients: len(reconciliation.ClientIDs(active)),
		OpenTasks:     reconciliation.CountOpenTasks(tasks),
		Earnings:      forViewer(ctx, s.aggregator).Summarize(payments, invoices, s.Now()),
		ViewMeta:      meta,
	}, nil
}

func (s *viewService) AdminClientList(ctx context.Context, query domain.ClientListQuery) (*domain.AdminClientListView, error) {
	clients, err := s.clientRepo.ListClients(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, err
	}

	var (
		details  []domain.AssignmentDetail
		tasks    []domain.Task
		payments []domain.Payment
		invoices []domain.Invoice
	)
	f := newViewFetcher(ctx, &s.BaseService)
	f.aggregate(aggregateAssignments, func(ctx context.Context) error {
		res, err := s.assignmentRepo.ListAllAssignmentDetails(ctx)
		if err != nil {
			return err
		}
		details = res
		return nil
	})
	f.aggregate(aggregateTasks, func(ctx context.Context) error {
		res, err := s.taskRepo.ListAllTasks(ctx)
		if err != nil {
			return err
		}
		tasks = res
		return nil
	})
	f.aggregate(aggregatePayments, func(ctx context.Context) error {
		res, err := s.paymentRepo.ListAllPayments(ctx)
		if err != nil {
			return err
		}
		payments = res
		return nil
	})
	f.aggregate(aggregateInvoices, func(ctx context.Context) error {
		res, err := s.invoiceRepo.ListPendingInvoices(ctx)
		if err != nil {
			return err
		}
		invoices = res
		return nil
	})
	if err := f.wait(); err != nil {
		return nil, err
	}

	meta := f.meta()
	if !f.failed(aggregateTasks, aggregateAssignments) {
		meta.Warnings = append(meta.Warnings, s.invariantWarnings(ctx, tasks, assignmentsOf(details))...)
	}

	now := s.Now()
	agg := forViewer(ctx, s.aggregator)
	currency := agg.HeadlineCurrency(payments, invoices)
	meta.Warnings = append(meta.Warnings, s.currencyWarning(agg, payments, currency)...)
	revenue := agg.TotalsByClient(payments, currency)
	pending := agg.PendingByClient(invoices, currency, now)
	progress := reconciliation.ProgressByClient(tasks)
	experts := reconciliation.GroupExpertsByClient(details, "", false)

	rows := make([]domain.AdminClientRow, 0, len(clients))
	for _, c := range clients {
		clientExperts := experts[c.ClientID]
		if clientExperts == nil {
			clientExperts = []domain.ClientExpert{}
		}
		row := domain.NewAdminClientRow(c, clientExperts)
		row.Revenue = revenue[c.ClientID]
		row.Pending = pending[c.ClientID]
		row.Progress = progress[c.ClientID]
		rows = append(rows, row)
	}

	rows = listing.FilterClients(rows, query.Filter)
	listing.Sort(rows, query.Sort)
	token := pagination.ClientFilterFingerprint(query.Filter)
	page := pagination.ResolvePage(query.Page, query.FilterToken, token)

	return &domain.AdminClientListView{
		Page:     pagination.Paginate(rows, page, s.pageSize, token),
		Funnel:   reconciliation.BucketByStage(clients),
		ViewMeta: meta,
	}, nil
}

func (s *viewService) AdminExpertList(ctx context.Context, query domain.ExpertListQuery) (*domain.AdminExpertListView, error) {
	experts, err := s.expertRepo.ListExperts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list experts")
		return nil, err
	}

	var (
		details  []domain.AssignmentDetail
		payments []domain.Payment
		invoices []domain.Invoice
	)
	f := newViewFetcher(ctx, &s.BaseService)
	f.aggregate(aggregateAssignments, func(ctx context.Context) error {
		res, err := s.assignmentRepo.ListAllAssignmentDetails(ctx)
		if err != nil {
			return err
		}
		details = res
		return nil
	})
	f.aggregate(aggregatePayments, func(ctx context.Context) error {
		res, err := s.paymentRepo.ListAllPayments(ctx)
		if err != nil {
			return err
		}
		payments = res
		return nil
	})
	f.aggregate(aggregateInvoices, func(ctx context.Context) error {
		res, err := s.invoiceRepo.ListPendingInvoices(ctx)
		if err != nil {
			return err
		}
		invoices = res
		return nil
	})
	if err := f.wait(); err != nil {
		return nil, err
	}
	meta := f.meta()

	activeClients := make(map[string]map[string]bool)
	for _, d := range details {
		if !d.IsActive() {
			continue
		}
		if activeClients[d.ExpertID] == nil {
			activeClients[d.ExpertID] = make(map[string]bool)
		}
		activeClients[d.ExpertID][d.ClientID] = true
	}
	paymentsByExpert := make(map[string][]domain.Payment)
	for _, p := range payments {
		paymentsByExpert[p.ExpertID] = append(paymentsByExpert[p.ExpertID], p)
	}
	invoicesByExpert := make(map[string][]domain.Invoice)
	for _, inv := range invoices {
		invoicesByExpert[inv.ExpertID] = append(invoicesByExpert[inv.ExpertID], inv)
	}

	now := s.Now()
	agg := forViewer(ctx, s.aggregator)
	rows := make([]domain.AdminExpertRow, 0, len(experts))
	for _, e := range experts {
		summary := agg.Summarize(paymentsByExpert[e.ExpertID], invoicesByExpert[e.ExpertID], now)
		if summary.MixedCurrency() {
			meta.Warnings = append(meta.Warnings, fmt.Sprintf("expert %s: %s", e.ExpertID, summary.Warnings[0]))
		}
		rows = append(rows, domain.AdminExpertRow{
			Expert:        e,
			ActiveClients: len(activeClients[e.ExpertID]),
			Currency:      summary.Currency,
			AllTime:       summary.AllTime,
			QuarterToDate: summary.QuarterToDate,
			MonthToDate:   summary.MonthToDate,
			Pending:       summary.Pending,
		})
	}

	rows = listing.FilterExperts(rows, query.Filter)
	listing.Sort(rows, query.Sort)
	token := pagination.ExpertFilterFingerprint(query.Filter)
	page := pagination.ResolvePage(query.Page, query.FilterToken, token)

	return &domain.AdminExpertListView{
		Page:     pagination.Paginate(rows, page, s.pageSize, token),
		ViewMeta: meta,
	}, nil
}

func (s *viewService) AdminExpertDetail(ctx context.Context, expertID string) (*domain.ExpertDetailView, error) {
	var (
		expert      *domain.Expert
		all, active []domain.Assignment
	)
	phase1 := newViewFetcher(ctx, &s.BaseService)
	phase1.require(func(ctx context.Context) error {
		res, err := s.expertRepo.FindExpertByID(ctx, expertID)
		if err != nil {
			return err
		}
		expert = res
		return nil
	})
	phase1.require(func(ctx context.Context) error {
		var err error
		all, active, err = s.expertAssignments(ctx, expertID)
		return err
	})
	if err := phase1.wait(); err != nil {
		return nil, err
	}
	clientIDs := reconciliation.ClientIDs(active)

	var (
		clients  []domain.Client
		details  []domain.AssignmentDetail
		tasks    []domain.Task
		payments []domain.Payment
		invoices []domain.Invoice
		activity []domain.ActivityLogEntry
	)
	f := newViewFetcher(ctx, &s.BaseService)
	if len(clientIDs) > 0 {
		f.aggregate(aggregateClients, func(ctx context.Context) error {
			res, err := s.clientRepo.FindClientsByIDs(ctx, clientIDs)
			if err != nil {
				return err
			}
			clients = res
			return nil
		})
		f.aggregate(aggregateExperts, func(ctx context.Context) error {
			res, err := s.assignmentRepo.ListAssignmentDetailsByClientIDs(ctx, clientIDs)
			if err != nil {
				return err
			}
			details = res
			return nil
		})
	}
	f.aggregate(aggregateTasks, func(ctx context.Context) error {
		res, err := s.taskRepo.ListTasksByExpert(ctx, expertID)
		if err != nil {
			return err
		}
		tasks = res
		return nil
	})
	f.aggregate(aggregatePayments, func(ctx context.Context) error {
		res, err := s.paymentRepo.ListPaymentsByExpert(ctx, expertID)
		if err != nil {
			return err
		}
		payments = res
		return nil
	})
	f.aggregate(aggregateInvoices, func(ctx context.Context) error {
		res, err := s.invoiceRepo.ListInvoicesByExpert(ctx, expertID)
		if err != nil {
			return err
		}
		invoices = res
		return nil
	})
	if s.Activity != nil {
		f.aggregate(aggregateActivity, func(ctx context.Context) error {
			res, _, err := s.Activity.ListActivity(ctx, domain.ActivityFilter{ExpertID: expertID}, recentActivityLimit, nil)
			if err != nil {
				return err
			}
			activity = res
			return nil
		})
	}
	if err := f.wait(); err != nil {
		return nil, err
	}

	meta := f.meta()
	if !f.failed(aggregateTasks) {
		meta.Warnings = append(meta.Warnings, s.invariantWarnings(ctx, tasks, all)...)
	}

	agg := forViewer(ctx, s.aggregator)
	rows, _ := s.expertClientRows(agg, expertID, clients, active, details, tasks, payments, invoices)
	listing.Sort(rows, domain.SortSpec{Field: domain.SortByName, Direction: domain.SortAsc})

	recent := payments
	if len(recent) > recentPaymentsLimit {
		recent = recent[:recentPaymentsLimit]
	}
	if recent == nil {
		recent = []domain.Payment{}
	}
	if activity == nil {
		activity = []domain.ActivityLogEntry{}
	}

	return &domain.ExpertDetailView{
		Expert:         *expert,
		Clients:        rows,
		Earnings:       agg.Summarize(payments, invoices, s.Now()),
		RecentPayments: recent,
		RecentActivity: activity,
		ViewMeta:       meta,
	}, nil
}

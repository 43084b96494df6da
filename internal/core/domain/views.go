package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SortField names the columns list views can be ordered by.
type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "createdAt"
	SortByRevenue   SortField = "revenue"
)

// ParseSortField parses a sort column; empty defaults to name.
func ParseSortField(s string) (SortField, error) {
	switch strings.TrimSpace(s) {
	case "", string(SortByName):
		return SortByName, nil
	case string(SortByCreatedAt):
		return SortByCreatedAt, nil
	case string(SortByRevenue):
		return SortByRevenue, nil
	}
	return "", fmt.Errorf("%w: sort field %q", ErrUnknownEnumValue, s)
}

// SortDirection is ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection parses a direction; empty defaults to ascending.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(SortAsc):
		return SortAsc, nil
	case string(SortDesc):
		return SortDesc, nil
	}
	return "", fmt.Errorf("%w: sort direction %q", ErrUnknownEnumValue, s)
}

// SortSpec orders a list view.
type SortSpec struct {
	Field     SortField
	Direction SortDirection
}

// ClientFilter narrows client lists. All non-empty fields must match.
type ClientFilter struct {
	Search     string
	Status     string
	Country    string
	Complexity Complexity
	ExpertID   string
}

// ExpertFilter narrows the admin expert list. All non-empty fields must match.
type ExpertFilter struct {
	Search       string
	Status       ExpertStatus
	Jurisdiction string
}

// ClientListQuery is the full request for a client list view.
// FilterToken is the token returned with the page the caller is currently
// showing; when it no longer matches Filter the page is reset to 1.
type ClientListQuery struct {
	Filter      ClientFilter
	Sort        SortSpec
	Page        int
	FilterToken string
}

// ExpertListQuery is the full request for the admin expert list.
type ExpertListQuery struct {
	Filter      ExpertFilter
	Sort        SortSpec
	Page        int
	FilterToken string
}

// Page is one fixed-size page of a list view.
type Page[T any] struct {
	Items       []T    `json:"items"`
	Page        int    `json:"page"`
	PageSize    int    `json:"pageSize"`
	TotalItems  int    `json:"totalItems"`
	TotalPages  int    `json:"totalPages"`
	FilterToken string `json:"filterToken"`
}

// ViewMeta carries the non-fatal problems met while assembling a view.
// Degraded lists the aggregates that fell back to empty after a failed fetch.
type ViewMeta struct {
	Warnings []string `json:"warnings,omitempty"`
	Degraded []string `json:"degraded,omitempty"`
}

// ExpertClientRow is a client as listed in the expert portal.
type ExpertClientRow struct {
	Client        Client          `json:"client"`
	Jurisdictions []string        `json:"jurisdictions"` // viewer's active assignment jurisdictions
	Progress      int             `json:"progress"`
	Experts       []ClientExpert  `json:"experts"`
	Earned        decimal.Decimal `json:"earned"`
	Pending       decimal.Decimal `json:"pending"`
	expertIDs     []string
}

// NewExpertClientRow builds a row and remembers which experts work the client.
func NewExpertClientRow(client Client, experts []ClientExpert) ExpertClientRow {
	row := ExpertClientRow{Client: client, Experts: experts}
	for _, e := range experts {
		row.expertIDs = append(row.expertIDs, e.ExpertID)
	}
	return row
}

func (r ExpertClientRow) ListedClient() Client         { return r.Client }
func (r ExpertClientRow) ListedExpertIDs() []string    { return r.expertIDs }
func (r ExpertClientRow) SortName() string             { return r.Client.Name }
func (r ExpertClientRow) SortCreatedAt() time.Time     { return r.Client.CreatedAt }
func (r ExpertClientRow) SortRevenue() decimal.Decimal { return r.Earned }

// AdminClientRow is a client as listed in the admin console.
type AdminClientRow struct {
	Client    Client          `json:"client"`
	Experts   []ClientExpert  `json:"experts"`
	Revenue   decimal.Decimal `json:"revenue"`
	Pending   decimal.Decimal `json:"pending"`
	Progress  int             `json:"progress"`
	expertIDs []string
}

// NewAdminClientRow builds a row and remembers which experts work the client.
func NewAdminClientRow(client Client, experts []ClientExpert) AdminClientRow {
	row := AdminClientRow{Client: client, Experts: experts}
	for _, e := range experts {
		row.expertIDs = append(row.expertIDs, e.ExpertID)
	}
	return row
}

func (r AdminClientRow) ListedClient() Client         { return r.Client }
func (r AdminClientRow) ListedExpertIDs() []string    { return r.expertIDs }
func (r AdminClientRow) SortName() string             { return r.Client.Name }
func (r AdminClientRow) SortCreatedAt() time.Time     { return r.Client.CreatedAt }
func (r AdminClientRow) SortRevenue() decimal.Decimal { return r.Revenue }

// AdminExpertRow is an expert as listed in the admin console.
type AdminExpertRow struct {
	Expert        Expert          `json:"expert"`
	ActiveClients int             `json:"activeClients"`
	Currency      string          `json:"currency"`
	AllTime       decimal.Decimal `json:"allTime"`
	QuarterToDate decimal.Decimal `json:"quarterToDate"`
	MonthToDate   decimal.Decimal `json:"monthToDate"`
	Pending       decimal.Decimal `json:"pending"`
}

func (r AdminExpertRow) SortName() string             { return r.Expert.Name }
func (r AdminExpertRow) SortCreatedAt() time.Time     { return r.Expert.CreatedAt }
func (r AdminExpertRow) SortRevenue() decimal.Decimal { return r.AllTime }

// ExpertClientListView is the expert portal's client list.
type ExpertClientListView struct {
	Page[ExpertClientRow]
	ViewMeta
}

// AdminClientListView is the admin console's client list with its funnel.
type AdminClientListView struct {
	Page[AdminClientRow]
	Funnel FunnelReport `json:"funnel"`
	ViewMeta
}

// AdminExpertListView is the admin console's expert list.
type AdminExpertListView struct {
	Page[AdminExpertRow]
	ViewMeta
}

// ExpertDetailView is the admin drill-down for one expert.
type ExpertDetailView struct {
	Expert         Expert             `json:"expert"`
	Clients        []ExpertClientRow  `json:"clients"`
	Earnings       EarningsSummary    `json:"earnings"`
	RecentPayments []Payment          `json:"recentPayments"`
	RecentActivity []ActivityLogEntry `json:"recentActivity"`
	ViewMeta
}

// ExpertDashboardView is the expert portal landing summary.
type ExpertDashboardView struct {
	ExpertID      string          `json:"expertID"`
	ActiveClients int             `json:"activeClients"`
	OpenTasks     int             `json:"openTasks"`
	Earnings      EarningsSummary `json:"earnings"`
	ViewMeta
}

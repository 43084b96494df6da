package dto

import (
	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
)

// ListClientsParams are the query parameters of the client list views.
type ListClientsParams struct {
	Search      string `form:"search"`
	Status      string `form:"status"`
	Country     string `form:"country"`
	Complexity  string `form:"complexity"`
	ExpertID    string `form:"expertID"`
	Sort        string `form:"sort"`
	Direction   string `form:"direction"`
	Page        int    `form:"page"`
	FilterToken string `form:"filterToken"`
}

func parseSort(field, direction string) (domain.SortSpec, error) {
	f, err := domain.ParseSortField(field)
	if err != nil {
		return domain.SortSpec{}, apperrors.NewValidationError("sort", err.Error())
	}
	d, err := domain.ParseSortDirection(direction)
	if err != nil {
		return domain.SortSpec{}, apperrors.NewValidationError("direction", err.Error())
	}
	return domain.SortSpec{Field: f, Direction: d}, nil
}

// ToQuery converts the parameters into a client list query.
func (p ListClientsParams) ToQuery() (domain.ClientListQuery, error) {
	sort, err := parseSort(p.Sort, p.Direction)
	if err != nil {
		return domain.ClientListQuery{}, err
	}
	filter := domain.ClientFilter{
		Search:   p.Search,
		Status:   p.Status,
		Country:  p.Country,
		ExpertID: p.ExpertID,
	}
	if p.Complexity != "" {
		c, err := domain.ParseComplexity(p.Complexity)
		if err != nil {
			return domain.ClientListQuery{}, apperrors.NewValidationError("complexity", err.Error())
		}
		filter.Complexity = c
	}
	return domain.ClientListQuery{Filter: filter, Sort: sort, Page: p.Page, FilterToken: p.FilterToken}, nil
}

// ListExpertsParams are the query parameters of the admin expert list.
type ListExpertsParams struct {
	Search       string `form:"search"`
	Status       string `form:"status"`
	Jurisdiction string `form:"jurisdiction"`
	Sort         string `form:"sort"`
	Direction    string `form:"direction"`
	Page         int    `form:"page"`
	FilterToken  string `form:"filterToken"`
}

// ToQuery converts the parameters into an expert list query.
func (p ListExpertsParams) ToQuery() (domain.ExpertListQuery, error) {
	sort, err := parseSort(p.Sort, p.Direction)
	if err != nil {
		return domain.ExpertListQuery{}, err
	}
	filter := domain.ExpertFilter{Search: p.Search, Jurisdiction: p.Jurisdiction}
	if p.Status != "" {
		s, err := domain.ParseExpertStatus(p.Status)
		if err != nil {
			return domain.ExpertListQuery{}, apperrors.NewValidationError("status", err.Error())
		}
		filter.Status = s
	}
	return domain.ExpertListQuery{Filter: filter, Sort: sort, Page: p.Page, FilterToken: p.FilterToken}, nil
}

// ListMyAssignmentsParams are the query parameters of the expert's own assignment list.
type ListMyAssignmentsParams struct {
	IncludeInactive bool `form:"includeInactive"`
}

// ListActivityParams are the query parameters of the activity feed.
type ListActivityParams struct {
	ExpertID  string  `form:"expertID"`
	ClientID  string  `form:"clientID"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}


package dto

import "github.com/SscSPs/ledger_engine/internal/core/domain"

// UpsertOrganizationRequest creates or updates an organization keyed on its code.
// It is also the record format of the organization seed file.
type UpsertOrganizationRequest struct {
	Code       string          `json:"code" yaml:"code" binding:"required"`
	Name       string          `json:"name" yaml:"name"`
	ParentCode *string         `json:"parent_code" yaml:"parent_code"`
	Currency   string          `json:"currency" yaml:"currency" binding:"omitempty,iso_currency"`
	Metadata   domain.Metadata `json:"metadata" yaml:"metadata"`
}

// ListOrganizationsParams defines query parameters for listing organizations.
type ListOrganizationsParams struct {
	Flat bool `form:"flat"`
}

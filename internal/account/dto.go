package account

import "orderdesk/internal/dto"

type UpdateTaxRequest struct {
	GSTEnabled *bool      `json:"gstEnabled"`
	GSTRate    *dto.Money `json:"gstRate"`
}

type TaxSettingsResponse struct {
	GSTEnabled bool      `json:"gstEnabled"`
	GSTRate    dto.Money `json:"gstRate"`
}

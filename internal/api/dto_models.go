package api

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MarkedResponse reports the local "marked as donated" flag for a fundraiser.
type MarkedResponse struct {
	FundraiserID string `json:"fundraiserId"`
	Marked       bool   `json:"marked"`
}

// AddressResponse is the reverse geocoding result for a coordinate.
type AddressResponse struct {
	Address string `json:"address"`
}

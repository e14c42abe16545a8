package domain

import "fmt"

// APIError é o envelope de erro retornado pela API do Google Ads
type APIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (e *APIError) String() string {
	return fmt.Sprintf("%s (%d): %s", e.Error.Status, e.Error.Code, e.Error.Message)
}

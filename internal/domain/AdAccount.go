package domain

type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "ACTIVE"
	AdAccountStatusInactive AdAccountStatus = "INACTIVE"
)

// AdAccount representa uma conta de anúncios gerenciada sob a MCC
type AdAccount struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Currency    string          `json:"currency"`
	TimeZone    string          `json:"time_zone"`
	CountryCode string          `json:"country_code"`
	Status      AdAccountStatus `json:"status"`
}

package domain

// Tipos de resposta da API REST do Google Ads (googleAds:search).
// Campos int64 chegam como strings no JSON da API e são convertidos
// apenas na fronteira do integrador.

type SearchResponse struct {
	Results       []SearchRow `json:"results"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
}

type SearchRow struct {
	CustomerClient *CustomerClient `json:"customerClient,omitempty"`
	Campaign       *Campaign       `json:"campaign,omitempty"`
	Metrics        *Metrics        `json:"metrics,omitempty"`
	Segments       *Segments       `json:"segments,omitempty"`
}

type CustomerClient struct {
	ResourceName    string `json:"resourceName"`
	ClientCustomer  string `json:"clientCustomer"`
	DescriptiveName string `json:"descriptiveName"`
	CurrencyCode    string `json:"currencyCode"`
	TimeZone        string `json:"timeZone"`
	Status          string `json:"status"`
}

type Campaign struct {
	ResourceName string `json:"resourceName"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
}

type Metrics struct {
	Impressions      string  `json:"impressions"`
	Clicks           string  `json:"clicks"`
	CostMicros       string  `json:"costMicros"`
	Conversions      float64 `json:"conversions"`
	ConversionsValue float64 `json:"conversionsValue"`
}

type Segments struct {
	Date string `json:"date"`
}

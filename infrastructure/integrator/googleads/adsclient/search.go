package adsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	adsdomain "github.com/justcarpets/ads-monitor-api/infrastructure/integrator/googleads/domain"
)

type searchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

// Search executa uma consulta GAQL via googleAds:search, paginando até
// esgotar os resultados
func (c *GoogleAdsClient) Search(ctx context.Context, customerID string, query string) ([]adsdomain.SearchRow, error) {
	var rows []adsdomain.SearchRow

	pageToken := ""
	for {
		response, err := c.searchPage(ctx, customerID, query, pageToken)
		if err != nil {
			return nil, err
		}

		rows = append(rows, response.Results...)

		if response.NextPageToken == "" {
			return rows, nil
		}
		pageToken = response.NextPageToken
	}
}

func (c *GoogleAdsClient) searchPage(ctx context.Context, customerID, query, pageToken string) (*adsdomain.SearchResponse, error) {
	token, err := c.TokenManager.AccessToken()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao obter access token")
	}

	url := fmt.Sprintf(
		"%s/%s/customers/%s/googleAds:search",
		c.Cfg.GoogleAds.BaseURL,
		c.Cfg.GoogleAds.Version,
		customerID,
	)

	payload, err := json.Marshal(searchRequest{Query: query, PageToken: pageToken})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao montar o corpo da requisição")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("developer-token", c.Cfg.GoogleAds.DeveloperToken)
	req.Header.Set("login-customer-id", c.Cfg.GoogleAds.MCCCustomerID)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao fazer a requisição")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Token pode ter expirado entre a verificação e a chamada;
		// invalida para a próxima tentativa
		c.TokenManager.Invalidate()
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr adsdomain.APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			logrus.WithFields(logrus.Fields{
				"customer_id": customerID,
				"status":      resp.StatusCode,
				"api_error":   apiErr.String(),
			}).Error("Google Ads API retornou erro")
			return nil, errors.Errorf("google ads api: %s", apiErr.String())
		}

		return nil, errors.Errorf("google ads api: status %d: %s", resp.StatusCode, string(body))
	}

	var response adsdomain.SearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar JSON")
	}

	return &response, nil
}

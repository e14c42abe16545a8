package adsclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/justcarpets/ads-monitor-api/internal/config"
)

const oauthTokenURL = "https://oauth2.googleapis.com/token"

// TokenManager troca o refresh token do OAuth por access tokens de curta
// duração e os renova antes de expirarem
type TokenManager struct {
	cfg *config.Config

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{cfg: cfg}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// AccessToken retorna um access token válido, renovando-o se necessário.
// Renova com 1 minuto de folga para evitar usar um token à beira de expirar.
func (tm *TokenManager) AccessToken() (string, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.accessToken != "" && time.Now().Before(tm.expiresAt.Add(-1*time.Minute)) {
		return tm.accessToken, nil
	}

	if err := tm.refreshLocked(); err != nil {
		return "", err
	}

	return tm.accessToken, nil
}

// refreshLocked troca o refresh token por um novo access token.
// Pressupõe tm.mu já adquirido.
func (tm *TokenManager) refreshLocked() error {
	form := url.Values{}
	form.Set("client_id", tm.cfg.GoogleAds.ClientID)
	form.Set("client_secret", tm.cfg.GoogleAds.ClientSecret)
	form.Set("refresh_token", tm.cfg.GoogleAds.RefreshToken)
	form.Set("grant_type", "refresh_token")

	resp, err := http.Post(oauthTokenURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("erro ao renovar access token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta do OAuth: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("erro ao renovar access token: status %d: %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return fmt.Errorf("erro ao decodificar resposta do OAuth: %w", err)
	}

	tm.accessToken = token.AccessToken
	tm.expiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)

	logrus.WithField("expires_at", tm.expiresAt.Format(time.RFC3339)).Debug("Access token do Google Ads renovado")

	return nil
}

// Invalidate descarta o token atual, forçando renovação na próxima chamada
func (tm *TokenManager) Invalidate() {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.accessToken = ""
	tm.expiresAt = time.Time{}
}

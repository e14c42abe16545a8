// Package cache implementa o cache de resultados endereçado por conteúdo,
// com expiração consciente de "frescor": janelas ainda em andamento expiram
// rápido, janelas fechadas podem viver muito mais.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/justcarpets/ads-monitor-api/internal/domain"
)

// Store é o contrato do cache de resultados. Implementações devem ser seguras
// para Get/Set concorrentes e nunca retornar uma entrada expirada; falhas do
// backend degradam para cache miss, nunca para erro da requisição.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Key gera a chave determinística de uma operação com seus parâmetros.
// Os parâmetros são ordenados antes do hash para que requisições idênticas
// resolvam para a mesma chave independentemente da ordem de inserção no mapa.
func Key(operation string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteString(operation)
	for _, k := range keys {
		builder.WriteString(fmt.Sprintf("|%s=%s", k, params[k]))
	}

	sum := sha256.Sum256([]byte(builder.String()))
	return hex.EncodeToString(sum[:])
}

const (
	// Fração do TTL base para janelas que ainda acumulam dados
	openWindowDivisor = 5
	// Multiplicador do TTL base para janelas fechadas, cujos contadores
	// não mudam mais
	closedWindowFactor = 6
)

// SmartTTL calcula o tempo de vida de uma entrada a partir da janela
// consultada: se a janela inclui o dia de hoje os números ainda estão
// mudando e o TTL encurta; se a janela já fechou o TTL alonga.
func SmartTTL(windowEnd time.Time, baseTTL time.Duration, clock domain.Clock) time.Duration {
	today := clock.Today()
	endDay := time.Date(windowEnd.Year(), windowEnd.Month(), windowEnd.Day(), 0, 0, 0, 0, time.UTC)
	todayDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	if endDay.Before(todayDay) {
		return baseTTL * closedWindowFactor
	}

	return baseTTL / openWindowDivisor
}

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App               `mapstructure:",squash"`
	Server          Server            `mapstructure:",squash"`
	GoogleAds       GoogleAds         `mapstructure:",squash"`
	Cache           Cache             `mapstructure:",squash"`
	AnomalyScan     AnomalyScan       `mapstructure:",squash"`
	RuleThresholds  RuleThresholds    `mapstructure:",squash"`
	CountryAccounts map[string]string `mapstructure:"-"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type GoogleAds struct {
	BaseURL        string `mapstructure:"google_ads_base_url"`
	Version        string `mapstructure:"google_ads_version"`
	DeveloperToken string `mapstructure:"google_ads_developer_token"`
	ClientID       string `mapstructure:"google_ads_client_id"`
	ClientSecret   string `mapstructure:"google_ads_client_secret"`
	RefreshToken   string `mapstructure:"google_ads_refresh_token"`
	MCCCustomerID  string `mapstructure:"google_ads_mcc_customer_id"`
	// Dados de relatório só se consolidam ~2 dias depois do fato; janelas
	// "fechadas" devem usar este offset nos dois lados da comparação.
	SettledOffsetDays int `mapstructure:"google_ads_settled_offset_days"`
}

type Cache struct {
	RedisAddr     string        `mapstructure:"cache_redis_addr"`
	RedisPassword string        `mapstructure:"cache_redis_password"`
	RedisDB       int           `mapstructure:"cache_redis_db"`
	BaseTTL       time.Duration `mapstructure:"cache_base_ttl"`
}

type AnomalyScan struct {
	CronSchedule      string `mapstructure:"anomaly_scan_cron"`
	Enabled           bool   `mapstructure:"anomaly_scan_enabled"`
	MaxConcurrentJobs int    `mapstructure:"anomaly_scan_max_concurrent_jobs"`
	PeriodDays        int    `mapstructure:"anomaly_scan_period_days"`
	HistoryDays       int    `mapstructure:"anomaly_scan_history_days"`
}

// RuleThresholds são os limiares das regras de negócio do detector de
// anomalias, ajustáveis por deployment sem alterar o código do detector
type RuleThresholds struct {
	MinCTRPct            float64 `mapstructure:"rule_min_ctr_pct"`
	MinImpressionsForCTR uint64  `mapstructure:"rule_min_impressions_for_ctr"`
	MaxAvgCPC            float64 `mapstructure:"rule_max_avg_cpc"`
	SpendNoClicksCost    float64 `mapstructure:"rule_spend_no_clicks_cost"`
	MinConversionRatePct float64 `mapstructure:"rule_min_conversion_rate_pct"`
	MinClicksForConvRate uint64  `mapstructure:"rule_min_clicks_for_conv_rate"`
	MaxCPA               float64 `mapstructure:"rule_max_cpa"`
	MinROAS              float64 `mapstructure:"rule_min_roas"`
	MinCostForROAS       float64 `mapstructure:"rule_min_cost_for_roas"`
	NoConversionsCost    float64 `mapstructure:"rule_no_conversions_cost"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v17")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "your_developer_token")
	viper.SetDefault("GOOGLE_ADS_CLIENT_ID", "your_client_id")
	viper.SetDefault("GOOGLE_ADS_CLIENT_SECRET", "your_client_secret")
	viper.SetDefault("GOOGLE_ADS_REFRESH_TOKEN", "your_refresh_token")
	viper.SetDefault("GOOGLE_ADS_MCC_CUSTOMER_ID", "your_mcc_customer_id")
	viper.SetDefault("GOOGLE_ADS_SETTLED_OFFSET_DAYS", 2)

	viper.SetDefault("CACHE_REDIS_ADDR", "") // Vazio usa o cache em memória
	viper.SetDefault("CACHE_REDIS_PASSWORD", "")
	viper.SetDefault("CACHE_REDIS_DB", 0)
	viper.SetDefault("CACHE_BASE_TTL", "15m")

	// Defaults da varredura de anomalias
	viper.SetDefault("ANOMALY_SCAN_CRON", "0 7 * * *")       // Todos os dias às 7h da manhã
	viper.SetDefault("ANOMALY_SCAN_ENABLED", false)          // Habilitar varredura agendada
	viper.SetDefault("ANOMALY_SCAN_MAX_CONCURRENT_JOBS", 5)  // Contas processadas em paralelo
	viper.SetDefault("ANOMALY_SCAN_PERIOD_DAYS", 30)         // Janela corrente da comparação
	viper.SetDefault("ANOMALY_SCAN_HISTORY_DAYS", 30)        // Amostra diária para o z-score

	// Limiares das regras de negócio
	viper.SetDefault("RULE_MIN_CTR_PCT", 0.5)
	viper.SetDefault("RULE_MIN_IMPRESSIONS_FOR_CTR", 1000)
	viper.SetDefault("RULE_MAX_AVG_CPC", 5.0)
	viper.SetDefault("RULE_SPEND_NO_CLICKS_COST", 500.0)
	viper.SetDefault("RULE_MIN_CONVERSION_RATE_PCT", 1.0)
	viper.SetDefault("RULE_MIN_CLICKS_FOR_CONV_RATE", 1000)
	viper.SetDefault("RULE_MAX_CPA", 100.0)
	viper.SetDefault("RULE_MIN_ROAS", 2.0)
	viper.SetDefault("RULE_MIN_COST_FOR_ROAS", 500.0)
	viper.SetDefault("RULE_NO_CONVERSIONS_COST", 1000.0)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	// Mapa de país -> customer ID das contas sob a MCC
	config.CountryAccounts = map[string]string{
		"NL":          "5756290882",
		"BE":          "5735473691",
		"DE":          "1946606314",
		"DK":          "8921136631",
		"ES":          "4748902087",
		"FI":          "8470338623",
		"FR (Ravann)": "2846016798",
		"FR (Tapis)":  "7539242704",
		"IT":          "8472162607",
		"NO":          "3581636329",
		"PL":          "8467590750",
		"SE":          "8463558543",
		"EU":          "6542318847",
		"UK":          "8163355443",
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}

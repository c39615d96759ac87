package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API       *APIConfig       `mapstructure:"api"`
	Gin       *GinConfig       `mapstructure:"gin"`
	Postgres  *PostgresConfig  `mapstructure:"postgres"`
	Redis     *RedisConfig     `mapstructure:"redis"`
	OTP       *OTPConfig       `mapstructure:"otp"`
	Instagram *InstagramConfig `mapstructure:"instagram"`
	Telegram  *TelegramConfig  `mapstructure:"telegram"`
	Kafka     *KafkaConfig     `mapstructure:"kafka"`
	RabbitMQ  *RabbitMQConfig  `mapstructure:"rabbitmq"`
	Event     *EventConfig     `mapstructure:"event"`

	v *viper.Viper
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	TokenTTL           time.Duration `mapstructure:"token_ttl"`
	AdminUsernames     []string      `mapstructure:"admin_usernames"`
}

func (c *APIConfig) IsProduction() bool {
	return c.Environment == "production"
}

// IsAdminUsername reports whether username is listed as a bootstrap admin.
func (c *APIConfig) IsAdminUsername(username string) bool {
	for _, u := range c.AdminUsernames {
		if strings.EqualFold(strings.TrimPrefix(u, "@"), username) {
			return true
		}
	}

	return false
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	UserTTL  time.Duration `mapstructure:"user_ttl"`
}

type OTPConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	Length      int           `mapstructure:"length"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	SendTimeout time.Duration `mapstructure:"send_timeout"`
}

type InstagramConfig struct {
	APIURL      string `mapstructure:"api_url"`
	AccessToken string `mapstructure:"access_token"`
}

type TelegramConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	BotToken  string        `mapstructure:"bot_token"`
	OpsChatID int64         `mapstructure:"ops_chat_id"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type RabbitMQConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Queue   string `mapstructure:"queue"`
}

// EventConfig holds the values used to seed the event row on first start.
type EventConfig struct {
	Currency          string `mapstructure:"currency"`
	MaxInvitesPerUser int    `mapstructure:"max_invites_per_user"`
	MaxParticipants   int    `mapstructure:"max_participants"`
}

// Load reads the yml file at path. Any key can be overridden by an APP_
// prefixed environment variable, e.g. APP_API_JWT_SIGNING_KEY.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf, err := decode(v)
	if err != nil {
		return nil, err
	}
	conf.v = v

	return conf, nil
}

func decode(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if conf.API == nil || conf.Gin == nil || conf.Postgres == nil {
		return nil, fmt.Errorf("config: api, gin and postgres sections are required")
	}
	conf.setDefaults()

	return conf, nil
}

func (c *AppConfig) setDefaults() {
	if c.Redis == nil {
		c.Redis = &RedisConfig{}
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = 5 * time.Minute
	}
	if c.Redis.UserTTL == 0 {
		c.Redis.UserTTL = 10 * time.Minute
	}
	if c.OTP == nil {
		c.OTP = &OTPConfig{}
	}
	if c.OTP.TTL == 0 {
		c.OTP.TTL = 10 * time.Minute
	}
	if c.OTP.Length == 0 {
		c.OTP.Length = 6
	}
	if c.OTP.MaxAttempts == 0 {
		c.OTP.MaxAttempts = 5
	}
	if c.OTP.SendTimeout == 0 {
		c.OTP.SendTimeout = 10 * time.Second
	}
	if c.API.TokenTTL == 0 {
		c.API.TokenTTL = 7 * 24 * time.Hour
	}
	if c.Instagram == nil {
		c.Instagram = &InstagramConfig{}
	}
	if c.Telegram == nil {
		c.Telegram = &TelegramConfig{}
	}
	if c.Telegram.Timeout == 0 {
		c.Telegram.Timeout = 5 * time.Second
	}
	if c.Kafka == nil {
		c.Kafka = &KafkaConfig{}
	}
	if c.RabbitMQ == nil {
		c.RabbitMQ = &RabbitMQConfig{}
	}
	if c.Event == nil {
		c.Event = &EventConfig{}
	}
	if c.Event.Currency == "" {
		c.Event.Currency = "USD"
	}
	if c.Event.MaxInvitesPerUser == 0 {
		c.Event.MaxInvitesPerUser = 5
	}
}

// Watch re-reads the file whenever it changes and hands the new values to
// onChange. Connections opened from the old values are not reopened.
func (c *AppConfig) Watch(onChange func(*AppConfig)) {
	if c.v == nil {
		return
	}

	c.v.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed", zap.String("file", e.Name), zap.String("op", e.Op.String()))

		conf, err := decode(c.v)
		if err != nil {
			zap.L().Error("failed to reload config", zap.Error(err))
			return
		}
		onChange(conf)
	})
	c.v.WatchConfig()
}

package config

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
)

type AppConfig struct {
	App       App       `mapstructure:"app"`
	Meetup    Meetup    `mapstructure:"meetup"`
	Raffle    Raffle    `mapstructure:"raffle"`
	Warehouse Warehouse `mapstructure:"warehouse"`
	Postgres  Postgres  `mapstructure:"postgres"`
}

type App struct {
	Environment string `mapstructure:"environment"`
}

type Meetup struct {
	BaseURL        string        `mapstructure:"base_url"`
	TokenURL       string        `mapstructure:"token_url"`
	ClientID       string        `mapstructure:"client_id"`
	ClientSecret   string        `mapstructure:"client_secret"`
	GroupID        string        `mapstructure:"group_id"`
	EventID        string        `mapstructure:"event_id"`
	TicketsMax     int           `mapstructure:"tickets_max"`
	AddToGuestlist bool          `mapstructure:"add_to_guestlist"`
	TokenKey       string        `mapstructure:"token_key"`
	PromotionDelay time.Duration `mapstructure:"promotion_delay"`
}

type Raffle struct {
	Seed int64 `mapstructure:"seed"`
}

type Warehouse struct {
	Schema string `mapstructure:"schema"`
}

type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// Load reads the yaml config at path. Every key can be overridden by an
// environment variable named after it, e.g. meetup.client_id by
// MEETUP_CLIENT_ID.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	var conf AppConfig
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config validation -> %w", err)
	}

	return &conf, nil
}

func (c *AppConfig) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Meetup.Validate(); err != nil {
		return err
	}
	if err := c.Warehouse.Validate(); err != nil {
		return err
	}
	return c.Postgres.Validate()
}

func (a App) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Environment, validation.Required),
	)
}

func (m Meetup) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.BaseURL, validation.Required),
		validation.Field(&m.TokenURL, validation.Required),
		validation.Field(&m.ClientID, validation.Required),
		validation.Field(&m.ClientSecret, validation.Required),
		validation.Field(&m.GroupID, validation.Required),
		validation.Field(&m.EventID, validation.Required),
		validation.Field(&m.TicketsMax, validation.Min(0)),
		validation.Field(&m.TokenKey, validation.Required),
		validation.Field(&m.PromotionDelay, validation.Min(time.Duration(0))),
	)
}

func (w Warehouse) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Schema, validation.Required),
	)
}

func (p Postgres) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Host, validation.Required),
		validation.Field(&p.Port, validation.Required),
		validation.Field(&p.User, validation.Required),
		validation.Field(&p.DBName, validation.Required),
	)
}

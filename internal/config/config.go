package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

var cfg *Config
var once sync.Once

// Config is the configuration for the application
type Config struct {
	Server
	PostgreSQL
	Redis
	Payeer
	Session
}

// Server is the configuration for the server
type Server struct {
	Port string `env:"PORT" envDefault:"8080"`
}

// Addr returns the address for the server
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%s", "0.0.0.0", s.Port)
}

// PostgreSQL is the configuration for the database
type PostgreSQL struct {
	Driver          string `env:"DB_DRIVER" envDefault:"postgres"`
	Host            string `env:"DB_HOST" envDefault:"localhost"`
	Port            string `env:"DB_PORT" envDefault:"5432"`
	Database        string `env:"DB_DATABASE" envDefault:"payeer_gateway"`
	Username        string `env:"DB_USERNAME" envDefault:"payeer_gateway"`
	Password        string `env:"DB_PASSWORD" envDefault:"payeer_gateway"`
	SSLMode         string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConnAttempts string `env:"DB_MAX_CONN_ATTEMPTS" envDefault:"5"`
}

// DSN returns the DSN for the database
func (c PostgreSQL) DSN() string {
	return fmt.Sprintf("%s://%s:%s@%s:%s/%s?sslmode=%s",
		c.Driver,
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		c.SSLMode,
	)
}

// Redis is the configuration for the payment session store
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       string `env:"REDIS_DB" envDefault:"0"`
}

// Payeer is the merchant configuration for the payment processor
type Payeer struct {
	MerchantID      string `env:"PAYEER_MERCHANT_ID" envDefault:""`
	MerchantURL     string `env:"PAYEER_MERCHANT_URL" envDefault:"https://payeer.com/merchant/"`
	SecretKey       string `env:"PAYEER_SECRET_KEY" envDefault:""`
	IPFilter        string `env:"PAYEER_IP_FILTER" envDefault:""`
	ProjectCurrency string `env:"PROJECT_CURRENCY" envDefault:"USD"`
	Timezone        string `env:"PAYMENT_TIMEZONE" envDefault:"UTC"`
}

// AllowedAddresses returns the parsed IP allow-list. An empty filter allows
// every source address.
func (p Payeer) AllowedAddresses() []string {
	filter := strings.TrimSpace(p.IPFilter)
	if filter == "" {
		return nil
	}
	parts := strings.Split(filter, ",")
	addresses := make([]string, 0, len(parts))
	for _, part := range parts {
		if addr := strings.TrimSpace(part); addr != "" {
			addresses = append(addresses, addr)
		}
	}
	return addresses
}

// Session is the configuration for payment session lifetime
type Session struct {
	TTLMinutes    string `env:"SESSION_TTL_MINUTES" envDefault:"60"`
	SweepInterval string `env:"SESSION_SWEEP_INTERVAL" envDefault:"10"`
}

// Load loads the configuration from environment variables
func Load() *Config {
	once.Do(func() {
		// .env is optional, real deployments set the environment directly
		_ = godotenv.Load()

		cfg = &Config{}
		cfgType := reflect.TypeOf(*cfg)
		cfgValue := reflect.ValueOf(cfg).Elem()

		for i := 0; i < cfgType.NumField(); i++ {
			field := cfgType.Field(i)
			fieldValue := cfgValue.Field(i)
			for j := 0; j < field.Type.NumField(); j++ {
				subField := field.Type.Field(j)
				envVar := subField.Tag.Get("env")
				envDefault := subField.Tag.Get("envDefault")
				value := getEnv(envVar, envDefault)

				fieldValue.Field(j).SetString(value)
			}
		}
	})

	return cfg
}

// getEnv retrieves the value of the environment variable named by the key or returns the defaultValue if not set
func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = defaultValue
	}
	return value
}

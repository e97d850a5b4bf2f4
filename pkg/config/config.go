package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/buildmat/buildmat-backend/pkg/enums"
	"github.com/buildmat/buildmat-backend/pkg/types"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv  = "BUILDMAT_APP_ENV"
	EnvAppPort = "BUILDMAT_APP_PORT"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Delivery     DeliveryConfig
	Submission   SubmissionConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Delivery.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BUILDMAT_APP_ENV" required:"true"`
	Port         string `envconfig:"BUILDMAT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BUILDMAT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BUILDMAT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BUILDMAT_DB_DSN"`
	Driver string `envconfig:"BUILDMAT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BUILDMAT_DB_HOST"`
	LegacyPort     int    `envconfig:"BUILDMAT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BUILDMAT_DB_USER"`
	LegacyPassword string `envconfig:"BUILDMAT_DB_PASSWORD"`
	LegacyName     string `envconfig:"BUILDMAT_DB_NAME"`
	LegacySSLMode  string `envconfig:"BUILDMAT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BUILDMAT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BUILDMAT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BUILDMAT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BUILDMAT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either BUILDMAT_DB_DSN or host/user/name must be set")
	}
	userInfo := url.User(d.LegacyUser)
	if d.LegacyPassword != "" {
		userInfo = url.UserPassword(d.LegacyUser, d.LegacyPassword)
	}
	dsn := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     fmt.Sprintf("%s:%d", d.LegacyHost, d.LegacyPort),
		Path:     d.LegacyName,
		RawQuery: "sslmode=" + d.LegacySSLMode,
	}
	d.DSN = dsn.String()
	return nil
}

type RedisConfig struct {
	URL      string `envconfig:"BUILDMAT_REDIS_URL"`
	Address  string `envconfig:"BUILDMAT_REDIS_ADDRESS"`
	Password string `envconfig:"BUILDMAT_REDIS_PASSWORD"`
	DB       int    `envconfig:"BUILDMAT_REDIS_DB" default:"0"`

	PoolSize     int           `envconfig:"BUILDMAT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BUILDMAT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BUILDMAT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BUILDMAT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"BUILDMAT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// CartConfig controls how persisted carts are stored and how long they
// survive without activity.
type CartConfig struct {
	KeyNamespace string        `envconfig:"BUILDMAT_CART_KEY_NAMESPACE" default:"bm"`
	TTL          time.Duration `envconfig:"BUILDMAT_CART_TTL" default:"720h"`
}

// DeliveryConfig supplies the engine defaults for newly created slots plus
// the market-specific vehicle catalog and locale.
type DeliveryConfig struct {
	DefaultTime    string   `envconfig:"BUILDMAT_DELIVERY_DEFAULT_TIME" default:"09:00"`
	DefaultVehicle string   `envconfig:"BUILDMAT_DELIVERY_DEFAULT_VEHICLE" default:"flatbed"`
	VehicleTypes   []string `envconfig:"BUILDMAT_DELIVERY_VEHICLE_TYPES" default:"pickup,van,flatbed,box_truck,dump_truck,crane_truck,mixer_truck"`
	Country        string   `envconfig:"BUILDMAT_DELIVERY_COUNTRY" default:"US"`

	RequireTime    bool `envconfig:"BUILDMAT_DELIVERY_REQUIRE_TIME" default:"true"`
	RequireVehicle bool `envconfig:"BUILDMAT_DELIVERY_REQUIRE_VEHICLE" default:"true"`
}

func (d DeliveryConfig) validate() error {
	if _, err := enums.ParseVehicleType(d.DefaultVehicle); err != nil {
		return fmt.Errorf("invalid BUILDMAT_DELIVERY_DEFAULT_VEHICLE: %w", err)
	}
	for _, code := range d.VehicleTypes {
		if _, err := enums.ParseVehicleType(code); err != nil {
			return fmt.Errorf("invalid BUILDMAT_DELIVERY_VEHICLE_TYPES entry: %w", err)
		}
	}
	return nil
}

// VehicleCatalog returns the configured vehicle classes in display order.
func (d DeliveryConfig) VehicleCatalog() []types.VehicleOption {
	options := make([]types.VehicleOption, 0, len(d.VehicleTypes))
	for _, code := range d.VehicleTypes {
		vt, err := enums.ParseVehicleType(code)
		if err != nil {
			continue
		}
		options = append(options, types.VehicleOption{Code: vt, Label: vt.Label()})
	}
	return options
}

// SubmissionConfig points at the order-creation API the engine submits to.
type SubmissionConfig struct {
	BaseURL string        `envconfig:"BUILDMAT_SUBMISSION_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"BUILDMAT_SUBMISSION_TIMEOUT" default:"15s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BUILDMAT_FEATURE_AUTO_MIGRATE" default:"false"`
}

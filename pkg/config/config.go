package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Orders        OrdersConfig
	Payments      PaymentsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RASOILINK_APP_ENV" required:"true"`
	Port         string `envconfig:"RASOILINK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RASOILINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RASOILINK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RASOILINK_DB_DSN"`
	Driver string `envconfig:"RASOILINK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RASOILINK_DB_HOST"`
	LegacyPort     int    `envconfig:"RASOILINK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RASOILINK_DB_USER"`
	LegacyPassword string `envconfig:"RASOILINK_DB_PASSWORD"`
	LegacyName     string `envconfig:"RASOILINK_DB_NAME"`
	LegacySSLMode  string `envconfig:"RASOILINK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RASOILINK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RASOILINK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RASOILINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RASOILINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RASOILINK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RASOILINK_REDIS_ADDR"`
	Password     string        `envconfig:"RASOILINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"RASOILINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RASOILINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RASOILINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RASOILINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RASOILINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RASOILINK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"RASOILINK_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"RASOILINK_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"RASOILINK_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"RASOILINK_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"RASOILINK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"RASOILINK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"RASOILINK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"RASOILINK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"RASOILINK_ARGON_KEY_LEN" default:"32"`
	MinLength        int `envconfig:"RASOILINK_PASSWORD_MIN_LENGTH" default:"6"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"RASOILINK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"RASOILINK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"RASOILINK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"RASOILINK_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"RASOILINK_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"RASOILINK_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"RASOILINK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"RASOILINK_AUTO_MIGRATE" default:"false"`
}

type OrdersConfig struct {
	DefaultDeliveryDays int `envconfig:"RASOILINK_ORDER_DELIVERY_DAYS" default:"7"`
}

type PaymentsConfig struct {
	PayeeVPA      string  `envconfig:"RASOILINK_UPI_PAYEE_VPA" default:"rasoilink@upi"`
	PayeeName     string  `envconfig:"RASOILINK_UPI_PAYEE_NAME" default:"RasoiLink"`
	SuccessRate   float64 `envconfig:"RASOILINK_PAYMENT_SUCCESS_RATE" default:"0.9"`
	SimulatorSeed int64   `envconfig:"RASOILINK_PAYMENT_SIM_SEED" default:"0"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if strings.EqualFold(db.Driver, DBDriverSQLite) {
		db.DSN = "file:rasoilink.db?cache=shared"
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

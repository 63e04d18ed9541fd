package configs

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	maxRetries = 10
	retryDelay = 5 * time.Second
)

// GormConfig is shared by the server, the CLI and tests. Product.CategoryID
// is a soft reference, so migrations never create foreign keys.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	}
}

func Dialector(env ENV) (gorm.Dialector, error) {
	switch env.DBDriver {
	case "mysql":
		return mysql.Open(mysqlDSN(env)), nil
	case "postgres":
		dsn := env.DBDSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
				env.DBHost, env.DBPort, env.DBUser, env.DBPassword, env.DBName)
		}
		return postgres.Open(dsn), nil
	case "sqlite":
		dsn := env.DBDSN
		if dsn == "" {
			dsn = "asili.db"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
}

func mysqlDSN(env ENV) string {
	if env.DBDSN != "" {
		return env.DBDSN
	}

	cfg := mysqldriver.NewConfig()
	cfg.User = env.DBUser
	cfg.Passwd = env.DBPassword
	cfg.Net = "tcp"
	cfg.Addr = env.DBHost
	if env.DBPort != "" {
		cfg.Addr = env.DBHost + ":" + env.DBPort
	}
	cfg.DBName = env.DBName
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func OpenConnection(env ENV, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(env)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		log.Info().Str("driver", env.DBDriver).Int("attempt", i+1).Int("max_attempts", maxRetries).Msg("connecting to database")

		db, err := gorm.Open(dialector, GormConfig())
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					configurePool(env, sqlDB)
					log.Info().Str("driver", env.DBDriver).Msg("database connection successful")
					return db, nil
				}
			}
			lastErr = pingErr
			log.Warn().Err(pingErr).Dur("retry_in", retryDelay).Msg("failed to ping database")
		} else {
			lastErr = err
			log.Warn().Err(err).Dur("retry_in", retryDelay).Msg("failed to open gorm connection")
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxRetries, lastErr)
}

func configurePool(env ENV, sqlDB *sql.DB) {
	if env.DBDriver == "sqlite" {
		// one writer at a time, otherwise SQLITE_BUSY under concurrent requests
		sqlDB.SetMaxOpenConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	OperatorWorkers int
	MaxImportBytes  int64

	// AMQPURL is optional. Import events are only sent to RabbitMQ when it is set.
	AMQPURL      string
	AMQPExchange string

	LogLevel string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env file is fine, real environment variables still apply
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		Port:             "9446",
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		OperatorWorkers:  1,
		MaxImportBytes:   10 << 20,
		AMQPExchange:     "ledger",
		LogLevel:         "info",
	}

	envPort := os.Getenv("PORT")
	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")
	envOperatorWorkers := os.Getenv("OPERATOR_WORKERS")
	envMaxImportBytes := os.Getenv("MAX_IMPORT_BYTES")
	envAMQPURL := os.Getenv("AMQP_URL")
	envAMQPExchange := os.Getenv("AMQP_EXCHANGE")
	envLogLevel := os.Getenv("LOG_LEVEL")

	if len(envPort) != 0 {
		env.Port = envPort
	}

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if len(envOperatorWorkers) != 0 {
		workers, err := strconv.Atoi(envOperatorWorkers)
		if err != nil {
			return nil, fmt.Errorf("OPERATOR_WORKERS: %w", err)
		}
		env.OperatorWorkers = workers
	}

	if len(envMaxImportBytes) != 0 {
		maxBytes, err := strconv.ParseInt(envMaxImportBytes, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("MAX_IMPORT_BYTES: %w", err)
		}
		env.MaxImportBytes = maxBytes
	}

	if len(envAMQPURL) != 0 {
		env.AMQPURL = envAMQPURL
	}

	if len(envAMQPExchange) != 0 {
		env.AMQPExchange = envAMQPExchange
	}

	if len(envLogLevel) != 0 {
		env.LogLevel = envLogLevel
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}

	return &env, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.PostgresAddress == "" || c.PostgresDB == "" || c.PostgresUsername == "" {
		problems = append(problems, "postgres address, database and username are required")
	}

	if c.OperatorWorkers < 1 {
		problems = append(problems, fmt.Sprintf("invalid operator worker count %d: must be at least 1", c.OperatorWorkers))
	}

	if c.MaxImportBytes < 1 {
		problems = append(problems, fmt.Sprintf("invalid max import size %d: must be positive", c.MaxImportBytes))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

// PostgresURL is the lib/pq connection string for the configured database.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

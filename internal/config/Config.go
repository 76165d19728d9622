package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Mshel/sshtris/internal/game"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	envHost                = "SSHTRIS_HOST"
	envPort                = "SSHTRIS_PORT"
	envPrivateKeyPath      = "SSHTRIS_PRIVATE_KEY_PATH"
	envMaxConnectionsPerIP = "SSHTRIS_MAX_CONNECTIONS_PER_IP"
	envLogLevel            = "SSHTRIS_LOG_LEVEL"
	envLogFile             = "SSHTRIS_LOG_FILE"
	envBoardCols           = "SSHTRIS_BOARD_COLS"
	envBoardRows           = "SSHTRIS_BOARD_ROWS"
	envDropInterval        = "SSHTRIS_DROP_INTERVAL"
	envAutopilotScript     = "SSHTRIS_AUTOPILOT_SCRIPT"
)

// Config is the application configuration shared by the local runner and
// the SSH server.
type Config struct {
	Host                string
	Port                string
	PrivateKeyPath      string
	MaxConnectionsPerIP int
	LogLevel            log.Level
	LogFile             string
	AutopilotScript     string
	Game                game.Config
}

func Default() Config {
	return Config{
		Host:                "0.0.0.0",
		Port:                "6996",
		PrivateKeyPath:      ".ssh/id_ed25519",
		MaxConnectionsPerIP: 2,
		LogLevel:            log.InfoLevel,
		Game:                game.DefaultConfig(),
	}
}

func (c Config) Address() string {
	return c.Host + ":" + c.Port
}

// Load reads an optional .env file and then overrides the defaults with any
// SSHTRIS_* environment variables that are set.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Default()

	stringVar(envHost, &cfg.Host)
	stringVar(envPort, &cfg.Port)
	stringVar(envPrivateKeyPath, &cfg.PrivateKeyPath)
	stringVar(envLogFile, &cfg.LogFile)
	stringVar(envAutopilotScript, &cfg.AutopilotScript)

	if err := positiveIntVar(envMaxConnectionsPerIP, &cfg.MaxConnectionsPerIP); err != nil {
		return Config{}, err
	}
	if err := positiveIntVar(envBoardCols, &cfg.Game.BoardCols); err != nil {
		return Config{}, err
	}
	if err := positiveIntVar(envBoardRows, &cfg.Game.BoardRows); err != nil {
		return Config{}, err
	}

	if raw, ok := os.LookupEnv(envDropInterval); ok {
		interval, err := time.ParseDuration(raw)
		if err != nil || interval <= 0 {
			return Config{}, fmt.Errorf("%w: %s=%q is not a positive duration", ErrInvalidConfig, envDropInterval, raw)
		}
		cfg.Game.DropInterval = interval
	}

	if raw, ok := os.LookupEnv(envLogLevel); ok {
		level, err := log.ParseLevel(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, envLogLevel, err)
		}
		cfg.LogLevel = level
	}

	if cfg.Game.BoardCols < 4 {
		return Config{}, fmt.Errorf("%w: board needs at least 4 columns, got %d", ErrInvalidConfig, cfg.Game.BoardCols)
	}

	return cfg, nil
}

func stringVar(name string, target *string) {
	if raw, ok := os.LookupEnv(name); ok && raw != "" {
		*target = raw
	}
}

func positiveIntVar(name string, target *int) error {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fmt.Errorf("%w: %s=%q is not a positive integer", ErrInvalidConfig, name, raw)
	}
	*target = value
	return nil
}

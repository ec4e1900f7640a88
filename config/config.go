// Package config exposes process configuration for the job-board backend.
// Values come from an optional TOML settings file overridden by
// JOBBOARD_* environment variables.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("JOBBOARD_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("JOBBOARD_DEBUG") == "true"
}

func GetListen() string {
	if listen := os.Getenv("JOBBOARD_LISTEN"); listen != "" {
		return listen
	}
	return GetSettings().Listen
}

func GetPort() int {
	if port := os.Getenv("JOBBOARD_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return GetSettings().Port
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("JOBBOARD_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	if dbPath := os.Getenv("JOBBOARD_DB_PATH"); dbPath != "" {
		return dbPath
	}
	if dbPath := GetSettings().DBPath; dbPath != "" {
		return dbPath
	}
	return filepath.Join(GetDBFolderPath(), GetName()+".db")
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("JOBBOARD_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

func GetRedisAddr() string {
	if addr := os.Getenv("JOBBOARD_REDIS_ADDR"); addr != "" {
		return addr
	}
	return GetSettings().RedisAddr
}

func GetRedisPassword() string {
	if password := os.Getenv("JOBBOARD_REDIS_PASSWORD"); password != "" {
		return password
	}
	return GetSettings().RedisPassword
}

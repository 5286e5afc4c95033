package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DataDir   string
	DBDSN     string
	ExportDir string
	LogFile   string
}

func Load() Config {
	// .env is optional; env vars win either way.
	_ = godotenv.Load()

	port := os.Getenv("POSD_PORT")
	if port == "" {
		port = "8731"
	}
	dataDir := os.Getenv("POSD_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	dsn := os.Getenv("POSD_DB_FILE")
	if dsn == "" {
		dsn = filepath.Join(dataDir, "posd.db")
	}
	exportDir := os.Getenv("POSD_EXPORT_DIR")
	if exportDir == "" {
		exportDir = filepath.Join(dataDir, "exports")
	}
	logFile := os.Getenv("POSD_LOG_FILE")
	if logFile == "" {
		logFile = filepath.Join(dataDir, "posd.log")
	}

	cfg := Config{Port: port, DataDir: dataDir, DBDSN: dsn, ExportDir: exportDir, LogFile: logFile}
	log.Printf("[config] PORT=%s DATA_DIR=%s DB_FILE=%s EXPORT_DIR=%s LOG_FILE=%s",
		cfg.Port, cfg.DataDir, cfg.DBDSN, cfg.ExportDir, cfg.LogFile)
	return cfg
}

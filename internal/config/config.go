package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBDriver      string   `yaml:"db_driver"`
	DBHost        string   `yaml:"db_host"`
	DBPort        string   `yaml:"db_port"`
	DBUser        string   `yaml:"db_user"`
	DBPassword    string   `yaml:"db_password"`
	DBName        string   `yaml:"db_name"`
	DBPath        string   `yaml:"db_path"`
	SessionStore  string   `yaml:"session_store"`
	RedisHost     string   `yaml:"redis_host"`
	RedisPort     string   `yaml:"redis_port"`
	SessionSecret string   `yaml:"session_secret"`
	GinMode       string   `yaml:"gin_mode"`
	Port          string   `yaml:"port"`
	CORSOrigins   []string `yaml:"cors_origins"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		DBDriver:      "mysql",
		DBHost:        "localhost",
		DBPort:        "3306",
		DBUser:        "pmsuser",
		DBPassword:    "pmspassword",
		DBName:        "studio_pm",
		DBPath:        "pms_demo.db",
		SessionStore:  "redis",
		RedisHost:     "localhost",
		RedisPort:     "6379",
		SessionSecret: "default-secret-key-change-me",
		GinMode:       "debug",
		Port:          "8080",
		CORSOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE and finally environment variables (a .env file is read first when present).
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to read .env file: %v", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			log.Printf("Failed to read config file %s: %v", path, err)
		}
	}
	cfg.ParseEnv()
	return cfg
}

// LoadFile overlays values from a YAML file onto cfg.
func (c *Config) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return yaml.NewDecoder(file).Decode(c)
}

// ParseEnv overrides cfg with any environment variables that are set.
func (c *Config) ParseEnv() {
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.SessionStore = getEnv("SESSION_STORE", c.SessionStore)
	c.RedisHost = getEnv("REDIS_HOST", c.RedisHost)
	c.RedisPort = getEnv("REDIS_PORT", c.RedisPort)
	c.SessionSecret = getEnv("SESSION_SECRET", c.SessionSecret)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.Port = getEnv("PORT", c.Port)

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = splitList(origins)
	}
}

// IsProduction reports whether the server runs in gin release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

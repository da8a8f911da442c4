package database

import (
	"fmt"
	"net/url"

	"magictravel/internal/config"
)

// Config holds database configuration
type Config struct {
	Driver         string
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

// NewConfig derives the database configuration from the application configuration.
func NewConfig(app *config.Config) *Config {
	return &Config{
		Driver:         app.DBDriver,
		Host:           app.DBHost,
		Port:           app.DBPort,
		User:           app.DBUser,
		Password:       app.DBPassword,
		DBName:         app.DBName,
		SSLMode:        app.DBSSLMode,
		MigrationsPath: app.MigrationsPath,
	}
}

// DSN returns the connection string for the configured gorm driver.
func (c *Config) DSN() string {
	if c.Driver == config.DriverPostgres {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

// MigrationURL returns the golang-migrate database URL for the configured
// driver. The mysql driver query-unescapes user and password; postgres
// parses the URL userinfo.
func (c *Config) MigrationURL() string {
	if c.Driver == config.DriverPostgres {
		return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=%s",
			url.UserPassword(c.User, c.Password).String(), c.Host, c.Port, c.DBName, c.SSLMode)
	}
	return fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true&parseTime=true",
		url.QueryEscape(c.User), url.QueryEscape(c.Password), c.Host, c.Port, c.DBName)
}

// MigrationSource returns the golang-migrate source URL. Each driver keeps
// its own dialect directory under the migrations path.
func (c *Config) MigrationSource() string {
	return fmt.Sprintf("file://%s/%s", c.MigrationsPath, c.Driver)
}

package config

import "fmt"

// ServerConfig holds configuration for the demo storefront server
type ServerConfig struct {
	Port string
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	return ServerConfig{
		Port: port,
	}
}

// Addr returns the listen address for the server
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

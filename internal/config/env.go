package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment holds endpoint and backend settings taken from the process
// environment. An optional .env file fills in variables that are not set.
type Environment struct {
	APIBase       string // IMSAKIYAH_API_BASE
	GeoURL        string // IMSAKIYAH_GEO_URL
	GeocodeURL    string // IMSAKIYAH_GEOCODE_URL
	RedisAddr     string // IMSAKIYAH_REDIS_ADDR
	RedisPassword string // IMSAKIYAH_REDIS_PASSWORD
	MQTTBroker    string // IMSAKIYAH_MQTT_BROKER
	MQTTTopic     string // IMSAKIYAH_MQTT_TOPIC
	LogLevel      string // LOG_LEVEL
}

// LoadEnvironment reads the given .env files (".env" when none are given)
// and then the environment. Missing files are ignored; variables already
// set in the environment win over the file.
func LoadEnvironment(files ...string) Environment {
	_ = godotenv.Load(files...)

	return Environment{
		APIBase:       os.Getenv("IMSAKIYAH_API_BASE"),
		GeoURL:        os.Getenv("IMSAKIYAH_GEO_URL"),
		GeocodeURL:    os.Getenv("IMSAKIYAH_GEOCODE_URL"),
		RedisAddr:     os.Getenv("IMSAKIYAH_REDIS_ADDR"),
		RedisPassword: os.Getenv("IMSAKIYAH_REDIS_PASSWORD"),
		MQTTBroker:    os.Getenv("IMSAKIYAH_MQTT_BROKER"),
		MQTTTopic:     os.Getenv("IMSAKIYAH_MQTT_TOPIC"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}
}

package config

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/nerdtracker/tracktiles/internal/pipeline"
)

// Config holds application configuration
type Config struct {
	Port          string
	DBPath        string
	JWTSecret     string
	TippecanoeBin string
	OutputDir     string
	MaxZoom       int

	Pipeline pipeline.Options
}

// Load reads configuration from the environment, falling back to an
// optional secrets JSON file (SECRETS_PATH, default ./secrets.json) for
// credentials, then to defaults.
func Load() *Config {
	secrets := loadSecrets(envOr("SECRETS_PATH", "./secrets.json"))

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = secrets["JWT_SECRET"]
	}
	if jwtSecret == "" {
		jwtSecret = secrets["AUTH_PASSWORD"]
	}
	if jwtSecret == "" {
		jwtSecret = "change-me-in-production"
	}

	opts := pipeline.DefaultOptions()
	opts.OutlierDropKm = envFloat("OUTLIER_DROP_KM", opts.OutlierDropKm)
	opts.OutlierMaxSpeedKmh = envFloat("OUTLIER_MAX_SPEED_KMH", opts.OutlierMaxSpeedKmh)
	opts.FlightSpeedKmh = envFloat("FLIGHT_SPEED_KMH", opts.FlightSpeedKmh)
	opts.FlightMinDistanceKm = envFloat("FLIGHT_MIN_DISTANCE_KM", opts.FlightMinDistanceKm)
	opts.FlightMinDurationMin = envFloat("FLIGHT_MIN_DURATION_MIN", opts.FlightMinDurationMin)
	opts.FlightMaxGapHours = envFloat("FLIGHT_GAP_HOURS", opts.FlightMaxGapHours)
	opts.TrackMaxGapHours = envFloat("TRACK_GAP_HOURS", opts.TrackMaxGapHours)
	opts.TrackEpsilonKm = envFloat("SIMPLIFY_KM", opts.TrackEpsilonKm)
	opts.FlightEpsilonKm = envFloat("FLIGHT_SIMPLIFY_KM", opts.FlightEpsilonKm)
	opts.CoordPrecision = envInt("COORD_PRECISION", opts.CoordPrecision)

	return &Config{
		Port:          envOr("PORT", ":8080"),
		DBPath:        envOr("DB_PATH", "./data/locations.db"),
		JWTSecret:     jwtSecret,
		TippecanoeBin: envOr("TIPPECANOE_BIN", "tippecanoe"),
		OutputDir:     envOr("OUTPUT_DIR", "./output"),
		MaxZoom:       envInt("MAX_ZOOM", 10),
		Pipeline:      opts,
	}
}

// loadSecrets reads a flat string-to-string JSON file; a missing or
// malformed file yields an empty map.
func loadSecrets(path string) map[string]string {
	secrets := make(map[string]string)
	data, err := os.ReadFile(path)
	if err != nil {
		return secrets
	}
	_ = json.Unmarshal(data, &secrets)
	return secrets
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	ListenAddr string
	PublicDir  string
	GuestsFile string

	// AdminPasswordHash (bcrypt) takes precedence over the plaintext
	// AdminPassword when both are set.
	AdminPassword     string
	AdminPasswordHash string
	TokenSecret       string
	TokenTTL          time.Duration

	WeddingTitle string
	WeddingDates string

	// GiftOptions maps submitted gift codes to the display labels that
	// get stored and reported.
	GiftOptions map[string]string

	Ceremony    EventInfo
	Reception   EventInfo
	Celebration EventInfo
}

// EventInfo describes one sub-event for the personalized details document.
type EventInfo struct {
	Title       string
	Date        string
	Venue       string
	Description string
}

// LoadConfig loads configuration from a .env file (if present) and
// environment variables, falling back to defaults.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":3000"),
		PublicDir:  getEnv("PUBLIC_DIR", "public"),
		GuestsFile: getEnv("GUESTS_FILE", "data/guests.json"),

		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		TokenSecret:       getEnv("ADMIN_TOKEN_SECRET", ""),
		TokenTTL:          getDurationEnv("ADMIN_TOKEN_TTL", 12*time.Hour),

		WeddingTitle: getEnv("WEDDING_TITLE", "Piers & Rakel Wedding"),
		WeddingDates: getEnv("WEDDING_DATES", "April 17-18, 2026"),

		GiftOptions: parseGiftOptions(getEnv("GIFT_OPTIONS",
			"honeymoon=Honeymoon Fund,homeware=Homeware Fund,charity=Charity Donation")),

		Ceremony: EventInfo{
			Title:       getEnv("CEREMONY_TITLE", "Ceremony"),
			Date:        getEnv("CEREMONY_DATE", "Friday, April 17, 2026"),
			Venue:       getEnv("CEREMONY_VENUE", "St. Mary's Church"),
			Description: getEnv("CEREMONY_DESCRIPTION", "The wedding ceremony, followed by drinks on the lawn."),
		},
		Reception: EventInfo{
			Title:       getEnv("RECEPTION_TITLE", "Family Reception"),
			Date:        getEnv("RECEPTION_DATE", "Friday, April 17, 2026"),
			Venue:       getEnv("RECEPTION_VENUE", "The Old Barn"),
			Description: getEnv("RECEPTION_DESCRIPTION", "An intimate dinner for family and close friends."),
		},
		Celebration: EventInfo{
			Title:       getEnv("CELEBRATION_TITLE", "Wedding Celebration"),
			Date:        getEnv("CELEBRATION_DATE", "Saturday, April 18, 2026"),
			Venue:       getEnv("CELEBRATION_VENUE", "The Old Barn"),
			Description: getEnv("CELEBRATION_DESCRIPTION", "Dinner, dancing and celebrations into the night."),
		},
	}
}

// parseGiftOptions parses comma-separated code=Label pairs. Malformed
// pairs are skipped.
func parseGiftOptions(raw string) map[string]string {
	options := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		code, label, ok := strings.Cut(pair, "=")
		code = strings.TrimSpace(code)
		label = strings.TrimSpace(label)
		if !ok || code == "" || label == "" {
			continue
		}
		options[code] = label
	}
	return options
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

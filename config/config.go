package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Port string

	MongoURI      string
	MongoDatabase string

	ScheduleSource string
	VendorsSource  string

	// Locale for human-readable timestamps on the status surface.
	Locale string

	ReleaseMode bool
}

// Load reads configuration from COMPANION_* environment variables with
// sensible defaults for local development.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("COMPANION")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_NAME", "festival-companion")
	v.SetDefault("SCHEDULE_SOURCE", "data/schedule.json")
	v.SetDefault("VENDORS_SOURCE", "data/vendors.json")
	v.SetDefault("LOCALE", "en_US")
	v.SetDefault("RELEASE_MODE", false)

	return &Config{
		Port:           v.GetString("PORT"),
		MongoURI:       v.GetString("MONGODB_URI"),
		MongoDatabase:  v.GetString("MONGODB_NAME"),
		ScheduleSource: v.GetString("SCHEDULE_SOURCE"),
		VendorsSource:  v.GetString("VENDORS_SOURCE"),
		Locale:         v.GetString("LOCALE"),
		ReleaseMode:    v.GetBool("RELEASE_MODE"),
	}
}

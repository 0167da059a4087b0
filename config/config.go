package config

import "github.com/kelseyhightower/envconfig"

// Config holds daemon configuration loaded from environment variables.
type Config struct {
	BotToken  string `envconfig:"BOT_TOKEN" required:"true"`
	ChatID    int64  `envconfig:"CHAT_ID" required:"true"`
	UserID    int64  `envconfig:"USER_ID" default:"1"`
	DBConnStr string `envconfig:"DB_CONN" required:"true"`
	Timezone  string `envconfig:"TIMEZONE" default:"UTC"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

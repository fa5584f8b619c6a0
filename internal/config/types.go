package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName        string `env:"DB_NAME,required,notEmpty"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"./migrations"`
	Port          string `env:"PORT,required,notEmpty"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	TenantID      string `env:"PLAYTOMIC_TENANT_ID"`
	ProjectID     string `env:"GCP_PROJECT"`

	Slack   SlackConfig
	Turso   TursoConfig
	Inngest InngestConfig
	Rating  RatingConfig
	Ranking RankingConfig

	InvitationTTL time.Duration `env:"INVITATION_TTL" envDefault:"72h"`
	ChallengeTTL  time.Duration `env:"CHALLENGE_TTL" envDefault:"168h"`
}

type SlackConfig struct {
	Token         string `env:"SLACK_BOT_TOKEN"`
	ChannelID     string `env:"SLACK_CHANNEL_ID"`
	SigningSecret string `env:"SLACK_SIGNING_SECRET"`
	ClubID        string `env:"SLACK_CLUB_ID"`
}

type TursoConfig struct {
	PrimaryURL string `env:"TURSO_PRIMARY_URL"`
	AuthToken  string `env:"TURSO_AUTH_TOKEN"`
}

type InngestConfig struct {
	AppID      string `env:"INNGEST_APP_ID" envDefault:"courtside"`
	SigningKey string `env:"INNGEST_SIGNING_KEY"`
	EventKey   string `env:"INNGEST_EVENT_KEY"`
}

// Enabled reports whether the Inngest workflows should be served.
func (c InngestConfig) Enabled() bool {
	return c.SigningKey != ""
}

type RatingConfig struct {
	KFactor            int `env:"RATING_K_FACTOR" envDefault:"32"`
	ProvisionalKFactor int `env:"RATING_PROVISIONAL_K_FACTOR" envDefault:"40"`
}

type RankingConfig struct {
	WinPoints  int `env:"RANKING_WIN_POINTS" envDefault:"1"`
	LossPoints int `env:"RANKING_LOSS_POINTS" envDefault:"0"`
}

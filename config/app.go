package config

type App struct {
	Port         string `env:"APP_PORT" default:"8080"`
	DatabaseURL  string `env:"DATABASE_URL,required"`
	JWTSecret    string `env:"JWT_SECRET" default:"local_dev_secret"`
	DiscogsToken string `env:"DISCOGS_TOKEN"`
	Env          string `env:"APP_ENV" default:"dev"`
}

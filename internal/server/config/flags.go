package config

import (
	"flag"

	"github.com/dmitrijs2005/talksy/internal/flagx"
)

// parseFlags overlays command-line flags from args.
//
// Supported flags:
//
//	-a string    HTTP bind address (e.g. ":3000")
//	-g string    gRPC health endpoint address
//	-driver str  database driver: pgx or sqlite
//	-d string    database DSN
//	-s string    token signing secret
//	-t duration  token lifetime (e.g. "168h")
//	-o string    allowed CORS origin
//	-prod        production mode (Secure cookies)
//	-conceal     answer unknown emails like wrong passwords
//	-migrate     run migrations at startup
//	-debug       debug logging
//
// Only these flags are parsed (flagx.FilterArgs), so -c/-config and flags of
// other components do not collide. Boolean flags take the -flag=value form.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-a", "-g", "-driver", "-d", "-s", "-t", "-o", "-prod", "-conceal", "-migrate", "-debug",
	})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC health endpoint address and port")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (pgx|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.DurationVar(&config.TokenTTL, "t", config.TokenTTL, "token lifetime")
	fs.StringVar(&config.AllowedOrigin, "o", config.AllowedOrigin, "allowed CORS origin")
	fs.BoolVar(&config.Production, "prod", config.Production, "production mode")
	fs.BoolVar(&config.ConcealUserExistence, "conceal", config.ConcealUserExistence, "hide whether an email is registered")
	fs.BoolVar(&config.RunMigrations, "migrate", config.RunMigrations, "run database migrations at startup")
	fs.BoolVar(&config.Debug, "debug", config.Debug, "debug logging")

	return fs.Parse(args)
}

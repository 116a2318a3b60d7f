// Package config loads runtime configuration for the talksy CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by -c or -config.
//  3. .env file and environment variables (TALKSY_SERVER_URL, TALKSY_STATE_DIR,
//     TALKSY_SESSION).
//  4. Command-line flags, applied by the CLI after loading.
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:3000",
//	  "state_dir": "/home/me/.talksy"
//	}
package config

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8080)
  - DatabaseURL: Connection string (required)
  - DatabaseType: "postgres" (default) or "sqlite"
  - JWTSecret: Shared secret of the identity service (required)
  - AdminKey: Value expected in the X-Admin-Key header (required)
  - TelegramToken / TelegramChatID: Admin notifications (optional)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-jwt-secret      JWT secret
	-admin-key       Admin key
	-telegram-token  Telegram bot token
	-telegram-chat   Telegram chat ID

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	JWT_SECRET       → -jwt-secret
	ADMIN_KEY        → -admin-key
	TELEGRAM_TOKEN   → -telegram-token
	TELEGRAM_CHAT_ID → -telegram-chat

CLI flags take precedence over environment variables. main loads a .env
file via godotenv before parsing, so a local .env behaves like exported
environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
  - ADMIN_KEY must be provided

DATABASE_TYPE, when supplied, must be "postgres" or "sqlite".
*/
package cliparse

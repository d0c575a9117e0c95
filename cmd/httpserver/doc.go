// Package main (cmd/httpserver) serves the personal trainer registration
// portal: the public form and intake API, and the Basic-auth protected admin
// list and CSV export.
//
// Configuration comes from the environment (optionally seeded from a .env
// file and a YAML file given with --config). The database connection string
// is the first non-empty of DATABASE_URL, POSTGRES_PRISMA_URL, POSTGRES_URL,
// POSTGRES_URL_NON_POOLING, POSTGRES_URL_NO_SSL and
// POSTGRES_URL_NON_POOLING_NO_SSL. Without one the server still starts, but
// registrations are rejected with a "not configured" error.
//
// Admin access requires ADMIN_PASSWORD (ADMIN_USER defaults to "admin"). When
// it is unset and VAULT_ADDR and VAULT_ADMIN_PATH are given, the credentials
// are read from that Vault KV v2 secret. With no password at all every admin
// request is denied.
//
// Photo uploads are enabled by S3_BUCKET, and Telegram notifications by
// TELEGRAM_BOT_TOKEN together with TELEGRAM_CHAT_ID.
//
// Example usage:
//
//	trainer-intake --listen-addr=0.0.0.0:8080 --metrics-addr=0.0.0.0:8090 --migrate --log-json
//
// Local development without a database:
//
//	ADMIN_PASSWORD=dev trainer-intake --dev-memory-store --log-debug
package main

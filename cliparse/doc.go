// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (godotenv); CLI
flags override environment variables.

# Config Fields

  - Port: Server listen port (default: 8080)
  - DatabaseURL: PostgreSQL connection string (required)
  - HostKeySalt: Secret for host key HMAC (required)
  - ImageDir: Local directory for stored option images (optional)
  - KafkaBrokers / KafkaTopic: Submission event feed (optional)

# Environment Variables

	PORT           → -p
	DATABASE_URL   → -d
	HOST_KEY_SALT  → --host-salt
	IMAGE_DIR      → --image-dir
	KAFKA_BROKERS  → --kafka-brokers
	KAFKA_TOPIC    → --kafka-topic

When brokers are set without a topic, the topic defaults to
"voteup.submissions".
*/
package cliparse

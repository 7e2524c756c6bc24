// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the VoteUp API server.

VoteUp is a real-time polling service. Hosts create votes of five types
(single choice, multiple choice, ranking, binary, scale); anonymous
participants respond once each and watch the tallies update live.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... HOST_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 8080 -d "postgres://..." --host-salt "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - HOST_KEY_SALT (--host-salt): Secret for host key HMAC

Optional settings:

  - PORT (-p): Server port (default: 8080)
  - IMAGE_DIR (--image-dir): Directory for option images (default: ./images)
  - KAFKA_BROKERS (--kafka-brokers): Comma-separated brokers; enables
    submission event publishing when set
  - KAFKA_TOPIC (--kafka-topic): Topic for submission events
    (default: voteup.submissions)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (votes, responses, live feed)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain types, request/response types, answer validation
  - ingest: Turning submitted answers into response rows
  - tally: Pure aggregation of responses into results
  - eligibility: The one-response-per-participant policy
  - participant: Client-side participant tokens and voted marks
  - livefeed: In-process change notification hub
  - store: PostgreSQL persistence
  - db: Schema creation
  - event: Kafka submission events
  - metrics: Prometheus instrumentation
  - ident: Host key generation and validation
  - cliparse: Configuration parsing
  - client: Go client library for the API

See package documentation for each component.
*/
package main

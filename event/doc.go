// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package event publishes accepted submissions to an optional Kafka feed
// for consumers outside this service. When no broker is configured the
// NopPublisher stands in and the submit path is unaffected.
package event

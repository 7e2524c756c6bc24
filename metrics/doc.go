// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics registers Prometheus instrumentation for the submit and
// aggregation paths. Scrape via the /metrics endpoint.
package metrics

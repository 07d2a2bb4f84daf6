// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

/*
Package sync orchestrates the periodic multi-project ad-metrics synchronization.

On each run the orchestrator walks every active project that is linked to an
external ad account and, for each one, drives a fixed set of rolling lookback
windows (7/14/30/60/90 days by default) through the meta-ads-sync operation.
Each window fetch stands alone: any failure is recorded as a failed window
outcome and the run moves on. After a project's windows are exhausted, the
aggregator derives a project status (success, partial, error), writes it onto
the project record together with last_sync_at, and appends one audit entry to
the sync log.

Key components:

  - WindowCatalog: pure function producing the lookback windows for a
    reference instant
  - WindowFetcher: adapter collapsing every fetch failure into a boolean
    window outcome
  - Pacer: fixed inter-window and inter-project delays that keep the run
    under the upstream rate budget
  - ProjectRunner: drives all windows for one project, in catalog order,
    without short-circuiting
  - StatusWriter: the single point where persistent state is mutated
  - Orchestrator: the per-run state machine (credential precondition, project
    loop, run summary)
  - Scheduler: periodic ticker plus the overlap-guarded manual trigger

Execution is fully sequential: one project at a time, one window at a time.
Parallel fan-out would need a shared concurrency-aware rate limiter across all
in-flight calls; fixed spacing achieves the same throttling with a total run
time that scales linearly with projects times windows.

Failure isolation is the core contract: a window cannot abort its project, and
a project cannot block the next one. The only fatal conditions are a missing
access credential and a failed eligible-project read, both of which abort the
run before any write.
*/
package sync

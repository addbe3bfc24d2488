// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package frame provides the cooperative scheduling used by animated
// effects: a [Scheduler] that runs callbacks on display frames or after
// intervals, and a [Task] that owns one re-arming callback chain with an
// explicit Start/Stop lifecycle.
//
// A Task guarantees that once Stop returns, no tick callback of the
// stopped chain runs, even if the scheduler already queued it.
//
// [Loop] is the real scheduler. [Manual] advances time only when told to
// and is meant for tests.
package frame

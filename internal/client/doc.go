// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync agent runtime.
//
// It wires local storage, the server adapter, the sync engine, and the
// background workers into a single process lifecycle with signal-based
// shutdown.
package client

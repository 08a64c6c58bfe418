// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package freq turns text into word counts.
//
// A Table keeps words in the order they were first seen. That order survives
// a JSON round trip and decides ties in Top, so the same input always yields
// the same ranking.
package freq

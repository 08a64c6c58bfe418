// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders a frequency report as text, JSON, YAML or a table.
package output

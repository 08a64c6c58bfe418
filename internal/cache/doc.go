// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache provides a file-based TTL cache of JSON documents used to
// avoid repeated category listings and analyses. Each entry is one file
// holding {"timestamp": <unix seconds>, "data": <payload>}; the stored
// timestamp, not the file mtime, decides staleness.
package cache

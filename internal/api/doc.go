// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package api is a small retrying client for the MediaWiki action API. Every
// call is a GET returning a JSON document; transport failures, non-2xx
// statuses and malformed bodies are retried at a fixed interval, while errors
// reported by the API itself are returned at once.
package api

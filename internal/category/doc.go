// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package category lists the article titles that belong to one category,
// following the API's continuation cursor until the listing is complete.
package category

package dedupe

// Package dedupe provides shared singleflight groups used to collapse
// concurrent loads of the same resource into one call.

import "golang.org/x/sync/singleflight"

// CatalogGroup deduplicates product catalog reads keyed by the file path.
var CatalogGroup singleflight.Group

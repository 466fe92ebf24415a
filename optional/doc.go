/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package optional provides a minimal two-variant optional value
// used by the cache packages to report lookup results.
package optional

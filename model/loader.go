// SPDX-License-Identifier: GPL-2.0-or-later

package model

import (
	"q2ref/bsp"
)

// LoadFunc fills a blank model from its asset. The model arrives with name,
// type and hunk already set; on error the registry discards the slot, so a
// loader never has to clean up after itself.
//
// The asset parsers themselves live outside this module and register here,
// one per model type.
type LoadFunc func(m *bsp.Model, name string) error

// Register installs the loader for one model type. A later Register for
// the same type replaces the earlier one.
func (r *Registry) Register(typ bsp.ModType, f LoadFunc) {
	r.loaders[typ] = f
}

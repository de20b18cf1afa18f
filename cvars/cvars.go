// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"q2ref/cvar"
)

var (
	RDynamic    *cvar.Cvar
	RFullBright *cvar.Cvar
	RLockPVS    *cvar.Cvar
	RNoVis      *cvar.Cvar
	RSpeeds     *cvar.Cvar
)

func init() {
	RDynamic = cvar.MustRegister("r_dynamic", "1", cvar.ARCHIVE)
	RFullBright = cvar.MustRegister("r_fullbright", "0", cvar.NONE)
	RLockPVS = cvar.MustRegister("r_lockpvs", "0", cvar.NONE)
	RNoVis = cvar.MustRegister("r_novis", "0", cvar.NONE)
	RSpeeds = cvar.MustRegister("r_speeds", "0", cvar.NONE)
}

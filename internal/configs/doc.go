// Package configs manages the user configuration of pm.
//
// Configuration lives in the data folder:
//
//   - $PMANAGER_HOME when set
//   - otherwise %APPDATA%, ~/Library/Preferences or $XDG_DATA_HOME
//     (~/.local/share), joined with "pmanager"
//
// The file is config.json, or config.toml when that file exists. It holds
// string overrides for a fixed set of keys:
//
//	fileStoragePath          encrypted store location (<data>/PMDATA)
//	doNotAskPassphraseInSec  key cache lifetime, 0 never expires (300)
//	importTimeoutInSec       remote import timeout (30)
//	auditLog                 append an audit entry per mutation (true)
//
// Overrides are merged over the defaults and weakly decoded into Settings,
// so "300" and 300 are both accepted. Unknown keys and undecodable values
// are reported as ErrInvalidConfig.
package configs

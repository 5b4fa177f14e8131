// Package config loads the cardstock configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/cardstock/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Quiet window: 200ms
//   - History limit: 100 entries
//   - Export directory: ~/Documents/cardstock
//   - Presets file: ~/.config/cardstock/presets.toml
//   - Autosave file: ~/.local/share/cardstock/autosave.json, every 30s
//   - Log level: info, log file: none (logs discarded)
//
// # TOML Format
//
//	quiet_window = "250ms"
//	max_history = 200          # 0 = default, negative = unlimited
//	export_dir = "~/cards"
//	presets_path = "~/.config/cardstock/presets.toml"
//	autosave_path = "~/.local/share/cardstock/autosave.json"
//	autosave_interval = "1m"   # "0s" disables autosave
//	log_level = "debug"
//	log_file = "~/.local/state/cardstock/cardstock.log"
//
// Every field is optional. Tilde expansion is performed on all paths.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors and malformed durations
//
// Missing config files are NOT an error. The editor works without any
// configuration.
package config

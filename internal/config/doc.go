// Package config loads the plotsync server configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/plotsync/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Listen address: 127.0.0.1:8765
//   - Websocket path: /comm
//   - Log level: info
//   - Log directory: ~/.local/share/plotsync/logs
//   - Server log: <log_dir>/plotsync.log
//   - Renderer module: bqplot ^0.4.1
//
// # TOML Format
//
//	listen = "127.0.0.1:8765"
//	path = "/comm"
//	log_level = "debug"
//	log_dir = "~/.local/share/plotsync/logs"
//	model_module = "bqplot"
//	model_module_version = "^0.4.1"
//
// All fields are optional. Values are trimmed, log_level is case-insensitive
// and must be one of debug, info, warn or error, and a path without a
// leading slash gets one. Tilde expansion applies to log_dir and the config
// location.
//
// model_module and model_module_version are stamped on every synchronized
// object as its _model_module/_view_module routing keys, so they must match
// the renderer package loaded in the browser.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors other
// than os.ErrNotExist, TOML parse errors ("parse config: ...") and unknown
// log levels. A missing file is not an error.
package config

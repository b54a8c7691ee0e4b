// Package config provides the configuration system for linestack.
//
// # Architecture
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← LINESTACK_*
//	├─────────────────────────────┤
//	│  2. User Settings           │  ← ~/.config/linestack/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A missing settings file is not an error.
//
// # Example
//
//	[editor]
//	output_path = "output.txt"
//
//	[history]
//	max_entries = 1000
//
//	[ui]
//	color = true
//	max_width = 0
//	prompt = "Enter your choice: "
//
//	[logging]
//	level = "info"
//	file = "/home/me/.local/state/linestack/linestack.log"
//
// # Sub-packages
//
//   - loader: TOML file and environment variable loading
//   - watcher: live reload of the settings file
package config

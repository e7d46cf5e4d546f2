// Package config loads editor settings from TOML or YAML.
//
// A file only needs the settings it changes; everything else keeps its
// default:
//
//	[editor]
//	fill_column = 80
//
//	[killring]
//	size = 30
//
//	[log]
//	level = "debug"
//
//	[keymap]
//	"C-c f" = "fill"
//	"C-x u" = ""        # unbind
//
//	[plugins]
//	scripts = ["~/.config/quill/init.lua"]
//
// Unknown keys are errors, so typos are reported instead of ignored.
// The watcher subpackage reloads a file when it changes.
package config

// Package config loads the settings of prepare-test and builds the
// WorkingContext of one invocation.
//
// Settings are optional. Without a file the defaults reproduce the
// classic layout: module "swamp", presets under <cwd>/cfg/<preset>.config,
// the log at <cwd>/swamp.log and four swap files under /home/utnso.
//
// Supported formats are YAML, JSON and TOML, chosen by file extension:
//
//	prep:
//	  module: swamp
//	  config_dir: cfg
//	  swap_files:
//	    - /home/utnso/swap1.bin
//	    - /home/utnso/swap2.bin
//	  log_level: debug
package config

// Package config loads ledly configuration from YAML files.
//
// Example file:
//
//	name_prefix: QHM-
//	scan_timeout: 2s
//	write_characteristic: ffd9
//	protocol: generic-rgb
//	log_level: info
//	protocol_log: /var/log/ledly/session.llog
//	state_file: ~/.config/ledly/state.json
//	devices:
//	  - name: QHM-0A1B
//	    alias: desk
//	  - name: QHM-77C2
//	    protocol: generic-rgb-legacy
//
// Command-line flags override file values.
package config

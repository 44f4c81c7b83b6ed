// Package config loads the optional taskdeck configuration file.
//
// Every value has a compiled-in default; the file at
// <user config dir>/taskdeck/config.yaml only overrides them. It is mainly
// useful for pointing the CLI at a staging deployment or moving the OAuth
// callback port.
package config

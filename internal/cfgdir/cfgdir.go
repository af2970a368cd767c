/*************************************************************************
 * Copyright 2024 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package cfgdir determines and holds paths for files in sabiql's config directory.
package cfgdir

import (
	"os"
	"path"
)

// files within the config directory
const (
	logName         string = "sabiql.log"
	connectionsName string = "connections.toml"
)

// all persistent data is stored in $os.UserConfigDir/sabiql/
// or local to the instantiation, if that fails
var ( // set by init
	cfgDir             string
	DefaultLogPath     string
	DefaultConnectionsPath string
)

// on startup, identify and cache the config directory
func init() {
	const cfgSubFolder = "sabiql"
	cd, err := os.UserConfigDir()
	if err != nil {
		cd = "."
	}
	cfgDir = path.Join(cd, cfgSubFolder)

	if err := os.MkdirAll(cfgDir, 0700); err != nil {
		pe, ok := err.(*os.PathError)
		if !ok || pe.Err != os.ErrExist {
			panic("failed to ensure config directory '" + cfgDir + "': " + err.Error())
		}
	}

	DefaultLogPath = path.Join(cfgDir, logName)
	DefaultConnectionsPath = path.Join(cfgDir, connectionsName)
}

// Dir returns the resolved configuration directory.
func Dir() string {
	return cfgDir
}

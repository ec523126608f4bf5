// Package source installs go-json as the default JSON driver when imported:
//
//	import _ "github.com/reoring/jtoken/source"
package source

import (
	"github.com/reoring/jtoken"
	drvgojson "github.com/reoring/jtoken/source/gojson"
)

// init lives in a separate package to avoid an import cycle with the root.
func init() { jtoken.SetJSONDriver(drvgojson.Driver()) }

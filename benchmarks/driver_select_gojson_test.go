//go:build gojson

package benchmarks_test

import (
	"github.com/reoring/jtoken"
	drv "github.com/reoring/jtoken/source/gojson"
)

func init() {
	jtoken.SetJSONDriver(drv.Driver())
}

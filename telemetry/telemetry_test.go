package telemetry

import "github.com/pthm-cable/meadow/config"

var testCfg *config.Config

func init() {
	testCfg = config.MustLoad("")
}

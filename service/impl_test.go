package service_test

import (
	"github.com/lixenwraith/segmole/audio"
	"github.com/lixenwraith/segmole/metrics"
	"github.com/lixenwraith/segmole/sensor"
	"github.com/lixenwraith/segmole/service"
)

var (
	_ service.Service = (*audio.SoundManager)(nil)
	_ service.Service = (*sensor.MQTTSource)(nil)
	_ service.Service = (*metrics.Server)(nil)
)

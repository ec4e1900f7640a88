package service

import (
	"runtime"
	"time"

	"jobboard/config"
	"jobboard/logger"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

type ServerService struct{}

// Status is the runtime snapshot exposed on the admin status endpoint.
type Status struct {
	AppVersion string  `json:"app_version"`
	GoVersion  string  `json:"go_version"`
	Uptime     uint64  `json:"uptime"`
	Cpu        float64 `json:"cpu"`
	CpuCores   int     `json:"cpu_cores"`
	Mem        struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	HostOS   string `json:"host_os"`
	HostArch string `json:"host_arch"`
	Now      int64  `json:"now"`
}

// GetStatus collects host metrics; partial collection failures degrade
// to zero values instead of failing the endpoint.
func (s *ServerService) GetStatus() *Status {
	status := &Status{
		AppVersion: config.GetVersion(),
		GoVersion:  runtime.Version(),
		HostOS:     runtime.GOOS,
		HostArch:   runtime.GOARCH,
		Now:        time.Now().Unix(),
	}

	if percents, err := cpu.Percent(0, false); err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}
	if cores, err := cpu.Counts(false); err != nil {
		logger.Warning("get cpu cores failed:", err)
	} else {
		status.CpuCores = cores
	}
	if upTime, err := host.Uptime(); err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}
	if memInfo, err := mem.VirtualMemory(); err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}
	return status
}

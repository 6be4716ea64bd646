package rpq

import (
	"fmt"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// GetSysInfo describes the machine a solution was computed on. Fields that
// cannot be read stay "unknown".
func GetSysInfo() SysInfo {
	info := SysInfo{Platform: "unknown", CPU: "unknown", RAM: "unknown"}
	if hostStat, err := host.Info(); err == nil {
		info.Platform = hostStat.Platform
	} else {
		Log(3, "Couldn't read host info: %s", err.Error())
	}
	if cpuStat, err := cpu.Info(); err == nil && len(cpuStat) > 0 {
		info.CPU = cpuStat[0].ModelName
	} else if err != nil {
		Log(3, "Couldn't read cpu info: %s", err.Error())
	}
	if vmStat, err := mem.VirtualMemory(); err == nil {
		info.RAM = fmt.Sprintf("%d GB", vmStat.Total/1024/1024/1024)
	} else {
		Log(3, "Couldn't read memory info: %s", err.Error())
	}
	return info
}

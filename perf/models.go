package perf

// SystemPerf is a single system performance reading pushed by the device
// over the websocket stream.
type SystemPerf struct {
	AvailablePages    int64 `json:"AvailablePages"`
	CommitLimit       int64 `json:"CommitLimit"`
	CommittedPages    int64 `json:"CommittedPages"`
	CPULoad           int   `json:"CpuLoad"`
	IOOtherSpeed      int64 `json:"IOOtherSpeed"`
	IOReadSpeed       int64 `json:"IOReadSpeed"`
	IOWriteSpeed      int64 `json:"IOWriteSpeed"`
	NonPagedPoolPages int64 `json:"NonPagedPoolPages"`
	PageSize          int   `json:"PageSize"`
	PagedPoolPages    int64 `json:"PagedPoolPages"`
	TotalPages        int64 `json:"TotalPages"`

	GPUData        GPUData        `json:"GPUData"`
	NetworkingData NetworkingData `json:"NetworkingData"`
}

// GPUData aggregates per-adapter GPU utilization.
type GPUData struct {
	AvailableAdapters []GPUAdapter `json:"AvailableAdapters"`
}

// GPUAdapter is the utilization of a single GPU adapter.
type GPUAdapter struct {
	Description         string    `json:"Description"`
	DedicatedMemory     int64     `json:"DedicatedMemory"`
	DedicatedMemoryUsed int64     `json:"DedicatedMemoryUsed"`
	SystemMemory        int64     `json:"SystemMemory"`
	SystemMemoryUsed    int64     `json:"SystemMemoryUsed"`
	EnginesUtilization  []float64 `json:"EnginesUtilization"`
}

// NetworkingData is the device's aggregate network throughput.
type NetworkingData struct {
	NetworkInBytes  int64 `json:"NetworkInBytes"`
	NetworkOutBytes int64 `json:"NetworkOutBytes"`
}

// MemoryUsedPages returns the number of committed pages relative to the total.
func (p SystemPerf) MemoryUsedPages() int64 {
	return p.TotalPages - p.AvailablePages
}

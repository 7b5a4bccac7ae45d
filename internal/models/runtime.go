package models

// RuntimeInfo - heartbeat торгового процесса (таблица runtime_info)
type RuntimeInfo struct {
	InvocationCount  *int64  `json:"invocation_count"`
	ProgramStartTime *string `json:"program_start_time"`
	LastUpdate       *string `json:"last_update"`
}

package health

// static configuration surfaced by the health endpoint
type Info struct {
	Version     string
	StoreDriver string
	LLMProvider string
}

type Response struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Version       string `json:"version,omitempty"`
	StoreDriver   string `json:"store_driver"`
	LLMProvider   string `json:"llm_provider"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

type PingResponse struct {
	Message string `json:"message"`
}

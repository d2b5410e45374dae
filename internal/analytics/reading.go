package analytics

// Reading is one telemetry sample as the upstream dataset endpoint returns
// it. JSON keys follow the upstream wire format. TMS (epoch seconds) is the
// authoritative ordering key; the display timestamp is informational.
type Reading struct {
	DID       string  `json:"DID"`
	Timestamp string  `json:"timestamp"`
	Tem1      float64 `json:"tem1"`
	Hum1      float64 `json:"hum1"`
	TMS       int64   `json:"TMS"`
}

package models

// JourneyEntry is one work-journey time record for a driver. An entry
// with an empty TimeOut is the driver's open journey; at most one open
// entry per driver is expected.
type JourneyEntry struct {
	ID        string `json:"_id,omitempty"`
	DriverID  string `json:"motoristaId"`
	Date      string `json:"data"` // YYYY-MM-DD
	MorningKM string `json:"kmManha,omitempty"`
	TimeIn    string `json:"horaEntrada"` // HH:MM
	TimeOut   string `json:"horaSaida"`   // HH:MM, empty while open
	Note      string `json:"bairroObs,omitempty"`
	CreatedAt string `json:"criadoEm,omitempty"`
}

// Closed reports whether the journey has a recorded exit time.
func (j *JourneyEntry) Closed() bool { return j.TimeOut != "" }

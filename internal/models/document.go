package models

// UserHeader carries the user identity on requests to the cloud service.
const UserHeader = "X-Chronos-User"

// RemoteDocument is what the cloud service stores for one user.
type RemoteDocument struct {
	Timers      []Snapshot `json:"timers"`
	LastUpdated int64      `json:"lastUpdated"`
}

func (d *RemoteDocument) Clone() *RemoteDocument {
	if d == nil {
		return nil
	}
	timers := make([]Snapshot, len(d.Timers))
	copy(timers, d.Timers)
	return &RemoteDocument{Timers: timers, LastUpdated: d.LastUpdated}
}

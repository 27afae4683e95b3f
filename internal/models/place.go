package models

// PlaceCandidate is a transient address/POI search suggestion. Candidates are
// never persisted; selecting one resolves it to a coordinate and a display
// address.
type PlaceCandidate struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	PlaceID  string `json:"placeId"`
}

// ResolvedPlace is the result of resolving a PlaceCandidate.
type ResolvedPlace struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"displayName"`
}

package dto

// BulletListResponse returns generated suggestion or summary content
// rendered as display-ready bullet lines.
type BulletListResponse struct {
	Bullets []string `json:"bullets"`
}

package domain

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Ticket is the normalized support request record. Upstream payloads may
// omit or mistype any field; after normalization every field is present
// and sanely typed.
type Ticket struct {
	ID                  string       `json:"id"`
	Title               string       `json:"title"`
	Description         string       `json:"description"`
	UserEmail           string       `json:"user_email"`
	Category            string       `json:"category"`
	Status              TicketStatus `json:"status"`
	CreatedAt           string       `json:"created_at"`
	UpdatedAt           string       `json:"updated_at"`
	LastUpdate          string       `json:"last_update"`
	ResolvedAt          *string      `json:"resolved_at"`
	ResolvedBy          *string      `json:"resolved_by"`
	SimilarityScore     float64      `json:"similarity_score"`
	Attachments         []Attachment `json:"attachments"`
	UserResolutionSteps string       `json:"user_resolution_steps"`
	ITResolutionSteps   string       `json:"it_resolution_steps"`
}

// Attachment references an uploaded file stored in S3.
type Attachment struct {
	ID         string `json:"id"`
	FileName   string `json:"file_name"`
	S3Key      string `json:"s3_key"`
	UploadedAt string `json:"uploaded_at"`
}

// SimilarTicket is a candidate produced by the similarity search. The
// score is display/sort metadata only and is never recomputed here.
type SimilarTicket struct {
	TicketID        string  `json:"ticket_id"`
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	SimilarityScore float64 `json:"similarity_score"`
}

// ResolutionBlock is the read-only resolution view derived from a
// normalized ticket.
type ResolutionBlock struct {
	TicketID            string       `json:"ticket_id"`
	Title               string       `json:"title"`
	UserResolutionSteps string       `json:"user_resolution_steps"`
	ITResolutionSteps   string       `json:"it_resolution_steps"`
	ResolvedAt          string       `json:"resolved_at"`
	ResolutionTime      string       `json:"resolution_time"`
	Attachments         []Attachment `json:"attachments"`
}

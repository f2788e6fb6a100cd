package normalize

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/nsight-itsm/assistant/internal/domain"
)

func TestTicketDefaults(t *testing.T) {
	t.Parallel()

	for _, raw := range []map[string]any{nil, {}} {
		got := Ticket(raw)
		if got.ID != "Unknown" {
			t.Errorf("ID = %q, want Unknown", got.ID)
		}
		if got.Title != "Untitled" {
			t.Errorf("Title = %q, want Untitled", got.Title)
		}
		if got.Description != "No description provided" {
			t.Errorf("Description = %q", got.Description)
		}
		if got.UserEmail != "Unknown User" {
			t.Errorf("UserEmail = %q", got.UserEmail)
		}
		if got.Category != "unknown" {
			t.Errorf("Category = %q", got.Category)
		}
		if got.Status != domain.TicketStatusOpen {
			t.Errorf("Status = %q, want open", got.Status)
		}
		if got.CreatedAt != "N/A" || got.UpdatedAt != "N/A" || got.LastUpdate != "N/A" {
			t.Errorf("timestamps = %q %q %q, want N/A sentinels", got.CreatedAt, got.UpdatedAt, got.LastUpdate)
		}
		if got.ResolvedAt != nil || got.ResolvedBy != nil {
			t.Error("resolved fields should be nil when absent")
		}
		if got.Attachments == nil || len(got.Attachments) != 0 {
			t.Errorf("Attachments = %#v, want empty non-nil slice", got.Attachments)
		}
	}
}

func TestTicketPreservesFalsyPresentValues(t *testing.T) {
	t.Parallel()

	got := Ticket(map[string]any{
		"title":       "",
		"description": "",
	})
	if got.Title != "" {
		t.Errorf("Title = %q, want empty string preserved", got.Title)
	}
	if got.Description != "" {
		t.Errorf("Description = %q, want empty string preserved", got.Description)
	}
}

func TestTicketNumericIDSurvives(t *testing.T) {
	t.Parallel()

	got := Ticket(map[string]any{"id": float64(12345)})
	if got.ID != "12345" {
		t.Errorf("ID = %q, want 12345", got.ID)
	}
}

func TestTicketBooleanResolvedAt(t *testing.T) {
	t.Parallel()

	got := Ticket(map[string]any{"resolved_at": false})
	if got.ResolvedAt != nil {
		t.Errorf("ResolvedAt = %v, want nil for boolean input", *got.ResolvedAt)
	}

	got = Ticket(map[string]any{"resolved_at": "2024-03-04T21:15:00Z"})
	if got.ResolvedAt == nil || *got.ResolvedAt != "2024-03-04T21:15:00Z" {
		t.Errorf("ResolvedAt = %v, want string timestamp kept", got.ResolvedAt)
	}
}

func TestTicketInvalidStatusCollapses(t *testing.T) {
	t.Parallel()

	got := Ticket(map[string]any{"status": "REOPENED"})
	if got.Status != domain.TicketStatusOpen {
		t.Errorf("Status = %q, want open", got.Status)
	}
}

func TestTicketAttachments(t *testing.T) {
	t.Parallel()

	got := Ticket(map[string]any{
		"attachments": []any{
			map[string]any{"id": "a1", "file_name": "log.txt", "s3_key": "k/log.txt", "uploaded_at": "2024-01-01"},
			"not a map",
		},
	})
	want := []domain.Attachment{{ID: "a1", FileName: "log.txt", S3Key: "k/log.txt", UploadedAt: "2024-01-01"}}
	if !reflect.DeepEqual(got.Attachments, want) {
		t.Errorf("Attachments = %#v, want %#v", got.Attachments, want)
	}
}

func TestTicketSimilarityScore(t *testing.T) {
	t.Parallel()

	got := Ticket(map[string]any{"similarity_score": "0.75"})
	if got.SimilarityScore != 0.75 {
		t.Errorf("SimilarityScore = %v, want 0.75", got.SimilarityScore)
	}
}

// Normalization must be idempotent: feeding a normalized ticket back
// through produces an identical record.
func TestTicketIdempotent(t *testing.T) {
	t.Parallel()

	first := Ticket(map[string]any{
		"id":          "T-10",
		"title":       "Broken VPN",
		"status":      "in_progress",
		"created_at":  "2024-03-01T10:00:00",
		"resolved_at": false,
	})

	encoded, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var roundTrip map[string]any
	if err := json.Unmarshal(encoded, &roundTrip); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	second := Ticket(roundTrip)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-normalization changed the record:\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

func TestTickets(t *testing.T) {
	t.Parallel()

	got := Tickets([]any{
		map[string]any{"id": "T-1"},
		"junk",
		map[string]any{"id": "T-2"},
	})
	if len(got) != 2 {
		t.Fatalf("got %d tickets, want 2", len(got))
	}
	if got[0].ID != "T-1" || got[1].ID != "T-2" {
		t.Errorf("ids = %q %q", got[0].ID, got[1].ID)
	}
}

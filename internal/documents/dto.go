package documents

import "time"

// DocumentResponse is the outward-facing representation of a document. The
// storage key stays server-side; files are fetched through the file endpoint.
type DocumentResponse struct {
	DocumentID string     `json:"documentId"`
	Title      string     `json:"title"`
	FileName   string     `json:"fileName"`
	MimeType   string     `json:"mimeType"`
	SizeBytes  int64      `json:"sizeBytes"`
	Region     string     `json:"region"`
	Status     string     `json:"status"`
	ReviewerID string     `json:"reviewerId,omitempty"`
	Review     string     `json:"review,omitempty"`
	Issue      string     `json:"issue,omitempty"`
	UploadedAt time.Time  `json:"uploadedAt"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
	OwnerName  string     `json:"ownerName,omitempty"`
	OwnerRole  string     `json:"ownerRole,omitempty"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID: doc.ID,
		Title:      doc.Title,
		FileName:   doc.FileName,
		MimeType:   doc.MimeType,
		SizeBytes:  doc.SizeBytes,
		Region:     doc.Region,
		Status:     doc.Status,
		ReviewerID: doc.ReviewerID,
		Review:     doc.Review,
		Issue:      doc.Issue,
		UploadedAt: doc.UploadedAt,
		VerifiedAt: doc.VerifiedAt,
		OwnerName:  doc.OwnerName,
		OwnerRole:  doc.OwnerRole,
	}
}

func toResponses(list []Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(list))
	for _, doc := range list {
		out = append(out, toResponse(doc))
	}
	return out
}

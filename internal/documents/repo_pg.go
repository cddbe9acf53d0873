package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const docColumns = `
d.id, d.user_id, d.title, d.file_name, d.storage_key, d.mime_type, d.size_bytes,
d.region, d.status, d.reviewer_id, d.review, d.issue, d.uploaded_at, d.verified_at,
u.name, u.role`

const docFrom = `
FROM documents d
JOIN users u ON u.id = d.user_id`

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id, user_id, title, file_name, storage_key, mime_type, size_bytes,
    region, status, uploaded_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	status := doc.Status
	if status == "" {
		status = StatusPending
	}

	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.Title,
		doc.FileName,
		doc.StorageKey,
		doc.MimeType,
		doc.SizeBytes,
		doc.Region,
		status,
		doc.UploadedAt,
	)
	return err
}

// GetByID fetches a document with no region scoping.
func (r *PGRepo) GetByID(ctx context.Context, documentID string) (Document, error) {
	const query = `SELECT ` + docColumns + docFrom + `
WHERE d.id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, documentID))
}

// GetInRegion fetches a document only if it belongs to the given region.
func (r *PGRepo) GetInRegion(ctx context.Context, documentID, region string) (Document, error) {
	const query = `SELECT ` + docColumns + docFrom + `
WHERE d.id = $1 AND d.region = $2
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, documentID, region))
}

// ListByOwner lists a user's documents, newest first.
func (r *PGRepo) ListByOwner(ctx context.Context, userID string) ([]Document, error) {
	const query = `SELECT ` + docColumns + docFrom + `
WHERE d.user_id = $1
ORDER BY d.uploaded_at DESC`
	return r.queryDocs(ctx, query, userID)
}

// ListByRegion lists every document in a region, newest first.
func (r *PGRepo) ListByRegion(ctx context.Context, region string) ([]Document, error) {
	const query = `SELECT ` + docColumns + docFrom + `
WHERE d.region = $1
ORDER BY d.uploaded_at DESC`
	return r.queryDocs(ctx, query, region)
}

// ListAll lists every document system-wide, newest first.
func (r *PGRepo) ListAll(ctx context.Context) ([]Document, error) {
	const query = `SELECT ` + docColumns + docFrom + `
ORDER BY d.uploaded_at DESC`
	return r.queryDocs(ctx, query)
}

// Verify applies the decision as a single conditional update so two racing
// reviewers cannot both win; the affected-row count tells the winner apart.
func (r *PGRepo) Verify(ctx context.Context, update VerifyUpdate) error {
	const query = `
UPDATE documents
SET status = $1,
    reviewer_id = $2,
    review = NULLIF($3, ''),
    issue = NULLIF($4, ''),
    verified_at = now()
WHERE id = $5 AND region = $6 AND status = 'pending'`

	res, err := r.DB.ExecContext(ctx, query,
		update.Status,
		update.ReviewerID,
		update.Review,
		update.Issue,
		update.DocumentID,
		update.Region,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	// Lost the update: either the document is invisible in this region or it
	// was already decided. Region mismatch must read as not-found.
	const probe = `SELECT 1 FROM documents WHERE id = $1 AND region = $2 LIMIT 1`
	var one int
	err = r.DB.QueryRowContext(ctx, probe, update.DocumentID, update.Region).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrInvalidTransition
}

// CountByStatus returns the number of documents per status.
func (r *PGRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	const query = `
SELECT status, COUNT(*)
FROM documents
GROUP BY status`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// CountByRegionStatus returns per-region counts of each status.
func (r *PGRepo) CountByRegionStatus(ctx context.Context) (map[string]map[string]int, error) {
	const query = `
SELECT region, status, COUNT(*)
FROM documents
GROUP BY region, status`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]map[string]int)
	for rows.Next() {
		var region, status string
		var count int
		if err := rows.Scan(&region, &status, &count); err != nil {
			return nil, err
		}
		if counts[region] == nil {
			counts[region] = make(map[string]int)
		}
		counts[region][status] = count
	}
	return counts, rows.Err()
}

func (r *PGRepo) queryDocs(ctx context.Context, query string, args ...any) ([]Document, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (r *PGRepo) scanOne(row *sql.Row) (Document, error) {
	doc, err := scanDocument(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

func scanDocument(scan func(dest ...any) error) (Document, error) {
	var doc Document
	var reviewerID, review, issue sql.NullString
	var verifiedAt sql.NullTime
	err := scan(
		&doc.ID,
		&doc.UserID,
		&doc.Title,
		&doc.FileName,
		&doc.StorageKey,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.Region,
		&doc.Status,
		&reviewerID,
		&review,
		&issue,
		&doc.UploadedAt,
		&verifiedAt,
		&doc.OwnerName,
		&doc.OwnerRole,
	)
	if err != nil {
		return Document{}, err
	}
	doc.ReviewerID = reviewerID.String
	doc.Review = review.String
	doc.Issue = issue.String
	if verifiedAt.Valid {
		doc.VerifiedAt = &verifiedAt.Time
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)

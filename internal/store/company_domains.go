package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Cached domains older than this are treated as missing so that a
// company that has since registered (or lost) a domain gets re-checked.
const domainTTL = 30 * 24 * time.Hour

// GetCompanyDomain returns the cached domain for a company, or "" when
// there is no fresh entry.
func GetCompanyDomain(ctx context.Context, db *sql.DB, company string) (string, error) {
	company = normalizeCompanyKey(company)
	if company == "" {
		return "", nil
	}

	var dom, fetchedAt string
	err := db.QueryRowContext(ctx,
		`SELECT domain, fetched_at FROM company_domains WHERE company = ? LIMIT 1;`,
		company,
	).Scan(&dom, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	t, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil || time.Since(t) > domainTTL {
		return "", nil
	}
	return strings.TrimSpace(dom), nil
}

func UpsertCompanyDomain(ctx context.Context, db *sql.DB, company, dom string) error {
	company = normalizeCompanyKey(company)
	dom = strings.ToLower(strings.TrimSpace(dom))

	if company == "" || dom == "" {
		return nil
	}

	_, err := db.ExecContext(ctx, `
INSERT INTO company_domains(company, domain, fetched_at)
VALUES(?,?,?)
ON CONFLICT(company) DO UPDATE SET
  domain = excluded.domain,
  fetched_at = excluded.fetched_at;
`, company, dom, time.Now().UTC().Format(time.RFC3339))

	return err
}

func normalizeCompanyKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ToLower(s)
	return s
}

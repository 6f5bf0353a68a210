// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps a local SQLite record of every paper ever fetched,
// with starring and simple search for ad-hoc reading. The archive is
// best-effort: the daily snapshot never depends on it.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Carolzhangzz/paper-daily/pkg/types"
)

const dbFile = "papers.db"

// Archive manages the papers SQLite database.
type Archive struct {
	db *sql.DB
}

// Open opens or creates the archive database at dataDir/papers.db and
// ensures the schema exists.
func Open(dataDir string) (*Archive, error) {
	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	a := &Archive{db: db}
	if err := a.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}
	return a, nil
}

// Close releases the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) createSchema() error {
	_, err := a.db.Exec(`CREATE TABLE IF NOT EXISTS papers (
		arxiv_id     TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		authors      TEXT DEFAULT '[]',
		abstract     TEXT DEFAULT '',
		categories   TEXT DEFAULT '[]',
		url          TEXT DEFAULT '',
		pdf_url      TEXT DEFAULT '',
		published    TEXT DEFAULT '',
		source       TEXT DEFAULT 'arxiv',
		fetched_date TEXT NOT NULL,
		starred      INTEGER DEFAULT 0
	)`)
	return err
}

// InsertPapers records the papers under fetchedDate, keeping first-seen rows
// on identifier conflict (INSERT OR IGNORE). It returns the number of rows
// actually inserted.
func (a *Archive) InsertPapers(ctx context.Context, fetchedDate string, papers []types.Paper) (int, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO papers
		(arxiv_id, title, authors, abstract, categories, url, pdf_url, published, source, fetched_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, p := range papers {
		authors, err := json.Marshal(orEmpty(p.Authors))
		if err != nil {
			return inserted, fmt.Errorf("marshaling authors for %s: %w", p.ArxivID, err)
		}
		categories, err := json.Marshal(orEmpty(p.Categories))
		if err != nil {
			return inserted, fmt.Errorf("marshaling categories for %s: %w", p.ArxivID, err)
		}

		res, err := stmt.ExecContext(ctx, p.ArxivID, p.Title, string(authors), p.Abstract,
			string(categories), p.URL, p.PDFURL, p.Published, p.Source, fetchedDate)
		if err != nil {
			return inserted, fmt.Errorf("inserting %s: %w", p.ArxivID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("committing inserts: %w", err)
	}
	return inserted, nil
}

// ArchivedPaper is a Paper plus its archive bookkeeping columns.
type ArchivedPaper struct {
	types.Paper
	FetchedDate string `json:"fetched_date"`
	Starred     bool   `json:"starred"`
}

// QueryOptions filters Papers. Zero values mean "no filter".
type QueryOptions struct {
	// Date filters by the run date the paper was first archived under.
	Date string
	// Category matches one tag in the category set.
	Category string
	// Search is a case-insensitive substring match on title or abstract.
	Search string
	// StarredOnly restricts to starred papers and ignores Date.
	StarredOnly bool
}

// Papers queries the archive, newest publications first with HuggingFace
// trending papers surfaced ahead of plain arXiv rows (source DESC).
func (a *Archive) Papers(ctx context.Context, opts QueryOptions) ([]ArchivedPaper, error) {
	query := `SELECT arxiv_id, title, authors, abstract, categories, url, pdf_url,
		published, source, fetched_date, starred FROM papers`
	var conds []string
	var args []any

	if opts.StarredOnly {
		conds = append(conds, "starred = 1")
	} else if opts.Date != "" {
		conds = append(conds, "fetched_date = ?")
		args = append(args, opts.Date)
	}
	if opts.Category != "" {
		conds = append(conds, "categories LIKE ?")
		args = append(args, `%"`+opts.Category+`"%`)
	}
	if opts.Search != "" {
		conds = append(conds, "(title LIKE ? OR abstract LIKE ?)")
		needle := "%" + opts.Search + "%"
		args = append(args, needle, needle)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY source DESC, published DESC"

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []ArchivedPaper
	for rows.Next() {
		var p ArchivedPaper
		var authors, categories string
		var starred int
		if err := rows.Scan(&p.ArxivID, &p.Title, &authors, &p.Abstract, &categories,
			&p.URL, &p.PDFURL, &p.Published, &p.Source, &p.FetchedDate, &starred); err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		if err := json.Unmarshal([]byte(authors), &p.Authors); err != nil {
			return nil, fmt.Errorf("parsing authors for %s: %w", p.ArxivID, err)
		}
		if err := json.Unmarshal([]byte(categories), &p.Categories); err != nil {
			return nil, fmt.Errorf("parsing categories for %s: %w", p.ArxivID, err)
		}
		p.Starred = starred != 0
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// ToggleStar flips the starred flag on one paper and returns the new state.
func (a *Archive) ToggleStar(ctx context.Context, arxivID string) (bool, error) {
	var starred int
	err := a.db.QueryRowContext(ctx, "SELECT starred FROM papers WHERE arxiv_id = ?", arxivID).Scan(&starred)
	if err == sql.ErrNoRows {
		return false, fmt.Errorf("paper %s not in archive", arxivID)
	}
	if err != nil {
		return false, fmt.Errorf("looking up %s: %w", arxivID, err)
	}

	next := 1 - starred
	if _, err := a.db.ExecContext(ctx, "UPDATE papers SET starred = ? WHERE arxiv_id = ?", next, arxivID); err != nil {
		return false, fmt.Errorf("updating star for %s: %w", arxivID, err)
	}
	return next != 0, nil
}

// Stats summarizes one run date.
type Stats struct {
	Total      int            `json:"total"`
	Categories map[string]int `json:"categories"`
	Starred    int            `json:"starred"`
}

// Stats counts the date's papers overall and per category tag, plus the
// all-time starred count.
func (a *Archive) Stats(ctx context.Context, date string, categories []string) (Stats, error) {
	st := Stats{Categories: make(map[string]int)}

	if err := a.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM papers WHERE fetched_date = ?", date).Scan(&st.Total); err != nil {
		return st, fmt.Errorf("counting papers: %w", err)
	}

	for _, tag := range categories {
		var n int
		if err := a.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM papers WHERE fetched_date = ? AND categories LIKE ?",
			date, `%"`+tag+`"%`).Scan(&n); err != nil {
			return st, fmt.Errorf("counting category %s: %w", tag, err)
		}
		st.Categories[tag] = n
	}

	if err := a.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM papers WHERE starred = 1").Scan(&st.Starred); err != nil {
		return st, fmt.Errorf("counting starred: %w", err)
	}
	return st, nil
}

// Dates returns the distinct run dates in the archive, newest first,
// capped at limit when positive.
func (a *Archive) Dates(ctx context.Context, limit int) ([]string, error) {
	query := "SELECT DISTINCT fetched_date FROM papers ORDER BY fetched_date DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning date row: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// orEmpty keeps list columns as "[]" rather than "null" in the database.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

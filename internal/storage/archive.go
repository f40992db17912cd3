package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/jackc/pgx/v4/stdlib" // register the pgx driver

	"docscrape/pkg/models"
)

const schema = `
	CREATE TABLE IF NOT EXISTS articles (
		url           TEXT PRIMARY KEY,
		title         TEXT,
		word_count    INTEGER,
		section_count INTEGER,
		breadcrumbs   TEXT,
		last_modified TEXT,
		extracted_at  TEXT,
		success       BOOLEAN,
		error         TEXT,
		full_text     TEXT
	)`

// Storage archives extraction results to Postgres.
type Storage struct {
	db *sql.DB
}

// Open connects to the database, waiting for it to come up, and makes
// sure the articles table exists.
func Open(databaseURL string) (*Storage, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 5; i++ {
		db, err = sql.Open("pgx", databaseURL)
		if err == nil {
			if err = db.Ping(); err == nil {
				break
			}
		}
		log.Warnf("waiting for database... (%v)", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create articles table: %w", err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// StartArticleWorker consumes extraction results and archives them in
// batches, flushing on size or on a ticker. The returned channel closes
// after the final flush, once dataChan is closed.
func (s *Storage) StartArticleWorker(dataChan <-chan models.Article) <-chan struct{} {
	const (
		batchSize    = 50
		batchTimeout = 2 * time.Second
	)

	done := make(chan struct{})
	go func() {
		defer close(done)

		buffer := make([]models.Article, 0, batchSize)
		ticker := time.NewTicker(batchTimeout)
		defer ticker.Stop()

		flush := func() {
			if len(buffer) == 0 {
				return
			}
			if err := s.saveBatch(buffer); err != nil {
				log.Errorf("archive batch failed: %v", err)
			} else {
				log.Debugf("archived batch of %d articles", len(buffer))
			}
			buffer = buffer[:0]
		}

		for {
			select {
			case art, ok := <-dataChan:
				if !ok {
					flush()
					return
				}
				buffer = append(buffer, art)
				if len(buffer) >= batchSize {
					flush()
				}
			case <-ticker.C:
				flush()
			}
		}
	}()
	return done
}

func (s *Storage) saveBatch(batch []models.Article) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO articles (url, title, word_count, section_count, breadcrumbs,
		                      last_modified, extracted_at, success, error, full_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (url) DO UPDATE SET
			title = EXCLUDED.title,
			word_count = EXCLUDED.word_count,
			section_count = EXCLUDED.section_count,
			breadcrumbs = EXCLUDED.breadcrumbs,
			last_modified = EXCLUDED.last_modified,
			extracted_at = EXCLUDED.extracted_at,
			success = EXCLUDED.success,
			error = EXCLUDED.error,
			full_text = EXCLUDED.full_text`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range batch {
		_, err := stmt.Exec(
			a.URL,
			a.Title,
			a.WordCount,
			len(a.Sections),
			strings.Join(a.Breadcrumbs, " > "),
			a.LastModified,
			a.ExtractedAt,
			a.Success,
			a.Error,
			a.FullText,
		)
		if err != nil {
			log.Errorf("error archiving %s: %v", a.URL, err)
		}
	}

	return tx.Commit()
}

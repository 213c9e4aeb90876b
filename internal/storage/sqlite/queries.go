package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/yegors/poh-perf/pkg/logger"
)

// QueryStorage persists the history of performance queries
type QueryStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewQueryStorage creates a new SQLite query history storage
func NewQueryStorage(db *sql.DB, logger *logger.Logger) (*QueryStorage, error) {
	storage := &QueryStorage{
		db:     db,
		logger: logger.Named("sqlite-queries"),
	}

	if err := storage.initDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize query storage: %w", err)
	}

	return storage, nil
}

// initDB initializes the database tables
func (s *QueryStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS performance_queries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query_type TEXT NOT NULL,
			pressure_alt_ft REAL NOT NULL,
			temperature_c REAL NOT NULL,
			weight_lb REAL NOT NULL,
			ground_roll_ft REAL,
			total_distance_ft REAL,
			gradient_ft_per_nm REAL,
			status TEXT NOT NULL DEFAULT 'ok',
			error_detail TEXT,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create performance_queries table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_perf_queries_type ON performance_queries(query_type)`,
		`CREATE INDEX IF NOT EXISTS idx_perf_queries_status ON performance_queries(status)`,
		`CREATE INDEX IF NOT EXISTS idx_perf_queries_created_at ON performance_queries(created_at)`,
	}

	for _, indexSQL := range indexes {
		_, err = s.db.Exec(indexSQL)
		if err != nil {
			return fmt.Errorf("failed to create query index: %w", err)
		}
	}

	return nil
}

// StoreQuery stores a query record and returns its ID
func (s *QueryStorage) StoreQuery(record *QueryRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO performance_queries
		(query_type, pressure_alt_ft, temperature_c, weight_lb, ground_roll_ft, total_distance_ft, gradient_ft_per_nm, status, error_detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.QueryType,
		record.PressureAltFt,
		record.TemperatureC,
		record.WeightLb,
		nullableFloat(record.GroundRollFt),
		nullableFloat(record.TotalDistanceFt),
		nullableFloat(record.GradientFtPerNM),
		record.Status,
		record.ErrorDetail,
		record.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert query record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return id, nil
}

// GetRecentQueries returns the most recent queries across all types
func (s *QueryStorage) GetRecentQueries(limit int) ([]*QueryRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, query_type, pressure_alt_ft, temperature_c, weight_lb, ground_roll_ft, total_distance_ft, gradient_ft_per_nm, status, error_detail, created_at
		FROM performance_queries
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent queries: %w", err)
	}
	defer rows.Close()

	return s.scanQueryRows(rows)
}

// GetQueriesByType returns recent queries of a specific type
func (s *QueryStorage) GetQueriesByType(queryType string, limit int) ([]*QueryRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, query_type, pressure_alt_ft, temperature_c, weight_lb, ground_roll_ft, total_distance_ft, gradient_ft_per_nm, status, error_detail, created_at
		FROM performance_queries
		WHERE query_type = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		queryType, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query queries by type: %w", err)
	}
	defer rows.Close()

	return s.scanQueryRows(rows)
}

// GetQueriesByTimeRange returns queries within a time range
func (s *QueryStorage) GetQueriesByTimeRange(startTime, endTime time.Time) ([]*QueryRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, query_type, pressure_alt_ft, temperature_c, weight_lb, ground_roll_ft, total_distance_ft, gradient_ft_per_nm, status, error_detail, created_at
		FROM performance_queries
		WHERE created_at BETWEEN ? AND ?
		ORDER BY created_at DESC, id DESC`,
		startTime.Format(time.RFC3339), endTime.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query queries by time range: %w", err)
	}
	defer rows.Close()

	return s.scanQueryRows(rows)
}

// scanQueryRows scans database rows into QueryRecord structs
func (s *QueryStorage) scanQueryRows(rows *sql.Rows) ([]*QueryRecord, error) {
	var records []*QueryRecord
	for rows.Next() {
		var record QueryRecord
		var createdAt string
		var groundRoll, totalDistance, gradient sql.NullFloat64
		var errorDetail sql.NullString

		if err := rows.Scan(
			&record.ID,
			&record.QueryType,
			&record.PressureAltFt,
			&record.TemperatureC,
			&record.WeightLb,
			&groundRoll,
			&totalDistance,
			&gradient,
			&record.Status,
			&errorDetail,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan query record: %w", err)
		}

		var err error
		record.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		if groundRoll.Valid {
			record.GroundRollFt = &groundRoll.Float64
		}
		if totalDistance.Valid {
			record.TotalDistanceFt = &totalDistance.Float64
		}
		if gradient.Valid {
			record.GradientFtPerNM = &gradient.Float64
		}
		if errorDetail.Valid {
			record.ErrorDetail = errorDetail.String
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}

// nullableFloat converts an optional float into a driver-friendly value
func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

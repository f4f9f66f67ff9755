package storage

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"poolcalc/models"
	"poolcalc/utils"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var db *sql.DB

func InitDB() *sql.DB {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	connStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		user, password, dbname, host, port)

	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Set connection pool settings optimized for light server load
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err = db.Ping(); err != nil {
		log.Fatal("Database is unreachable:", err)
	}

	return db
}

func GetDB() *sql.DB {
	return db
}

// SaveSession stores a login session. When multiple sessions are not
// allowed, existing sessions of the user are removed first.
func SaveSession(db *sql.DB, session *models.Session, allowMultipleSessions bool) error {
	if !allowMultipleSessions {
		if _, err := db.Exec(`DELETE FROM session WHERE user_id = $1`, session.UserID); err != nil {
			return fmt.Errorf("failed to delete existing sessions: %v", err)
		}
	}

	_, err := db.Exec(`
		INSERT INTO session (user_id, session_id, host_name, ip_address, timestp, expires_at, refresh_token, refresh_token_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		session.UserID, session.SessionID, session.HostName, session.IPAddress,
		session.Timestamp, session.ExpiresAt, session.RefreshToken, session.RefreshTokenExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to save session: %v", err)
	}
	return nil
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	var user models.User
	err := db.QueryRow(`
		SELECT id, email, password, first_name, last_name, is_admin, suspended
		FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName, &user.IsAdmin, &user.Suspended)
	if err != nil {
		return nil, fmt.Errorf("user not found: %v", err)
	}
	return &user, nil
}

// GetUserBySessionID resolves a session token to its user, rejecting
// expired sessions.
func GetUserBySessionID(db *sql.DB, sessionID string) (*models.User, error) {
	var user models.User
	err := db.QueryRow(`
		SELECT u.id, u.email, u.password, u.first_name, u.last_name, u.is_admin, u.suspended
		FROM session s
		JOIN users u ON u.id = s.user_id
		WHERE s.session_id = $1 AND s.expires_at > NOW()`, sessionID).
		Scan(&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName, &user.IsAdmin, &user.Suspended)
	if err != nil {
		return nil, fmt.Errorf("session not found: %v", err)
	}
	return &user, nil
}

func GetUserSessionCount(db *sql.DB, userID int) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM session WHERE user_id = $1 AND refresh_token_expires_at > NOW()`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %v", err)
	}
	return count, nil
}

func DeleteSessionByID(db *sql.DB, sessionID string) error {
	_, err := db.Exec(`DELETE FROM session WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %v", err)
	}
	return nil
}

// CleanupExpiredSessions removes sessions whose refresh tokens expired more
// than a day ago. Runs from the daily maintenance job.
func CleanupExpiredSessions(db *sql.DB) (int64, error) {
	result, err := db.Exec(`DELETE FROM session WHERE refresh_token_expires_at < NOW() - INTERVAL '24 hours'`)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup sessions: %v", err)
	}
	return result.RowsAffected()
}

// SaveEstimate persists a generated proposal and returns its row id.
func SaveEstimate(db *sql.DB, est *models.SavedEstimate) (int, error) {
	ctx, cancel := utils.GetDefaultQueryContext(nil)
	defer cancel()

	var id int
	err := db.QueryRowContext(ctx, `
		INSERT INTO estimates (reference, profile_id, customer_name, customer_phone, customer_email, address, total_cost, payload, generation_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id`,
		est.Reference, est.ProfileID, est.CustomerName, est.CustomerPhone,
		est.CustomerEmail, est.Address, est.TotalCost, est.Payload, est.GenerationDate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save estimate: %v", err)
	}
	return id, nil
}

// GetEstimateByReference loads a saved proposal, payload included.
func GetEstimateByReference(db *sql.DB, reference string) (*models.SavedEstimate, error) {
	ctx, cancel := utils.GetFastQueryContext(nil)
	defer cancel()

	var est models.SavedEstimate
	err := db.QueryRowContext(ctx, `
		SELECT id, reference, profile_id, customer_name, customer_phone, customer_email, address, total_cost, payload, generation_date, created_at
		FROM estimates WHERE reference = $1`, reference).
		Scan(&est.ID, &est.Reference, &est.ProfileID, &est.CustomerName, &est.CustomerPhone,
			&est.CustomerEmail, &est.Address, &est.TotalCost, &est.Payload, &est.GenerationDate, &est.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &est, nil
}

// ListEstimates returns saved proposals newest first, without payloads.
func ListEstimates(db *sql.DB, limit int) ([]models.SavedEstimate, error) {
	ctx, cancel := utils.GetDefaultQueryContext(nil)
	defer cancel()

	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, reference, profile_id, customer_name, customer_phone, customer_email, address, total_cost, generation_date, created_at
		FROM estimates ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimates: %v", err)
	}
	defer rows.Close()

	var estimates []models.SavedEstimate
	for rows.Next() {
		var est models.SavedEstimate
		if err := rows.Scan(&est.ID, &est.Reference, &est.ProfileID, &est.CustomerName, &est.CustomerPhone,
			&est.CustomerEmail, &est.Address, &est.TotalCost, &est.GenerationDate, &est.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan estimate: %v", err)
		}
		estimates = append(estimates, est)
	}
	return estimates, rows.Err()
}

func DeleteEstimate(db *sql.DB, reference string) error {
	result, err := db.Exec(`DELETE FROM estimates WHERE reference = $1`, reference)
	if err != nil {
		return fmt.Errorf("failed to delete estimate: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CleanupOldEstimates removes saved proposals older than the retention
// period. Runs from the daily maintenance job. A non-positive retention
// means estimates are kept forever and nothing is deleted.
func CleanupOldEstimates(db *sql.DB, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	result, err := db.Exec(`DELETE FROM estimates WHERE created_at < NOW() - ($1 || ' days')::INTERVAL`, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup estimates: %v", err)
	}
	return result.RowsAffected()
}

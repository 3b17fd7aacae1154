package supabase

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/models"
)

// DatabaseClient is the project ledger. Every query is scoped by owner_id;
// there is no cross-user read path.
type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// CreateProject inserts the full locked record in one statement. This is the
// last step of the enhancement pipeline: if it never runs, the uploaded
// assets are inert orphans with no reachable URL.
func (d *DatabaseClient) CreateProject(project *models.Project) (*models.Project, error) {
	err := d.db.QueryRow(`
		INSERT INTO projects (id, owner_id, style_id, status, original_path, preview_path, preview_url, vision)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, project.ID, project.OwnerID, project.StyleID, project.Status,
		project.OriginalPath, project.PreviewPath, project.PreviewURL, project.Vision,
	).Scan(&project.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

func (d *DatabaseClient) GetProject(projectID, ownerID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := d.db.QueryRow(`
		SELECT id, owner_id, style_id, status, original_path, preview_path, preview_url,
		       download_url, vision, payment_reference, created_at, unlocked_at
		FROM projects
		WHERE id = $1 AND owner_id = $2
	`, projectID, ownerID).Scan(
		&project.ID, &project.OwnerID, &project.StyleID, &project.Status,
		&project.OriginalPath, &project.PreviewPath, &project.PreviewURL,
		&project.DownloadURL, &project.Vision, &project.PaymentReference,
		&project.CreatedAt, &project.UnlockedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

func (d *DatabaseClient) ListProjects(ownerID uuid.UUID) ([]models.Project, error) {
	rows, err := d.db.Query(`
		SELECT id, owner_id, style_id, status, original_path, preview_path, preview_url,
		       download_url, vision, payment_reference, created_at, unlocked_at
		FROM projects
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID, &project.OwnerID, &project.StyleID, &project.Status,
			&project.OriginalPath, &project.PreviewPath, &project.PreviewURL,
			&project.DownloadURL, &project.Vision, &project.PaymentReference,
			&project.CreatedAt, &project.UnlockedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, nil
}

// UnlockProject flips the record to unlocked and binds the payment
// reference, conditional on the record still being locked. Two concurrent
// unlocks cannot both succeed: the second sees zero rows affected and gets
// ErrProjectAlreadyUnlocked instead of overwriting the first write.
func (d *DatabaseClient) UnlockProject(projectID, ownerID uuid.UUID, downloadURL, paymentReference string, unlockedAt time.Time) error {
	result, err := d.db.Exec(`
		UPDATE projects
		SET status = $1, download_url = $2, payment_reference = $3, unlocked_at = $4
		WHERE id = $5 AND owner_id = $6 AND status = $7
	`, models.StatusUnlocked, downloadURL, paymentReference, unlockedAt, projectID, ownerID, models.StatusLocked)
	if err != nil {
		return fmt.Errorf("failed to unlock project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		// Distinguish a lost race from a bad id.
		if _, err := d.GetProject(projectID, ownerID); err != nil {
			return err
		}
		return models.ErrProjectAlreadyUnlocked
	}

	return nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

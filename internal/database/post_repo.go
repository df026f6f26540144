package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"inkwell-backend/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

// PostRepo handles post database operations
type PostRepo struct{}

// NewPostRepo creates a new post repository
func NewPostRepo() *PostRepo {
	return &PostRepo{}
}

// Create inserts a new post owned by p.AuthorID
func (r *PostRepo) Create(p *models.Post) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	_, err := DB.Exec(`
		INSERT INTO posts (id, author_id, title, description, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.AuthorID, p.Title, p.Description, p.Body, p.CreatedAt, p.UpdatedAt)
	return err
}

// GetByID retrieves a post by ID, joined with the author's username
func (r *PostRepo) GetByID(id string) (*models.Post, error) {
	p := &models.Post{}

	err := DB.QueryRow(`
		SELECT p.id, p.author_id, u.username, p.title, p.description, p.body,
		       p.created_at, p.updated_at
		FROM posts p JOIN users u ON p.author_id = u.id
		WHERE p.id = ?
	`, id).Scan(
		&p.ID, &p.AuthorID, &p.Author, &p.Title, &p.Description, &p.Body,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

// List retrieves all posts joined with author usernames, newest first.
// The id tie-break keeps the order deterministic for equal timestamps.
func (r *PostRepo) List() ([]*models.Post, error) {
	rows, err := DB.Query(`
		SELECT p.id, p.author_id, u.username, p.title, p.description, p.body,
		       p.created_at, p.updated_at
		FROM posts p JOIN users u ON p.author_id = u.id
		ORDER BY p.created_at DESC, p.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		p := &models.Post{}
		err := rows.Scan(
			&p.ID, &p.AuthorID, &p.Author, &p.Title, &p.Description, &p.Body,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// Update rewrites a post's title, description and body. The author and
// creation time are immutable.
func (r *PostRepo) Update(id, title, description, body string) error {
	result, err := DB.Exec(`
		UPDATE posts SET title = ?, description = ?, body = ?, updated_at = ?
		WHERE id = ?
	`, title, description, body, time.Now(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}

	return nil
}

// Delete deletes a post
func (r *PostRepo) Delete(id string) error {
	result, err := DB.Exec("DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}

	return nil
}

// CountByAuthor returns the number of posts owned by a user
func (r *PostRepo) CountByAuthor(authorID int64) (int, error) {
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM posts WHERE author_id = ?", authorID).Scan(&count)
	return count, err
}

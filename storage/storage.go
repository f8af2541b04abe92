// Package storage persists project definitions and share links. The
// planning engine itself never touches storage; only the API and CLI
// layers do.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/sitecast/stopend/core/plan"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("storage: record not found")

// ProjectRecord is a stored project definition.
type ProjectRecord struct {
	ID         string       `json:"id" gorm:"primaryKey"`
	Name       string       `json:"name" gorm:"index"`
	Definition plan.Project `json:"definition" gorm:"type:jsonb;serializer:json"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// ShareRecord is a read-only snapshot published under a share link.
// The definition is copied at share time so later edits to the project
// do not change what the link shows.
type ShareRecord struct {
	ID         string       `json:"id" gorm:"primaryKey"`
	ProjectID  string       `json:"project_id" gorm:"index"`
	Definition plan.Project `json:"definition" gorm:"type:jsonb;serializer:json"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Store is the persistence contract used by the API and CLI layers.
type Store interface {
	SaveProject(ctx context.Context, rec *ProjectRecord) error
	GetProject(ctx context.Context, id string) (*ProjectRecord, error)
	ListProjects(ctx context.Context) ([]ProjectRecord, error)
	DeleteProject(ctx context.Context, id string) error

	CreateShare(ctx context.Context, rec *ShareRecord) error
	GetShare(ctx context.Context, id string) (*ShareRecord, error)

	Close() error
}

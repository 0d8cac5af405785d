package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
	"github.com/Reciclaria/reciclar.ia/internal/domain/repository"
	apperrors "github.com/Reciclaria/reciclar.ia/internal/pkg/errors"
)

type pointRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewPointRepository(db *DB) repository.PointRepository {
	return &pointRepository{
		db:     db,
		logger: db.logger,
	}
}

// ListAll carrega o dataset completo de pontos de coleta. Usado apenas na
// (re)construção do índice, nunca no caminho de uma consulta.
func (r *pointRepository) ListAll(ctx context.Context) ([]*domain.Point, error) {
	query := `
		SELECT id, name, address, postal_code, phone, hours, lat, lng, tags
		FROM collection_points
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list collection points", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	defer rows.Close()

	var points []*domain.Point
	for rows.Next() {
		p, err := scanPoint(rows)
		if err != nil {
			r.logger.Error("Failed to scan collection point", zap.Error(err))
			return nil, apperrors.ErrDatabaseError
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Row iteration failed", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return points, nil
}

func (r *pointRepository) GetByID(ctx context.Context, id string) (*domain.Point, error) {
	query := `
		SELECT id, name, address, postal_code, phone, hours, lat, lng, tags
		FROM collection_points
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanPoint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrPointNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get collection point", zap.String("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return p, nil
}

// scanner cobre *sql.Row e *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPoint(s scanner) (*domain.Point, error) {
	var p domain.Point
	err := s.Scan(
		&p.ID, &p.Name, &p.Address, &p.PostalCode, &p.Phone, &p.Hours,
		&p.Lat, &p.Lng, pq.Array(&p.Tags),
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

package feedback

import (
	"context"

	"backend-alpsconnect/internal/db"

	"github.com/google/uuid"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Service struct {
	db db.Querier
}

// NewService accepts a nil querier; every call then fails with ErrUnavailable.
func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

func (s *Service) Submit(ctx context.Context, input Feedback) (Feedback, error) {
	if s.db == nil {
		return Feedback{}, ErrUnavailable
	}
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO feedback (id, name, email, role, message, rating, lang)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, input.ID, input.Name, input.Email, input.Role, input.Message, input.Rating, input.Lang)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Feedback{}, err
	}
	return input, nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]Feedback, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, name, email, role, message, rating, lang, created_at
		FROM feedback
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Feedback{}
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Role, &f.Message, &f.Rating, &f.Lang, &f.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

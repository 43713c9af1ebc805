package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

// CreateRiskAssessment сохраняет итог оценки рисков по делу и возвращает ID записи.
func (s *Storage) CreateRiskAssessment(ctx context.Context, a models.StoredRiskAssessment) (int, error) {
	const op = "storage.CreateRiskAssessment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO risk_assessments (case_id, user_uid, risk_score, risk_level)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		a.CaseID, a.UserUID, a.RiskScore, a.RiskLevel).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListRiskAssessments возвращает сохранённые оценки по делу.
func (s *Storage) ListRiskAssessments(ctx context.Context, caseID int, userUID string) ([]*models.StoredRiskAssessment, error) {
	const op = "storage.ListRiskAssessments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, case_id, user_uid, risk_score, risk_level, created_at
			  FROM risk_assessments
			  WHERE case_id = $1 AND user_uid = $2
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, caseID, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.StoredRiskAssessment
	for rows.Next() {
		a := &models.StoredRiskAssessment{}
		if err := rows.Scan(&a.ID, &a.CaseID, &a.UserUID, &a.RiskScore, &a.RiskLevel, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

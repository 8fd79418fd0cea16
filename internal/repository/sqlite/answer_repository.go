package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/smomoh/flagquiz/internal/logger"
	"github.com/smomoh/flagquiz/internal/models"
	"github.com/smomoh/flagquiz/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type answerRepository struct {
	db *sql.DB
}

// NewAnswerRepository creates a new AnswerRepository implementation
func NewAnswerRepository(db *sql.DB) repository.AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Insert(ctx context.Context, rec models.AnswerRecord) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("answer_repo")
	log.Debug("inserting answer: profile_id=%d, code=%s, correct=%v", rec.ProfileID, rec.CountryCode, rec.Correct)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO answers (profile_id, continent, country_code, correct)
VALUES (?, ?, ?, ?)
`, rec.ProfileID, rec.Continent, rec.CountryCode, rec.Correct)
	if err != nil {
		log.Error("failed to insert answer: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get answer id: %v", err)
		return 0, err
	}
	return id, nil
}

func answerFilterQuery(base squirrel.SelectBuilder, filter models.AnswerFilter) squirrel.SelectBuilder {
	query := base.From("answers")
	if filter.ProfileID != 0 {
		query = query.Where(squirrel.Eq{"profile_id": filter.ProfileID})
	}
	if filter.Continent != "" {
		query = query.Where(squirrel.Eq{"continent": filter.Continent})
	}
	if filter.Correct != nil {
		query = query.Where(squirrel.Eq{"correct": *filter.Correct})
	}
	return query
}

func (r *answerRepository) List(ctx context.Context, filter models.AnswerFilter) ([]models.AnswerRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("answer_repo")
	log.Debug("listing answers: profile_id=%d, continent=%s", filter.ProfileID, filter.Continent)

	query := answerFilterQuery(sqlBuilder.Select(
		"id", "profile_id", "continent", "country_code", "correct", "answered_at",
	), filter).OrderBy("answered_at DESC", "id DESC")

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build answers query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query answers: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.AnswerRecord
	for rows.Next() {
		var rec models.AnswerRecord
		if err := rows.Scan(&rec.ID, &rec.ProfileID, &rec.Continent, &rec.CountryCode, &rec.Correct, &rec.AnsweredAt); err != nil {
			log.Error("failed to scan answer row: %v", err)
			return nil, err
		}
		records = append(records, rec)
	}
	log.Debug("found %d answers", len(records))
	return records, rows.Err()
}

func (r *answerRepository) Count(ctx context.Context, filter models.AnswerFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("answer_repo")

	sqlStr, args, err := answerFilterQuery(sqlBuilder.Select("COUNT(*)"), filter).ToSql()
	if err != nil {
		log.Error("failed to build answers count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count answers: %v", err)
		return 0, err
	}
	return count, nil
}

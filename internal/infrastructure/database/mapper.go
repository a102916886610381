package database

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/text/language"

	"transbot/internal/domain/entities"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func timeToPgtypeTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

type preferenceRow struct {
	UserID     string
	TargetLang string
	UpdatedAt  pgtype.Timestamptz
}

func preferenceToDomain(r preferenceRow) (entities.Preference, error) {
	tag, err := language.Parse(r.TargetLang)
	if err != nil {
		return entities.Preference{}, fmt.Errorf("parse target lang %q: %w", r.TargetLang, err)
	}
	return entities.Preference{
		UserID:     r.UserID,
		TargetLang: tag,
		UpdatedAt:  pgtypeTimestamptzToTime(r.UpdatedAt),
	}, nil
}

type translationRow struct {
	ID         int64
	UserID     string
	SourceLang string
	TargetLang string
	InputText  string
	OutputText string
	Status     string
	CreatedAt  pgtype.Timestamptz
}

func translationToDomain(r translationRow) entities.TranslationRecord {
	return entities.TranslationRecord{
		ID:         uint(r.ID),
		UserID:     r.UserID,
		SourceLang: r.SourceLang,
		TargetLang: r.TargetLang,
		InputText:  r.InputText,
		OutputText: r.OutputText,
		Status:     r.Status,
		CreatedAt:  pgtypeTimestamptzToTime(r.CreatedAt),
	}
}

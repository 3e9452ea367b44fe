package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trofos-project/trofos/internal/db/models"
)

// Assignment CSV header column names.
const (
	ColSourceProjectGroup = "sourceProjectGroup"
	ColTargetProjectGroup = "targetProjectGroup"
)

var assignmentColumns = []string{ColSourceProjectGroup, ColTargetProjectGroup}

// assignmentPair is one resolved source→target project link.
type assignmentPair struct {
	SourceProjectID uint64
	TargetProjectID uint64
}

// ImportProjectAssignments streams a CSV of source/target project-name pairs
// and upserts directed project-assignment links for the course.
//
// Project names are not guaranteed unique within a course, so each name must
// resolve to exactly one project: an unknown name and an ambiguous name both
// reject the row with a descriptive reason. Like the roster import, the
// whole file is scanned before any rejection and nothing is committed unless
// every row is valid. Re-importing an existing pair leaves it untouched.
func ImportProjectAssignments(db *gorm.DB, filePath string, courseID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	lookup, err := projectsByName(db, courseID)
	if err != nil {
		return err
	}

	r, closeFile, err := openCSV(filePath)
	if err != nil {
		return fmt.Errorf("open assignments csv: %w", err)
	}
	defer func() { _ = closeFile() }()

	index, err := readHeaderIndex(r, assignmentColumns)
	if err != nil {
		return newValidationError("assignments csv header: %v", err)
	}

	pairs, rowErrors, err := scanAssignments(r, index, lookup)
	if err != nil {
		return err
	}

	if len(rowErrors) > 0 {
		return &ValidationError{msg: strings.Join(rowErrors, " ")}
	}

	if err := materializeAssignments(db, pairs); err != nil {
		return err
	}

	log.Info().
		Uint64("course_id", courseID).
		Int("assignments", len(pairs)).
		Msg("project assignments imported")

	return nil
}

// scanAssignments reads every data row and resolves both project-group names
// per row, accumulating rejections. A read error that is not a
// csv.ParseError is terminal, as in scanRoster.
func scanAssignments(
	r *csv.Reader,
	index map[string]int,
	lookup map[string][]models.Project,
) ([]assignmentPair, []string, error) {
	var (
		pairs     []assignmentPair
		rowErrors []string
		rowNum    = 1
	)

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		rowNum++

		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, nil, fmt.Errorf("read assignments csv: %w", err)
			}

			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", rowNum, err))

			continue
		}

		source := field(record, index, ColSourceProjectGroup)
		target := field(record, index, ColTargetProjectGroup)

		sourceID, reason := resolveProjectGroup(lookup, source, ColSourceProjectGroup)
		if reason != "" {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %s", rowNum, reason))
			continue
		}

		targetID, reason := resolveProjectGroup(lookup, target, ColTargetProjectGroup)
		if reason != "" {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %s", rowNum, reason))
			continue
		}

		pairs = append(pairs, assignmentPair{SourceProjectID: sourceID, TargetProjectID: targetID})
	}

	return pairs, rowErrors, nil
}

// projectsByName builds the name -> projects lookup for one course. A name
// may map to several projects; resolution rejects ambiguous names instead of
// guessing.
func projectsByName(db *gorm.DB, courseID uint64) (map[string][]models.Project, error) {
	var projects []models.Project
	if err := db.Where("course_id = ?", courseID).Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("load course projects: %w", err)
	}

	lookup := make(map[string][]models.Project, len(projects))
	for _, p := range projects {
		lookup[p.Name] = append(lookup[p.Name], p)
	}

	return lookup, nil
}

// resolveProjectGroup maps a project-group name to its single project id, or
// returns the rejection reason for the row.
func resolveProjectGroup(lookup map[string][]models.Project, name, column string) (uint64, string) {
	if name == "" {
		return 0, fmt.Sprintf("%s must not be empty", column)
	}

	matches := lookup[name]

	switch {
	case len(matches) == 0:
		return 0, fmt.Sprintf("%s %q does not match any project", column, name)
	case len(matches) > 1:
		return 0, fmt.Sprintf("%s %q matches %d projects, name is ambiguous", column, name, len(matches))
	default:
		return matches[0].ID, ""
	}
}

// materializeAssignments upserts all pairs in one transaction. Every pair is
// attempted before the first error is surfaced; the transaction rolls back
// on any failure.
func materializeAssignments(db *gorm.DB, pairs []assignmentPair) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var firstErr error

		for _, pair := range pairs {
			assignment := models.ProjectAssignment{
				SourceProjectID: pair.SourceProjectID,
				TargetProjectID: pair.TargetProjectID,
			}

			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "source_project_id"}, {Name: "target_project_id"}},
				DoNothing: true,
			}).Create(&assignment).Error
			if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("upsert assignment %d -> %d: %w",
					pair.SourceProjectID, pair.TargetProjectID, err)
			}
		}

		return firstErr
	})
}

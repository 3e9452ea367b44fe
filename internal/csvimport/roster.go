package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// rosterColumns are the header columns a roster CSV must carry.
var rosterColumns = []string{ColName, ColEmail, ColPassword, ColRole, ColTeamName, ColProjectName}

// ImportCourseData streams a roster CSV and commits it as one batch.
//
// Every row is validated and, when valid, folded into the per-user and
// per-team aggregates. Parse errors and row validation failures are
// accumulated instead of aborting, so the whole file is scanned and the
// caller sees every problem at once. Only a file with zero errors is
// materialized; the returned error is either the joined diagnostic text or
// the materialization error.
func ImportCourseData(db *gorm.DB, filePath string, courseID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	r, closeFile, err := openCSV(filePath)
	if err != nil {
		return fmt.Errorf("open roster csv: %w", err)
	}
	defer func() { _ = closeFile() }()

	index, err := readHeaderIndex(r, rosterColumns)
	if err != nil {
		return newValidationError("roster csv header: %v", err)
	}

	userDetails, groupDetails, userGrouping, rowErrors, err := scanRoster(r, index, courseID)
	if err != nil {
		return err
	}

	if len(rowErrors) > 0 {
		return &ValidationError{msg: strings.Join(rowErrors, " ")}
	}

	if err := Materialize(db, courseID, userDetails, groupDetails, userGrouping); err != nil {
		return err
	}

	log.Info().
		Uint64("course_id", courseID).
		Int("users", len(userDetails)).
		Int("teams", len(groupDetails)).
		Msg("course roster imported")

	return nil
}

// scanRoster reads every data row, validating and folding valid rows into
// the per-user and per-team aggregates. Parse errors and validation failures
// are accumulated per row so the whole file is scanned. A read error that is
// not a csv.ParseError is terminal: the reader returns it again on every
// subsequent call, so scanning stops and the error is surfaced as-is.
func scanRoster(r *csv.Reader, index map[string]int, courseID uint64) (
	map[string]*UserDetail, map[string]*GroupDetail, map[string]string, []string, error,
) {
	var (
		userDetails  = make(map[string]*UserDetail)
		groupDetails = make(map[string]*GroupDetail)
		userGrouping = make(map[string]string)
		rowErrors    []string
		rowNum       = 1 // header was row 1
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
				return nil, nil, nil, nil, fmt.Errorf("read roster csv: %w", err)
			}

			// Malformed CSV structure blocks the commit like any invalid
			// row, but scanning continues so later problems still surface.
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", rowNum, err))
			rowsTotal.WithLabelValues(resultInvalid).Inc()

			continue
		}

		row := RawImportRow{
			Name:        field(record, index, ColName),
			Email:       field(record, index, ColEmail),
			Password:    field(record, index, ColPassword),
			Role:        field(record, index, ColRole),
			TeamName:    field(record, index, ColTeamName),
			ProjectName: field(record, index, ColProjectName),
		}

		valid, reason := ValidateRow(row)
		if !valid {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %s", rowNum, reason))
			rowsTotal.WithLabelValues(resultInvalid).Inc()

			continue
		}

		if err := TransformRow(row, courseID, userDetails, groupDetails, userGrouping); err != nil {
			return nil, nil, nil, nil, err
		}

		rowsTotal.WithLabelValues(resultValid).Inc()
	}

	return userDetails, groupDetails, userGrouping, rowErrors, nil
}

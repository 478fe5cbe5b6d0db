// Package metadata validates raw language-model output into PaperMetadata.
//
// The validator never fills in missing data. A response that cannot be
// trusted is rejected with one of three kinds, which the extraction
// orchestrator uses to decide whether to ask the model again:
//
//   - MalformedResponse: not JSON, not an object, or a required field missing
//   - InvalidYear: year is not a four-digit year in range
//   - EmptyField: author or title blank after trimming
package metadata

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/handiism/paper-renamer/internal/apperr"
	"github.com/handiism/paper-renamer/internal/filename"
	"github.com/handiism/paper-renamer/internal/model"
)

// MinYear is the earliest publication year accepted.
const MinYear = 1900

var reYear = regexp.MustCompile(`^\d{4}$`)

// Validate parses raw and returns the metadata it describes. now bounds the
// latest acceptable year (now's year + 1, for preprints dated ahead).
func Validate(raw string, now time.Time) (model.PaperMetadata, error) {
	obj, ok := extractObject(raw)
	if !ok {
		return model.PaperMetadata{}, apperr.New(apperr.KindMalformedResponse, "response holds no JSON object")
	}

	dec := json.NewDecoder(strings.NewReader(obj))
	dec.UseNumber()
	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return model.PaperMetadata{}, apperr.Wrap(apperr.KindMalformedResponse, "response is not valid JSON", err)
	}
	m, ok := parsed.(map[string]any)
	if !ok {
		return model.PaperMetadata{}, apperr.New(apperr.KindMalformedResponse, "response is not a JSON object")
	}

	doc := normalizeKeys(m)
	if err := validateSchema(doc); err != nil {
		return model.PaperMetadata{}, apperr.Wrap(apperr.KindMalformedResponse, "response does not match the metadata schema", err)
	}

	year, err := parseYear(doc["year"], now)
	if err != nil {
		return model.PaperMetadata{}, err
	}
	author, err := cleanAuthor(doc["author"].(string))
	if err != nil {
		return model.PaperMetadata{}, err
	}
	title, err := cleanText("title", doc["title"].(string))
	if err != nil {
		return model.PaperMetadata{}, err
	}

	return model.PaperMetadata{Author: author, Year: year, Title: title}, nil
}

func parseYear(v any, now time.Time) (int, error) {
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	case json.Number:
		s = t.String()
	default:
		return 0, apperr.Field(apperr.KindInvalidYear, "year", fmt.Sprintf("unexpected type %T", v))
	}

	if !reYear.MatchString(s) {
		return 0, apperr.Field(apperr.KindInvalidYear, "year", fmt.Sprintf("%q is not a four-digit year", s))
	}
	year, _ := strconv.Atoi(s)
	maxYear := now.Year() + 1
	if year < MinYear || year > maxYear {
		return 0, apperr.Field(apperr.KindInvalidYear, "year", fmt.Sprintf("%d is outside %d-%d", year, MinYear, maxYear))
	}
	return year, nil
}

func cleanAuthor(s string) (string, error) {
	author := collapseSpace(s)
	if author == "" {
		return "", apperr.Field(apperr.KindEmptyField, "author", "is blank")
	}
	if strings.ContainsAny(author, `/\`) || strings.IndexFunc(author, unicode.IsControl) >= 0 {
		return "", apperr.Field(apperr.KindMalformedResponse, "author", fmt.Sprintf("%q contains a path separator or control character", author))
	}
	if filename.Slug(author) == "" {
		return "", apperr.Field(apperr.KindEmptyField, "author", fmt.Sprintf("%q has no letters usable in a file name", author))
	}
	return author, nil
}

func cleanText(field, s string) (string, error) {
	text := collapseSpace(s)
	if text == "" {
		return "", apperr.Field(apperr.KindEmptyField, field, "is blank")
	}
	if filename.Slug(text) == "" {
		return "", apperr.Field(apperr.KindEmptyField, field, fmt.Sprintf("%q has no letters usable in a file name", text))
	}
	return text, nil
}

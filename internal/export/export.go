// Package export renders the archive and today's entry as a JSON document
// checked against an embedded schema.
package export

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/dates"
	"github.com/julianstephens/daybook/internal/history"
	"github.com/julianstephens/daybook/internal/models"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://github.com/julianstephens/daybook/export.schema.json"

var ErrInvalidDocument = errors.New("export document does not match schema")

type Document struct {
	Version    string `json:"version"`
	ExportedAt string `json:"exported_at"`
	Today      Day    `json:"today"`
	History    []Day  `json:"history"`
}

type Day struct {
	Date  string `json:"date"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
	Tasks []Task `json:"tasks"`
}

type Task struct {
	Index   int    `json:"index"`
	Done    bool   `json:"done"`
	Subject string `json:"subject"`
}

// Build assembles a document from archived days and today's tasks.
func Build(days []history.Day, today dates.Date, tasks []models.Task, now time.Time) Document {
	doc := Document{
		Version:    constants.Version,
		ExportedAt: now.Format(time.RFC3339),
		Today:      Day{Date: today.String(), Tasks: []Task{}},
		History:    make([]Day, 0, len(days)),
	}

	for _, t := range tasks {
		doc.Today.Tasks = append(doc.Today.Tasks, Task{Index: t.Index, Done: t.Done, Subject: t.Subject})
		if t.Done {
			doc.Today.Done++
		}
	}
	doc.Today.Total = len(tasks)

	for _, d := range days {
		day := Day{Date: d.Date.String(), Done: d.Done(), Total: len(d.Tasks), Tasks: make([]Task, 0, len(d.Tasks))}
		for i, r := range d.Tasks {
			day.Tasks = append(day.Tasks, Task{Index: i + 1, Done: r.Done, Subject: r.Subject})
		}
		doc.History = append(doc.History, day)
	}
	return doc
}

// Validate checks doc against the export schema.
func Validate(doc Document) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unmarshal export: %w", err)
	}

	if err := schema.Validate(obj); err != nil {
		return schemaError(err)
	}
	return nil
}

// Write validates doc and writes it as indented JSON.
func Write(w io.Writer, doc Document) error {
	if err := Validate(doc); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// schemaError reports the first leaf cause with its instance location.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalidDocument, loc, ve.Message)
}

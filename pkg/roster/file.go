package roster

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/swof/bau-api-go/pkg/models"
	"github.com/swof/bau-api-go/pkg/scheduler"
)

// ErrMissingID is returned when a roster file entry has no id.
var ErrMissingID = errors.New("engineer entry has no id")

// Document is the on-disk layout of a roster file:
//
//	engineers:
//	  - id: e1
//	    name: Ada
//	  - id: e2
//	    name: Linus
type Document struct {
	Engineers []models.Member `yaml:"engineers"`
}

// File is a roster source backed by a YAML file.
type File struct {
	Path string
}

var _ scheduler.RosterProvider = (*File)(nil)

// NewFile creates a file roster source.
func NewFile(path string) *File {
	return &File{Path: path}
}

// FetchRoster reads and parses the file. Entry order is preserved.
func (f *File) FetchRoster(ctx context.Context) ([]models.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}
	return Parse(data)
}

// Decode reads a roster document, trimming whitespace around ids and names.
// Entries without an id are kept.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse roster file: %w", err)
	}
	for i := range doc.Engineers {
		doc.Engineers[i].ID = strings.TrimSpace(doc.Engineers[i].ID)
		doc.Engineers[i].Name = strings.TrimSpace(doc.Engineers[i].Name)
	}
	return doc, nil
}

// Parse decodes a roster document and requires every entry to carry an id.
func Parse(data []byte) ([]models.Member, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	members := make([]models.Member, 0, len(doc.Engineers))
	for i, m := range doc.Engineers {
		if m.ID == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrMissingID, i)
		}
		members = append(members, m)
	}
	return members, nil
}

// Encode renders members as a roster document.
func Encode(members []models.Member) ([]byte, error) {
	return yaml.Marshal(Document{Engineers: members})
}

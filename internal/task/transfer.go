package task

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/daystrip/internal/dateutil"
)

// ErrInvalidImport wraps errors for rejected import entries.
var ErrInvalidImport = errors.New("invalid import entry")

// Export document layout.
type exportDoc struct {
	Tasks []exportTask `yaml:"tasks"`
}

type exportTask struct {
	ID          int64  `yaml:"id,omitempty"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Completed   bool   `yaml:"completed"`
	Date        string `yaml:"date"`
}

// Export writes every task as YAML.
func (s *Store) Export(w io.Writer) error {
	tasks := s.List()
	doc := exportDoc{Tasks: make([]exportTask, len(tasks))}
	for i, t := range tasks {
		doc.Tasks[i] = exportTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			Date:        t.Date.Key(),
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	return enc.Close()
}

// ParseImport decodes and validates a YAML task document. No entry is
// returned when any entry is invalid.
func ParseImport(r io.Reader) ([]Draft, error) {
	var doc exportDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}

	drafts := make([]Draft, 0, len(doc.Tasks))
	for i, et := range doc.Tasks {
		date, err := dateutil.Parse(et.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: task %d: %v", ErrInvalidImport, i+1, err)
		}
		d, err := Draft{
			Title:       et.Title,
			Description: et.Description,
			Completed:   et.Completed,
			Date:        date,
		}.Validate()
		if err != nil {
			return nil, fmt.Errorf("%w: task %d: %v", ErrInvalidImport, i+1, err)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// Import reads a YAML document and creates its tasks with fresh ids.
// It returns the number of tasks created.
func (s *Store) Import(ctx context.Context, r io.Reader) (int, error) {
	drafts, err := ParseImport(r)
	if err != nil {
		return 0, err
	}
	if len(drafts) == 0 {
		return 0, nil
	}
	if err := s.CreateMany(ctx, drafts); err != nil {
		return 0, err
	}
	return len(drafts), nil
}

// CreateMany validates every draft and creates them with one persist.
func (s *Store) CreateMany(ctx context.Context, drafts []Draft) error {
	valid := make([]Draft, len(drafts))
	for i, d := range drafts {
		v, err := d.Validate()
		if err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
		if v.Date.IsZero() {
			v.Date = dateutil.Today(s.now())
		}
		valid[i] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range valid {
		s.insertLocked(Task{
			ID:          s.nextIDLocked(),
			Title:       d.Title,
			Description: d.Description,
			Completed:   d.Completed,
			Date:        d.Date,
		})
	}
	s.persist(ctx)
	return nil
}

package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tasktimer/internal/modules/timer/domain"
	timerout "tasktimer/internal/modules/timer/port/out"
	"tasktimer/internal/platform/markdown"
	"tasktimer/internal/platform/slug"
)

var journalIndex = markdown.Block{
	Start: "<!-- tasktimer:history:start -->",
	End:   "<!-- tasktimer:history:end -->",
}

// FileExporter writes history as a JSON or YAML file, or as a markdown
// journal directory with one note per task.
type FileExporter struct {
	locale domain.Locale
}

func NewFileExporter(locale domain.Locale) timerout.HistoryExporter {
	return &FileExporter{locale: locale}
}

func (e *FileExporter) Export(_ context.Context, format timerout.ExportFormat, path string, history []domain.Task) ([]string, error) {
	switch format {
	case timerout.ExportJSON:
		payload, err := domain.EncodeHistory(history)
		if err != nil {
			return nil, err
		}
		return writeExport(path, payload)
	case timerout.ExportYAML:
		if history == nil {
			history = []domain.Task{}
		}
		payload, err := yaml.Marshal(history)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml history: %w", err)
		}
		return writeExport(path, payload)
	case timerout.ExportMarkdown:
		return e.exportJournal(path, history)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func writeExport(path string, payload []byte) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return nil, fmt.Errorf("write export: %w", err)
	}
	return []string{path}, nil
}

func (e *FileExporter) exportJournal(root string, history []domain.Task) ([]string, error) {
	files := make([]string, 0, len(history)+1)
	links := make([]string, 0, len(history))
	for _, task := range history {
		path, err := e.writeTaskNote(root, task)
		if err != nil {
			return files, err
		}
		files = append(files, path)
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		links = append(links, fmt.Sprintf("- %s [%s](%s) %s",
			domain.FormatDate(task.StartTime, e.locale), task.Name, filepath.ToSlash(rel),
			domain.FormatDuration(task.TotalTime, e.locale)))
	}

	index := filepath.Join(root, "index.md")
	existing, err := os.ReadFile(index)
	if err != nil && !os.IsNotExist(err) {
		return files, fmt.Errorf("read journal index: %w", err)
	}
	body := string(existing)
	if strings.TrimSpace(body) == "" {
		body = "# Task history\n"
	}
	body = journalIndex.Replace(body, strings.Join(links, "\n"))
	if err := os.MkdirAll(root, 0o755); err != nil {
		return files, fmt.Errorf("create journal dir: %w", err)
	}
	if err := os.WriteFile(index, []byte(body), 0o644); err != nil {
		return files, fmt.Errorf("write journal index: %w", err)
	}
	return append(files, index), nil
}

func (e *FileExporter) writeTaskNote(root string, task domain.Task) (string, error) {
	date := task.StartTime.Local()
	dir := filepath.Join(root, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(task.Name)))

	meta := []markdown.Field{
		{Key: "name", Value: task.Name},
		{Key: "notes", Value: task.Notes},
		{Key: "start_time", Value: task.StartTime.Format(time.RFC3339)},
		{Key: "end_time", Value: task.EndTime.Format(time.RFC3339)},
		{Key: "total_time", Value: task.TotalTime},
		{Key: "sessions", Value: len(task.Sessions)},
		{Key: "completed_sessions", Value: task.CompletedSessions()},
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", task.Name)
	if task.Notes != "" {
		fmt.Fprintf(&b, "%s\n\n", task.Notes)
	}
	fmt.Fprintf(&b, "- Date: %s\n- Total: %s\n\n", domain.FormatDate(task.StartTime, e.locale), domain.FormatDuration(task.TotalTime, e.locale))
	b.WriteString("| # | Start | End | Duration | Completed |\n|---|---|---|---|---|\n")
	for i, s := range task.Sessions {
		mark := "no"
		if s.Completed {
			mark = "yes"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", i+1,
			domain.FormatClock(s.StartTime), domain.FormatClock(s.EndTime),
			domain.FormatDuration(s.Duration, e.locale), mark)
	}
	rendered, err := markdown.RenderFrontmatter(meta, b.String())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write task note: %w", err)
	}
	return path, nil
}

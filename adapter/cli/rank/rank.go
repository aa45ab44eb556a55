// Package rank holds the task ranking commands.
package rank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application"
	"github.com/spf13/cobra"
)

// Commands returns the ranking commands for registration on the root command.
func Commands() []*cobra.Command {
	return []*cobra.Command{analyzeCmd, suggestCmd, strategiesCmd}
}

// taskFile is the accepted input document. A bare JSON array of tasks is accepted too.
type taskFile struct {
	Tasks    []application.TaskInput `json:"tasks"`
	Strategy string                  `json:"strategy,omitempty"`
}

// readTasks loads tasks from path, or from stdin when path is "" or "-".
func readTasks(cmd *cobra.Command, path string) (*taskFile, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open task file: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	return parseTasks(data)
}

func parseTasks(data []byte) (*taskFile, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, errors.New("no tasks given: pass --file or pipe JSON on stdin")
	}

	var doc taskFile
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &doc.Tasks); err != nil {
			return nil, fmt.Errorf("parse tasks: %w", err)
		}
		return &doc, nil
	}
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	return &doc, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printValidationErrors lists problems per task. Returns true when err was a validation error.
func printValidationErrors(w io.Writer, err error) bool {
	var verr *application.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	fmt.Fprintln(w, "Invalid tasks:")
	for i, fields := range verr.Tasks {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  task %d: %s: %s\n", i, name, strings.Join(fields[name], " "))
		}
	}
	return true
}

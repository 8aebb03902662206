package state

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/agenticwork/conductor/pkg/models"
)

// Run is the persisted summary of one orchestration.
type Run struct {
	ID             string            `json:"id"`
	Request        string            `json:"request"`
	Complexity     models.Complexity `json:"complexity"`
	Parallelizable bool              `json:"parallelizable"`
	Synthesis      string            `json:"synthesis"`
	Duration       time.Duration     `json:"duration"`
	Speedup        float64           `json:"speedup"`
	Usage          models.TokenUsage `json:"usage"`
	Succeeded      int               `json:"succeeded"`
	TaskCount      int               `json:"task_count"`
	CreatedAt      time.Time         `json:"created_at"`
}

// RunTask is the persisted record of one task within a run.
type RunTask struct {
	RunID       string        `json:"run_id"`
	TaskID      string        `json:"task_id"`
	Name        string        `json:"name"`
	Domain      models.Domain `json:"domain"`
	Success     bool          `json:"success"`
	Error       string        `json:"error,omitempty"`
	Output      string        `json:"output,omitempty"`
	ToolsUsed   []string      `json:"tools_used,omitempty"`
	Iterations  int           `json:"iterations"`
	Duration    time.Duration `json:"duration"`
	TotalTokens int64         `json:"total_tokens"`
}

// SaveRun persists an orchestration result and its per-task rows in one
// transaction.
func (db *DB) SaveRun(result *models.OrchestrationResult) error {
	if result == nil || result.Plan == nil {
		return fmt.Errorf("save run: nil result or plan")
	}

	return db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO runs (id, request, complexity, parallelizable, synthesis,
				duration_ms, speedup, prompt_tokens, completion_tokens, succeeded, task_count, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			result.Plan.ID,
			result.Plan.Request,
			string(result.Plan.Complexity),
			boolToInt(result.Plan.Parallelizable),
			result.Synthesis,
			result.Duration.Milliseconds(),
			result.ParallelSpeedup,
			result.Usage.PromptTokens,
			result.Usage.CompletionTokens,
			result.SucceededCount(),
			len(result.Results),
			formatTime(result.Plan.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for _, res := range result.Results {
			_, err := tx.Exec(`
				INSERT INTO run_tasks (run_id, task_id, name, domain, success, error,
					output, tools_used, iterations, duration_ms, total_tokens)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				result.Plan.ID,
				res.TaskID,
				res.TaskName,
				string(res.Domain),
				boolToInt(res.Success),
				res.Error,
				res.Output,
				strings.Join(res.ToolsUsed, ","),
				res.Iterations,
				res.Duration.Milliseconds(),
				res.Usage.TotalTokens,
			)
			if err != nil {
				return fmt.Errorf("insert run task %s: %w", res.TaskID, err)
			}
		}

		return nil
	})
}

// GetRun retrieves a run by ID, or nil if it does not exist.
func (db *DB) GetRun(id string) (*Run, error) {
	row := db.QueryRow(`
		SELECT id, request, complexity, parallelizable, synthesis,
			duration_ms, speedup, prompt_tokens, completion_tokens, succeeded, task_count, created_at
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns lists the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT id, request, complexity, parallelizable, synthesis,
			duration_ms, speedup, prompt_tokens, completion_tokens, succeeded, task_count, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRunTasks retrieves the per-task records of a run.
func (db *DB) GetRunTasks(runID string) ([]RunTask, error) {
	rows, err := db.Query(`
		SELECT run_id, task_id, name, domain, success, error, output, tools_used,
			iterations, duration_ms, total_tokens
		FROM run_tasks WHERE run_id = ? ORDER BY task_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("get run tasks: %w", err)
	}
	defer rows.Close()

	var tasks []RunTask
	for rows.Next() {
		var t RunTask
		var success int
		var errMsg, output, tools sql.NullString
		var durationMS int64
		if err := rows.Scan(&t.RunID, &t.TaskID, &t.Name, &t.Domain, &success,
			&errMsg, &output, &tools, &t.Iterations, &durationMS, &t.TotalTokens); err != nil {
			return nil, fmt.Errorf("scan run task: %w", err)
		}
		t.Success = success != 0
		t.Error = errMsg.String
		t.Output = output.String
		if tools.String != "" {
			t.ToolsUsed = strings.Split(tools.String, ",")
		}
		t.Duration = time.Duration(durationMS) * time.Millisecond
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// DeleteRun deletes a run and, via the foreign key, its task rows.
func (db *DB) DeleteRun(id string) error {
	_, err := db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}

// scannable covers *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*Run, error) {
	var run Run
	var parallelizable int
	var synthesis sql.NullString
	var durationMS int64
	var createdAt string

	err := row.Scan(&run.ID, &run.Request, &run.Complexity, &parallelizable, &synthesis,
		&durationMS, &run.Speedup, &run.Usage.PromptTokens, &run.Usage.CompletionTokens,
		&run.Succeeded, &run.TaskCount, &createdAt)
	if err != nil {
		return nil, err
	}

	run.Parallelizable = parallelizable != 0
	run.Synthesis = synthesis.String
	run.Duration = time.Duration(durationMS) * time.Millisecond
	run.Usage.TotalTokens = run.Usage.PromptTokens + run.Usage.CompletionTokens
	run.CreatedAt, _ = parseTime(createdAt)
	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

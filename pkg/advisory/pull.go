package advisory

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/mdcheck/internal/logging"
)

// pullSuccess is the status the server reports when the model is present.
const pullSuccess = "success"

// maxPullLineBytes bounds a single progress line.
const maxPullLineBytes = 1 << 20

// PullProgress is one decoded line of the pull status stream.
type PullProgress struct {
	Status    string `json:"status"`
	Digest    string `json:"digest,omitempty"`
	Total     int64  `json:"total,omitempty"`
	Completed int64  `json:"completed,omitempty"`
	Error     string `json:"error,omitempty"`
}

// PullResult summarizes an EnsureModel call.
type PullResult struct {
	// Model is the model that was requested.
	Model string

	// Completed is true when the server reported success.
	Completed bool

	// Lines is the number of progress lines read.
	Lines int

	// LastStatus is the status of the last progress line.
	LastStatus string

	// Warning is set when the line budget ran out before completion.
	Warning string
}

type pullRequest struct {
	Name string `json:"name"`
}

// EnsureModel asks the server to pull the configured model and reads the
// progress stream until the server reports success, the stream ends, or
// MaxPullLines lines have been read. Running out of lines is not an error; it
// sets PullResult.Warning. progress, when non-nil, is called for every line.
func (c *Client) EnsureModel(ctx context.Context, progress func(PullProgress)) (*PullResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.PullTimeout)
	defer cancel()

	resp, requestID, err := c.post(ctx, PullPath, pullRequest{Name: c.cfg.Model})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	result := &PullResult{Model: c.cfg.Model}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxPullLineBytes)

	for scanner.Scan() {
		if result.Lines >= c.cfg.MaxPullLines {
			result.Warning = fmt.Sprintf("reached maximum iteration limit (%d)", c.cfg.MaxPullLines)
			break
		}
		result.Lines++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var update PullProgress
		if err := json.Unmarshal([]byte(line), &update); err != nil {
			c.logger.Debug("skipping undecodable pull line",
				logging.FieldRequestID, requestID,
				logging.FieldError, err)
			continue
		}
		if update.Error != "" {
			return result, c.unavailable(PullPath, 0, update.Error, nil)
		}

		result.LastStatus = update.Status
		if progress != nil {
			progress(update)
		}
		if update.Status == pullSuccess {
			result.Completed = true
			break
		}
	}

	if !result.Completed && result.Warning == "" {
		if err := scanner.Err(); err != nil {
			return result, c.unavailable(PullPath, 0, "failed to read pull stream", err)
		}
	}

	c.logger.Debug("pull finished",
		logging.FieldRequestID, requestID,
		logging.FieldModel, c.cfg.Model,
		logging.FieldLines, result.Lines,
		logging.FieldStatus, result.LastStatus)

	return result, nil
}

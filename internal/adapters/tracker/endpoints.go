package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// GetTask fetches a full task by id
// webhooks carry only incremental changes so callers refetch the whole task
func (c *Client) GetTask(ctx context.Context, taskID string) (Task, error) {
	path := fmt.Sprintf("/task/%s", url.PathEscape(taskID))
	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return Task{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("tracker close body failed")
		}
	}()

	var out Task
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Task{}, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return Task{}, err
	}
	return out, nil
}

// ListTasksUpdatedSince returns tasks on a list updated after the cutoff,
// closed tasks included, capped at limit
func (c *Client) ListTasksUpdatedSince(ctx context.Context, listID string, since time.Time, limit int) ([]Task, error) {
	q := url.Values{}
	q.Set("date_updated_gt", fmt.Sprintf("%d", since.UnixMilli()))
	q.Set("include_closed", "true")
	q.Set("page", "0")
	path := fmt.Sprintf("/list/%s/task?%s", url.PathEscape(listID), q.Encode())

	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("tracker close body failed")
		}
	}()

	var page taskListPage
	b, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &page); err != nil {
		return nil, err
	}
	tasks := page.Tasks
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

// GetTaskComments fetches the comments of a task
func (c *Client) GetTaskComments(ctx context.Context, taskID string) ([]Comment, error) {
	path := fmt.Sprintf("/task/%s/comment", url.PathEscape(taskID))
	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("tracker close body failed")
		}
	}()

	var page commentsPage
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &page); err != nil {
		return nil, err
	}
	return page.Comments, nil
}

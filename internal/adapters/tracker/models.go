package tracker

import "encoding/json"

// Task is the tracker task object, only the fields caseflow reads
type Task struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	TextContent string        `json:"text_content"`
	Status      TaskStatus    `json:"status"`
	Priority    *TaskPriority `json:"priority"`
	Creator     *TaskUser     `json:"creator"`
	Assignees   []TaskUser    `json:"assignees"`
	DateCreated string        `json:"date_created"`
	DateUpdated string        `json:"date_updated"`
	DueDate     string        `json:"due_date"`
	List        TaskList      `json:"list"`
	URL         string        `json:"url"`

	CustomFields []CustomField `json:"custom_fields"`
}

// TaskStatus nests the status string the way the tracker does
type TaskStatus struct {
	Status string `json:"status"`
}

// TaskPriority nests the priority string, the whole object may be null
type TaskPriority struct {
	Priority string `json:"priority"`
}

// TaskUser is a creator or assignee
type TaskUser struct {
	Username string `json:"username"`
}

// TaskList identifies the list a task belongs to
type TaskList struct {
	ID string `json:"id"`
}

// CustomField is one entry of the task's custom field array
// Value is left raw since its shape depends on Type
type CustomField struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// ValueString renders the field value as a plain string when possible, "" otherwise
func (f CustomField) ValueString() string {
	if len(f.Value) == 0 || string(f.Value) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(f.Value, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(f.Value, &n); err == nil {
		return trimFloat(n)
	}
	var b bool
	if err := json.Unmarshal(f.Value, &b); err == nil {
		if b {
			return "true"
		}
		return "false"
	}
	return string(f.Value)
}

// ValueBool reports whether the field holds a true checkbox value
func (f CustomField) ValueBool() bool {
	var b bool
	if err := json.Unmarshal(f.Value, &b); err == nil {
		return b
	}
	return string(f.Value) == `"true"`
}

// Comment is one task comment, only the text is read
type Comment struct {
	ID          string `json:"id"`
	CommentText string `json:"comment_text"`
}

// taskListPage is the list endpoint response shape
type taskListPage struct {
	Tasks []Task `json:"tasks"`
}

// commentsPage is the comments endpoint response shape
type commentsPage struct {
	Comments []Comment `json:"comments"`
}

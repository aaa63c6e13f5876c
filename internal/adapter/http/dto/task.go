package dto

type TaskItem struct {
	ID              string  `json:"_id"`
	CreatedBy       string  `json:"createdBy"`
	TaskName        string  `json:"taskName"`
	TaskDescription string  `json:"taskDescription"`
	AssignedTo      string  `json:"assignedTo"`
	AssignedName    string  `json:"assignedName"`
	TaskFrequency   string  `json:"taskFrequency"`
	DueDate         string  `json:"dueDate"`
	Priority        string  `json:"priority"`
	CompletedDate   *string `json:"completedDate,omitempty"`
	SourceTaskID    *string `json:"sourceTaskId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

type CreateTaskRequest struct {
	TaskName        string  `json:"taskName" binding:"required,max=255"`
	TaskDescription string  `json:"taskDescription" binding:"max=65535"`
	AssignedTo      string  `json:"assignedTo" binding:"required,email"`
	AssignedName    string  `json:"assignedName" binding:"max=255"`
	TaskFrequency   *string `json:"taskFrequency"`
	DueDate         *string `json:"dueDate"`
	Priority        string  `json:"priority" binding:"max=32"`
}

type TaskResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Task    TaskItem `json:"task"`
}

type TaskListResponse struct {
	Tasks []TaskItem `json:"tasks"`
}

type CompleteTaskResponse struct {
	Success          bool      `json:"success"`
	Message          string    `json:"message"`
	CompletedTask    TaskItem  `json:"completedTask"`
	GeneratedNewTask *TaskItem `json:"generatedNewTask"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type TaskUpdateItem struct {
	ID         string `json:"_id"`
	TaskID     string `json:"taskId"`
	UpdateText string `json:"updateText"`
	UpdatedBy  string `json:"updatedBy"`
	UpdateType string `json:"updateType"`
	CreatedAt  string `json:"createdAt"`
}

type CreateTaskUpdateRequest struct {
	UpdateText string `json:"updateText" binding:"required,max=65535"`
	UpdateType string `json:"updateType"`
}

type TaskUpdateResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Update  TaskUpdateItem `json:"update"`
}

type TaskUpdateListResponse struct {
	Success bool             `json:"success"`
	Updates []TaskUpdateItem `json:"updates"`
}

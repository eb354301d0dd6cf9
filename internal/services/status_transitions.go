package services

import "taskmate/internal/models"

// Допустимые переходы статусов задачи.
// Any status may move to any other; only completedAt follows the status.
var TaskTransitions = map[models.TaskStatus]map[models.TaskStatus]bool{
	models.StatusPending:    {models.StatusInProgress: true, models.StatusCompleted: true},
	models.StatusInProgress: {models.StatusPending: true, models.StatusCompleted: true},
	models.StatusCompleted:  {models.StatusPending: true, models.StatusInProgress: true},
}

func canTransition(current, to models.TaskStatus, table map[models.TaskStatus]map[models.TaskStatus]bool) bool {
	if current == "" || current == to {
		return true
	}
	nexts, ok := table[current]
	if !ok {
		return false
	}
	return nexts[to]
}

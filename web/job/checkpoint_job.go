package job

import (
	"github.com/kitchenhub/recipe-service/database"
	"github.com/kitchenhub/recipe-service/logger"
)

// CheckpointJob folds the SQLite write-ahead log back into the database file.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

func (j *CheckpointJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("checkpoint job err: ", err)
	}
}

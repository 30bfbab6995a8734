package job

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kitchenhub/recipe-service/database/model"
	"github.com/kitchenhub/recipe-service/logger"
	"github.com/kitchenhub/recipe-service/util/common"

	"gorm.io/gorm"
)

// DefaultPhotoGrace is how old an unreferenced file must be before it is removed.
// An upload lands in the directory before its path is stored on the recipe.
const DefaultPhotoGrace = 10 * time.Minute

// CleanPhotosJob removes photo files that no recipe points at any more,
// which happens when recipes or their authors are deleted.
type CleanPhotosJob struct {
	db    *gorm.DB
	dir   string
	grace time.Duration
}

func NewCleanPhotosJob(db *gorm.DB, dir string) *CleanPhotosJob {
	return &CleanPhotosJob{db: db, dir: dir, grace: DefaultPhotoGrace}
}

// Here Run is an interface method of the Job interface
func (j *CleanPhotosJob) Run() {
	defer common.Recover("clean photos job")
	if _, err := j.Clean(); err != nil {
		logger.Warning("clean photos job err: ", err)
	}
}

// Clean deletes the orphaned files and returns how many were removed.
func (j *CleanPhotosJob) Clean() (int, error) {
	entries, err := os.ReadDir(j.dir)
	if os.IsNotExist(err) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	var photos []string
	err = j.db.Model(&model.Recipe{}).Where("photo <> ''").Pluck("photo", &photos).Error
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]struct{}, len(photos))
	for _, p := range photos {
		referenced[filepath.Clean(p)] = struct{}{}
	}

	cutoff := time.Now().Add(-j.grace)
	removed := 0
	for _, e := range entries {
		// dot files are uploads still being written
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(j.dir, e.Name())
		if _, ok := referenced[filepath.Clean(path)]; ok {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			logger.Warning("clean photos job err: ", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Infof("removed %d orphaned photos", removed)
	}
	return removed, nil
}

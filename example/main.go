package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jager/protected"
	"github.com/jager/protected/example/conf"
)

// BackupRecord keeps its raw fields protected and exposes parsed views
// through computed accessors. count, backup_set and backup_date are
// forbidden to protection toggling; type is a plain toggleable field.
type BackupRecord struct {
	*protected.Attr
}

func NewBackupRecord(values map[string]interface{}) *BackupRecord {
	r := &BackupRecord{
		Attr: protected.NewAttr(values),
	}
	r.DefineAccessor("count", func() interface{} {
		n, err := strconv.Atoi(r.GetStr("_count"))
		if err != nil {
			return 0
		}
		return n
	})
	r.DefineAccessor("backup_set", func() interface{} {
		u, err := uuid.Parse(r.GetStr("_backup_set"))
		if err != nil {
			return uuid.Nil
		}
		return u
	})
	r.DefineAccessor("backup_date", func() interface{} {
		ms, err := strconv.ParseInt(r.GetStr("_backup_date"), 10, 64)
		if err != nil {
			return time.Time{}
		}
		return time.UnixMilli(ms)
	})
	return r
}

func (r *BackupRecord) Count() int {
	return r.Value("count").(int)
}

func (r *BackupRecord) BackupSet() uuid.UUID {
	return r.Value("backup_set").(uuid.UUID)
}

func (r *BackupRecord) BackupDate() time.Time {
	return r.Value("backup_date").(time.Time)
}

func main() {
	protected.Start(conf.GetJournalCfg())

	backup := NewBackupRecord(map[string]interface{}{
		"count":       "162",
		"backup_set":  "76144912-5d67-4a6a-9f7d-3631bc901ad8",
		"backup_date": "1651039155045",
		"type":        "full",
	})

	fmt.Println(backup.String())
	fmt.Println("count:", backup.Count())
	fmt.Println("backup_set:", backup.BackupSet())
	fmt.Println("backup_date:", backup.BackupDate())

	backup.Unprotect("type")
	fmt.Println(backup.String())
	fmt.Println("type:", backup.GetStr("type"))

	backup.Protect("type")
	fmt.Println(backup.String())

	protected.Stop()
}

package conf

import (
	"log/slog"
	"time"

	"github.com/BurntSushi/toml"
)

var cfg *Cfg

type Cfg struct {
	Journal *JournalCfg `toml:"journal"`
}

// ================== JournalCfg ==================
type JournalCfg struct {
	SweepIntervalMs int `toml:"sweepIntervalMs"`
	DumpIntervalSec int `toml:"dumpIntervalSec"`
	SlowOpMs        int `toml:"slowOpMs"`
	QueueWarnLen    int `toml:"queueWarnLen"`
}

func (jc *JournalCfg) GetSweepInterval() time.Duration {
	return time.Duration(jc.SweepIntervalMs) * time.Millisecond
}
func (jc *JournalCfg) GetDumpInterval() time.Duration {
	return time.Duration(jc.DumpIntervalSec) * time.Second
}
func (jc *JournalCfg) GetSlowOpThreshold() time.Duration {
	return time.Duration(jc.SlowOpMs) * time.Millisecond
}
func (jc *JournalCfg) GetQueueWarnLen() int {
	return jc.QueueWarnLen
}

// ===================================================

func init() {
	var config *Cfg
	if _, err := toml.DecodeFile("conf/config.toml", &config); err != nil {
		slog.Warn("load toml config failed, using defaults", "err", err)
	}
	if config == nil || config.Journal == nil {
		config = &Cfg{Journal: &JournalCfg{
			SweepIntervalMs: 500,
			DumpIntervalSec: 30,
			SlowOpMs:        100,
			QueueWarnLen:    100,
		}}
	}
	cfg = config
}

func GetJournalCfg() *JournalCfg {
	return cfg.Journal
}

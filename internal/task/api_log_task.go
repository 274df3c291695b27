package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"shopnav_dev_v1_202608/internal/repository"
)

// 调用日志留存期
const logRetention = 90 * 24 * time.Hour

// APILogTask 集成调用日志清理任务
// 每天凌晨删掉留存期之外的日志，控制 api_call_logs 表体积
type APILogTask struct {
	LogRepo repository.APICallLogRepository
	Cron    *cron.Cron
}

func NewAPILogTask(logRepo repository.APICallLogRepository) *APILogTask {
	return &APILogTask{
		LogRepo: logRepo,
		Cron:    cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *APILogTask) Start() {
	// 每天 03:30 执行，避开整点高峰
	_, err := t.Cron.AddFunc("0 30 3 * * *", func() {
		t.purgeJob()
	})
	if err != nil {
		log.Fatalf("无法启动日志清理任务: %v", err)
	}

	t.Cron.Start()
	log.Println("调用日志清理任务已启动 (每天 03:30)")
}

// Stop 停止定时任务
func (t *APILogTask) Stop() {
	t.Cron.Stop()
}

func (t *APILogTask) purgeJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	purged, err := t.LogRepo.PurgeBefore(ctx, time.Now().Add(-logRetention))
	if err != nil {
		log.Printf("[Cron] 调用日志清理失败: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("[Cron] 已清理 %d 条过期调用日志", purged)
	}
}
